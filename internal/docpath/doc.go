// Package docpath reads and writes values inside decoded JSON documents
// (map[string]any / []any trees) using dotted paths.
//
// # Path Syntax
//
// Paths support:
//   - Simple fields: "severity"
//   - Nested fields: "actor.user.name"
//   - Every element of an array: "devices[].ip"
//   - A single element of an array: "devices[0].ip"
//
// Get never fails: a path that does not resolve yields nil. Set creates
// missing objects and arrays on the way down and ignores nil values.
package docpath
