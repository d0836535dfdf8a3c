// Package schema holds the target attribute catalog: OCSF classes and
// objects with their attributes already merged through inheritance and
// profiles.
//
// Flattening is an explicit pass over the raw schema export. "extends" and
// profile inclusion form a directed acyclic graph; classes are merged in
// topological order (parent, then profiles, then local attributes) so the
// resolver and the transform engine never deal with inheritance.
//
// Attribute kinds are a closed set: Scalar, Enum, and Reference (an
// attribute whose value is another class). Use a type switch over Kind.
//
// Cache provides a time-bounded, single-entry catalog that many readers
// can share while at most one refresh is in flight.
package schema
