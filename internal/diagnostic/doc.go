// Package diagnostic provides structured warnings, errors, and
// informational notes produced while building a mapping configuration.
//
// Key capabilities:
//   - Unknown class / attribute path reports
//   - Catalog inheritance problems (cycles, missing parents and profiles)
//   - Conditional branches dropped during config build
//   - Explanation of defaulted and inherited bindings
package diagnostic
