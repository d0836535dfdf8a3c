// Package fields extracts the field list of a sample source payload.
//
// Every key of the sample becomes a Field named by its dotted path, in
// document order. Objects are descended into; for arrays whose first
// element is an object, that element is descended into with a "[]" marker
// (for example "answers[].data"). Scalar examples are classified with the
// observable detector so the resolver can inherit the classification.
package fields
