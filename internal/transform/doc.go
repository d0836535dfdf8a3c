// Package transform executes a resolved ParserConfig against input
// documents.
//
// Transform is a pure function of its input and config: it allocates its
// own output and observable buffer, never mutates the input or the config,
// and never fails. Missing data yields missing output fields.
//
// Per call, the first conditional whose discriminator stringifies to the
// branch value selects the class, category and mapping table. Target paths
// are written in sorted order, so a binding for "user" is applied before
// one for "user.name". Values pass through enum translation and numeric
// coercion before being written; source-bound paths with an observable
// type also produce observable records, merged into "observables" at the
// end.
package transform
