// Package mapping defines the resolved mapping configuration and builds it
// from user-declared bindings and the attribute catalog.
//
// A ParserConfig is the only artifact the transform engine consumes. It is
// self-contained and JSON serializable:
//
//	{
//	  "selectedClass": "authentication",
//	  "selectedCategory": "iam",
//	  "defaultMapping": {
//	    "user.name":      {"source": "username"},
//	    "status_id":      {"source": "result", "enumMapping": {"ok": "1"}, "isEnum": true},
//	    "class_uid":      {"static": 3002, "isEnum": true},
//	    "raw_data":       {"source": ""},
//	    "unmapped.extra": {"source": "extra"}
//	  },
//	  "conditionals": [
//	    {"field": "type", "value": "logoff", "className": "authentication",
//	     "categoryName": "iam", "mapping": {...}}
//	  ]
//	}
//
// # Bindings
//
// Each target path carries exactly one Binding: a Source path into the input
// document, a Static literal, or a Synthesized directive computed by the
// transform engine (raw payload, hash, size, observable list). On the wire a
// directive is written as an empty "source" with no "static", and its kind
// is recovered from the target path name.
//
// # Resolution
//
// The Resolver enumerates every addressable path of the target class,
// descending into referenced classes without re-entering a class already on
// the current descent. For each path the effective binding is, in order:
//
//  1. the user's explicit mapping
//  2. the only value of a single-valued enum
//  3. the binding inherited from a base table (conditional branches)
//
// Observable classification follows: user override, then the source field's
// detected type, then the attribute's catalog default.
//
// Leftover scalar source fields are captured under "unmapped.<field>" when
// the class declares an "unmapped" attribute.
package mapping
