package mapping

import (
	"strings"

	"ocsf-mapper/internal/common"
)

// Binding is the closed set of ways a target path gets its value: Source,
// Static, or Synthesized.
type Binding interface {
	isBinding()
}

// Source reads a path from the input document.
type Source struct {
	Path string
}

// Static is a literal value.
type Static struct {
	Value any
}

// Synthesized is computed by the transform engine from its own context.
type Synthesized struct {
	Kind SynthKind
}

func (Source) isBinding()      {}
func (Static) isBinding()      {}
func (Synthesized) isBinding() {}

// SynthKind selects what a Synthesized binding produces.
type SynthKind int

const (
	// WholeInput writes the whole input document.
	WholeInput SynthKind = iota
	// RawPayload writes the serialized input.
	RawPayload
	// RawHash writes a fingerprint of the serialized input.
	RawHash
	// RawSize writes the byte length of the serialized input.
	RawSize
	// ObservableList is filled with the collected observable records.
	ObservableList
)

// System paths synthesized when the target class declares them.
const (
	PathRawData     = "raw_data"
	PathRawDataHash = "raw_data_hash"
	PathRawDataSize = "raw_data_size"
	PathObservables = "observables"
	PathUnmapped    = "unmapped"
)

var synthesizedPaths = map[string]SynthKind{
	PathRawData:     RawPayload,
	PathRawDataHash: RawHash,
	PathRawDataSize: RawSize,
	PathObservables: ObservableList,
}

// SynthKindFor returns the directive kind for a target path. Paths other
// than the system paths get WholeInput.
func SynthKindFor(path string) SynthKind {
	if k, ok := synthesizedPaths[path]; ok {
		return k
	}

	return WholeInput
}

// IsSystemPath returns true for raw_data, raw_data_hash, raw_data_size and
// observables.
func IsSystemPath(path string) bool {
	_, ok := synthesizedPaths[path]
	return ok
}

// UnmappedPath returns the capture path for a leftover source field. Fields
// of a root array sample ("[].a") attach their marker to "unmapped".
func UnmappedPath(field string) string {
	if strings.HasPrefix(field, "[") {
		return PathUnmapped + field
	}

	return PathUnmapped + "." + field
}

// IsUnmappedPath returns true for paths below "unmapped".
func IsUnmappedPath(path string) bool {
	return strings.HasPrefix(path, PathUnmapped+".") || strings.HasPrefix(path, PathUnmapped+"[")
}

func (k SynthKind) String() string {
	switch k {
	case WholeInput:
		return "whole_input"
	case RawPayload:
		return "raw_payload"
	case RawHash:
		return "raw_hash"
	case RawSize:
		return "raw_size"
	case ObservableList:
		return "observable_list"
	default:
		return common.UnknownStr
	}
}
