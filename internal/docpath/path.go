package docpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Marker describes the array syntax attached to a path segment.
type Marker int

const (
	// MarkerNone is a plain property access.
	MarkerNone Marker = iota
	// MarkerWildcard ("[]") applies the rest of the path to every element.
	MarkerWildcard
	// MarkerIndex ("[N]") applies the rest of the path to element N.
	MarkerIndex
)

// Segment is one dot-separated element of a Path.
type Segment struct {
	// Name is the property name. Empty only for a leading "[]" or "[N]"
	// addressing a document whose root is an array.
	Name   string
	Marker Marker
	Index  int
}

// String renders the segment back into path syntax.
func (s Segment) String() string {
	switch s.Marker {
	case MarkerWildcard:
		return s.Name + "[]"
	case MarkerIndex:
		return s.Name + "[" + strconv.Itoa(s.Index) + "]"
	default:
		return s.Name
	}
}

// Path is a parsed document path.
type Path struct {
	Segments []Segment
}

// String returns the canonical path string.
func (p Path) String() string {
	parts := make([]string, len(p.Segments))
	for i, s := range p.Segments {
		parts[i] = s.String()
	}

	return strings.Join(parts, ".")
}

// HasWildcard reports whether any segment uses "[]".
func (p Path) HasWildcard() bool {
	for _, s := range p.Segments {
		if s.Marker == MarkerWildcard {
			return true
		}
	}

	return false
}

// MaxIndex is the largest array index a path may address. Set grows arrays
// up to the index it writes, so the bound also caps that allocation.
const MaxIndex = 1<<16 - 1

// Parse parses a path string into a Path.
// Supports: "a", "a.b", "a[]", "a[].b", "a[2].b", and a leading "[]" or "[N]".
func Parse(path string) (Path, error) {
	if path == "" {
		return Path{}, errors.New("empty path")
	}

	var segments []Segment

	for i, part := range strings.Split(path, ".") {
		if part == "" {
			return Path{}, fmt.Errorf("invalid path %q: empty segment", path)
		}

		seg, err := parseSegment(part)
		if err != nil {
			return Path{}, fmt.Errorf("invalid path %q: %w", path, err)
		}

		if seg.Name == "" && i > 0 {
			return Path{}, fmt.Errorf("invalid path %q: array marker without field name", path)
		}

		segments = append(segments, seg)
	}

	return Path{Segments: segments}, nil
}

func parseSegment(part string) (Segment, error) {
	open := strings.IndexByte(part, '[')
	if open < 0 {
		if strings.ContainsRune(part, ']') {
			return Segment{}, fmt.Errorf("unbalanced bracket in %q", part)
		}

		return Segment{Name: part}, nil
	}

	name, marker := part[:open], part[open:]
	if strings.ContainsAny(name, "[]") {
		return Segment{}, fmt.Errorf("unbalanced bracket in %q", part)
	}

	if marker == "[]" {
		return Segment{Name: name, Marker: MarkerWildcard}, nil
	}

	if !strings.HasSuffix(marker, "]") {
		return Segment{}, fmt.Errorf("unbalanced bracket in %q", part)
	}

	idx, err := strconv.Atoi(marker[1 : len(marker)-1])
	if err != nil || idx < 0 {
		return Segment{}, fmt.Errorf("invalid array index in %q", part)
	}

	if idx > MaxIndex {
		return Segment{}, fmt.Errorf("array index in %q exceeds %d", part, MaxIndex)
	}

	return Segment{Name: name, Marker: MarkerIndex, Index: idx}, nil
}

// Split splits a path at its first "[]" into the path of the array and the
// path applied to each element. ok is false when the path has no wildcard.
// "devices[].ip" -> ("devices", "ip", true).
func Split(path string) (arrayPath, elementPath string, ok bool) {
	before, after, found := strings.Cut(path, "[]")
	if !found {
		return path, "", false
	}

	return before, strings.TrimPrefix(after, "."), true
}

// Strip removes array markers from a path.
// "devices[].interfaces[0].ip" -> "devices.interfaces.ip".
func Strip(path string) string {
	var b strings.Builder

	b.Grow(len(path))

	depth := 0

	for _, r := range path {
		switch {
		case r == '[':
			depth++
		case r == ']':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			b.WriteRune(r)
		}
	}

	return b.String()
}

// Prefixes returns every proper ancestor of a dotted name, shortest first.
// A segment carrying an array marker contributes both its marked and its
// bare form, so "items[].sku" yields ["items", "items[]"].
func Prefixes(name string) []string {
	parts := strings.Split(name, ".")
	if len(parts) < 2 {
		return nil
	}

	var out []string

	for i := 1; i < len(parts); i++ {
		head := strings.Join(parts[:i], ".")
		if stripped := Strip(head); stripped != head {
			out = append(out, stripped)
		}

		out = append(out, head)
	}

	return out
}

// Join joins non-empty path fragments with dots.
func Join(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))

	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}

	return strings.Join(nonEmpty, ".")
}
