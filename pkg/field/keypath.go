package field

import "strings"

// Separator joins key path segments and separates the prefix from the name.
const Separator = "_"

// KeyPath is the ordered list of segments that prefix a field key. The top
// level path of a group is just the group id; composite fields extend the
// path of their parent with their own name (and layout key for flexible
// content).
type KeyPath struct {
	segments []string
}

// NewKeyPath builds a path from the supplied segments.
func NewKeyPath(segments ...string) KeyPath {
	return KeyPath{segments: append([]string(nil), segments...)}
}

// Segments returns a copy of the path segments.
func (p KeyPath) Segments() []string {
	return append([]string(nil), p.segments...)
}

// Len reports the number of segments.
func (p KeyPath) Len() int {
	return len(p.segments)
}

// Child returns a new path extended with the given segments.
func (p KeyPath) Child(segments ...string) KeyPath {
	out := make([]string, 0, len(p.segments)+len(segments))
	out = append(out, p.segments...)
	out = append(out, segments...)
	return KeyPath{segments: out}
}

// Lower returns a copy of the path with every segment lower-cased.
func (p KeyPath) Lower() KeyPath {
	out := make([]string, len(p.segments))
	for i, segment := range p.segments {
		out[i] = strings.ToLower(segment)
	}
	return KeyPath{segments: out}
}

// Prefix renders the path as a key prefix, including the trailing separator.
// An empty path renders as an empty prefix.
func (p KeyPath) Prefix() string {
	if len(p.segments) == 0 {
		return ""
	}
	return strings.Join(p.segments, Separator) + Separator
}

// Key derives the key of a field called name under this path.
func (p KeyPath) Key(name string) string {
	return p.Prefix() + name
}

// WithoutLast removes the last segment equal to segment. The boolean is false
// when no segment matches, in which case the path is returned unchanged.
func (p KeyPath) WithoutLast(segment string) (KeyPath, bool) {
	for i := len(p.segments) - 1; i >= 0; i-- {
		if p.segments[i] != segment {
			continue
		}
		out := make([]string, 0, len(p.segments)-1)
		out = append(out, p.segments[:i]...)
		out = append(out, p.segments[i+1:]...)
		return KeyPath{segments: out}, true
	}
	return p, false
}

// String renders the path without the trailing separator.
func (p KeyPath) String() string {
	return strings.Join(p.segments, Separator)
}
