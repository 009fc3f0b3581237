package taxonomy

import (
	"slices"
	"strings"
)

// keySeparator joins path segments into a Key. NewTree rejects names that
// contain it, so names may freely contain "/" or ">".
const keySeparator = "\x1f"

// ReservedInName reports whether name contains the key separator, which no
// category name may hold.
func ReservedInName(name string) bool {
	return strings.Contains(name, keySeparator)
}

// Path is the ordered list of category names from a root to a node.
type Path []string

// Key is the serialised form of a Path, used for set membership.
type Key string

// NewPath builds a path from its segments.
func NewPath(segments ...string) Path {
	return Path(append([]string(nil), segments...))
}

// SplitDisplay parses a user-typed path such as "Technology/Web Development".
// Surrounding whitespace is trimmed from each segment and empty segments are
// dropped.
func SplitDisplay(raw, sep string) Path {
	if sep == "" {
		sep = "/"
	}
	var out Path
	for _, part := range strings.Split(raw, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Key returns the serialised form of the path.
func (p Path) Key() Key {
	return Key(strings.Join(p, keySeparator))
}

// ParseKey reverses Path.Key.
func ParseKey(k Key) Path {
	if k == "" {
		return nil
	}
	return Path(strings.Split(string(k), keySeparator))
}

// IsEmpty reports whether the path has no segments.
func (p Path) IsEmpty() bool {
	return len(p) == 0
}

// Leaf returns the last segment, or "" for an empty path.
func (p Path) Leaf() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Parent returns the path without its last segment.
func (p Path) Parent() Path {
	if len(p) <= 1 {
		return nil
	}
	return slices.Clone(p[:len(p)-1])
}

// Append returns a new path with name added. The receiver is never aliased.
func (p Path) Append(name string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, name)
}

// Equal reports whether both paths name the same node.
func (p Path) Equal(other Path) bool {
	return slices.Equal(p, other)
}

// HasPrefix reports whether prefix is an ancestor of (or equal to) p.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	return slices.Equal(p[:len(prefix)], prefix)
}

// Clone returns an independent copy.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	return slices.Clone(p)
}

func (p Path) String() string {
	return strings.Join(p, " / ")
}
