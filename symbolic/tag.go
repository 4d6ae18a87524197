package symbolic

// Tag is an opaque marker associated at instrumentation time with a
// concrete runtime value; it carries a (possibly empty) set of symbolic
// labels (spec.md §3). Two tags compare equal iff their label sets are
// equal.
type Tag struct {
	labels map[string]struct{}
}

// NewTag constructs a Tag carrying the given labels.
func NewTag(labels ...string) Tag {
	if len(labels) == 0 {
		return Tag{}
	}
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return Tag{labels: set}
}

// Empty reports whether the tag carries no labels at all. An empty tag is
// never user-symbolic (spec.md §4.1).
func (t Tag) Empty() bool { return len(t.labels) == 0 }

// Labels returns the tag's label set as a slice, in unspecified order.
func (t Tag) Labels() []string {
	out := make([]string, 0, len(t.labels))
	for l := range t.labels {
		out = append(out, l)
	}
	return out
}

// WithLabel returns a new Tag with label added to the receiver's set,
// leaving the receiver unmodified (tags are treated as immutable values
// once constructed, mirroring the teacher's concolicVariable.copy()
// pattern).
func (t Tag) WithLabel(label string) Tag {
	set := make(map[string]struct{}, len(t.labels)+1)
	for l := range t.labels {
		set[l] = struct{}{}
	}
	set[label] = struct{}{}
	return Tag{labels: set}
}

// Equal reports whether two tags carry exactly the same label set.
func (t Tag) Equal(other Tag) bool {
	if len(t.labels) != len(other.labels) {
		return false
	}
	for l := range t.labels {
		if _, ok := other.labels[l]; !ok {
			return false
		}
	}
	return true
}
