// Package name implements the immutable DNS name model: parsing,
// validation, absolute-vs-relative comparison, and the in-addr.arpa/
// ip6.arpa reverse-lookup construction used by the resolver's
// address-to-name helper.
package name

import (
	"strings"

	"github.com/dnsscience/dnsdig/internal/support"
)

// Kind distinguishes an absolute name (trailing dot, anchored at the DNS
// root) from a relative one.
type Kind int

const (
	Relative Kind = iota
	Absolute
)

const (
	maxEncodedLength = 255
	maxLabels        = 128
	maxLabelLength   = 63
)

// Name is an ordered sequence of ASCII labels plus a Kind. It is
// value-like: once parsed it is never mutated, and may be shared freely
// by reference.
type Name struct {
	labels []string
	kind   Kind
}

// Root is the zero-label absolute name (".").
var Root = Name{labels: nil, kind: Absolute}

// Parse validates s against RFC 1035's label-count/length/character
// rules and returns the parsed Name, or an *support.FormatError wrapping
// ErrInvalidName.
func Parse(s string) (Name, error) {
	n, ok := TryParse(s)
	if !ok {
		return Name{}, support.ErrInvalidName.Wrap(nil)
	}
	return n, nil
}

// MustParse panics on invalid input; it exists for constants in tests and
// callers that have already validated s.
func MustParse(s string) Name {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

// TryParse is the non-throwing counterpart to Parse.
func TryParse(s string) (Name, bool) {
	kind := Relative
	trimmed := s
	if strings.HasSuffix(s, ".") {
		kind = Absolute
		trimmed = s[:len(s)-1]
	}

	if trimmed == "" {
		return Name{labels: nil, kind: kind}, true
	}

	rawLabels := strings.Split(trimmed, ".")
	if len(rawLabels) > maxLabels {
		return Name{}, false
	}

	encodedLen := 1 // trailing root label
	labels := make([]string, 0, len(rawLabels))
	for _, l := range rawLabels {
		if !validLabel(l) {
			return Name{}, false
		}
		encodedLen += len(l) + 1
		labels = append(labels, l)
	}
	if encodedLen > maxEncodedLength {
		return Name{}, false
	}

	return Name{labels: labels, kind: kind}, true
}

func validLabel(l string) bool {
	if len(l) == 0 || len(l) > maxLabelLength {
		return false
	}
	for i := 0; i < len(l); i++ {
		c := l[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			continue
		case c == '-':
			if i == 0 || i == len(l)-1 {
				return false
			}
		case c == '_':
			if i != 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// FromLabels builds a Name directly from already-validated wire labels
// (used by the wire reader, which decodes one label at a time and must
// not re-run the character checks Parse performs at API boundaries only).
func FromLabels(labels []string, kind Kind) Name {
	out := make([]string, len(labels))
	copy(out, labels)
	return Name{labels: out, kind: kind}
}

// Kind reports whether the name is Absolute or Relative.
func (n Name) Kind() Kind { return n.kind }

// Labels returns the name's labels in order, root-most last. Callers must
// not mutate the returned slice.
func (n Name) Labels() []string { return n.labels }

// IsRelative reports whether the name lacks a trailing separator.
func (n Name) IsRelative() bool { return n.kind == Relative }

// String renders the name's canonical textual form: labels joined by '.',
// with a trailing '.' iff the name is absolute.
func (n Name) String() string {
	if len(n.labels) == 0 {
		if n.kind == Absolute {
			return "."
		}
		return ""
	}
	s := strings.Join(n.labels, ".")
	if n.kind == Absolute {
		s += "."
	}
	return s
}

// absoluteLabels returns the labels used for comparison: both absolute and
// relative names compare as their absolute (label-sequence) form.
func (n Name) absoluteLabels() []string { return n.labels }

// Equal compares case-insensitively, ignoring the absolute/relative
// distinction.
func (n Name) Equal(o Name) bool {
	a, b := n.absoluteLabels(), o.absoluteLabels()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !strings.EqualFold(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Hash returns a case-folding-stable hash suitable for map keys, matching
// the Equal relation above.
func (n Name) Hash() uint64 {
	var h uint64 = 1469598103934665603 // FNV offset basis
	for _, l := range n.absoluteLabels() {
		for i := 0; i < len(l); i++ {
			c := l[i]
			if c >= 'A' && c <= 'Z' {
				c += 'a' - 'A'
			}
			h ^= uint64(c)
			h *= 1099511628211 // FNV prime
		}
		h ^= '.'
		h *= 1099511628211
	}
	return h
}

// IsParentOf reports whether b's labels end with a's labels (label-wise,
// case-insensitive) and a is strictly shorter than b.
func (a Name) IsParentOf(b Name) bool {
	al, bl := a.absoluteLabels(), b.absoluteLabels()
	if len(al) >= len(bl) {
		return false
	}
	offset := len(bl) - len(al)
	for i := range al {
		if !strings.EqualFold(al[i], bl[offset+i]) {
			return false
		}
	}
	return true
}

// Concat appends suffix's labels to this name's labels. Only defined when
// this name is relative; the result's Kind is suffix's Kind.
func (n Name) Concat(suffix Name) (Name, error) {
	if n.kind != Relative {
		return Name{}, &support.UsageError{Msg: "Concat requires a relative name as receiver"}
	}
	labels := make([]string, 0, len(n.labels)+len(suffix.labels))
	labels = append(labels, n.labels...)
	labels = append(labels, suffix.labels...)
	return Name{labels: labels, kind: suffix.kind}, nil
}

// MakeRelative strips parent's labels from the end of this name, yielding
// a relative Name. Fails with ErrNotASubdomain if parent does not contain
// this name as specified by IsParentOf.
func (n Name) MakeRelative(parent Name) (Name, error) {
	if !parent.IsParentOf(n) {
		return Name{}, support.ErrNotASubdomain.Wrap(nil)
	}
	keep := len(n.labels) - len(parent.labels)
	labels := make([]string, keep)
	copy(labels, n.labels[:keep])
	return Name{labels: labels, kind: Relative}, nil
}
