package message

import (
	"github.com/dnsscience/dnsdig/internal/name"
	"github.com/dnsscience/dnsdig/internal/rr"
	"github.com/dnsscience/dnsdig/internal/wire"
)

// Question is a single entry in the question section: name/type/class.
// Equality is per-field, with the name compared case-insensitively.
type Question struct {
	Name  name.Name
	Type  rr.Type
	Class rr.Class
}

// Equal reports field-wise equality.
func (q Question) Equal(o Question) bool {
	return q.Type == o.Type && q.Class == o.Class && q.Name.Equal(o.Name)
}

// WriteTo encodes the question; questions are always written compressed
// (no RFC carves out an exception for the question section).
func (q Question) WriteTo(w *wire.Writer) {
	w.WriteName(q.Name, true)
	w.WriteUint16(uint16(q.Type))
	w.WriteUint16(uint16(q.Class))
}

// ReadQuestionFrom decodes one question.
func ReadQuestionFrom(r *wire.Reader) (Question, error) {
	n, err := r.ReadName()
	if err != nil {
		return Question{}, err
	}
	t, err := r.ReadUint16()
	if err != nil {
		return Question{}, err
	}
	c, err := r.ReadUint16()
	if err != nil {
		return Question{}, err
	}
	return Question{Name: n, Type: rr.Type(t), Class: rr.Class(c)}, nil
}
