package message

import (
	"github.com/dnsscience/dnsdig/internal/rr"
	"github.com/dnsscience/dnsdig/internal/support"
	"github.com/dnsscience/dnsdig/internal/wire"
)

// Message is the shared envelope of Query and Reply: a header plus the
// four ordered sections. The header's section counts are not trusted
// as the source of truth while a Message is held in memory; Write
// recomputes them from the slices before encoding.
type Message struct {
	Header     Header
	Questions  []Question
	Answers    []rr.Record
	Authority  []rr.Record
	Additional []rr.Record
}

// AddQuestion inserts q, rejecting an exact (name, type, class) duplicate.
func (m *Message) AddQuestion(q Question) error {
	for _, existing := range m.Questions {
		if existing.Equal(q) {
			return support.ErrDuplicateQuestion.Wrap(nil)
		}
	}
	m.Questions = append(m.Questions, q)
	return nil
}

// refreshCounts recomputes the header's four section counts from the
// in-memory collections; Write calls this before encoding.
func (m *Message) refreshCounts() {
	m.Header.QDCount = uint16(len(m.Questions))
	m.Header.ANCount = uint16(len(m.Answers))
	m.Header.NSCount = uint16(len(m.Authority))
	m.Header.ARCount = uint16(len(m.Additional))
}

func (m *Message) writeTo(w *wire.Writer) error {
	m.refreshCounts()
	m.Header.WriteTo(w)
	for _, q := range m.Questions {
		q.WriteTo(w)
	}
	for _, sec := range [][]rr.Record{m.Answers, m.Authority, m.Additional} {
		for _, rec := range sec {
			if err := rec.WriteTo(w); err != nil {
				return err
			}
		}
	}
	return nil
}

func readMessageFrom(r *wire.Reader, reg *rr.Registry, clock support.Clock) (Message, error) {
	var m Message
	h, err := ReadHeaderFrom(r)
	if err != nil {
		return m, err
	}
	m.Header = h

	for i := uint16(0); i < h.QDCount; i++ {
		q, err := ReadQuestionFrom(r)
		if err != nil {
			return m, err
		}
		if err := m.AddQuestion(q); err != nil {
			return m, err
		}
	}

	readSection := func(count uint16) ([]rr.Record, error) {
		recs := make([]rr.Record, 0, count)
		for i := uint16(0); i < count; i++ {
			rec, err := rr.ReadRecordFrom(r, reg, clock)
			if err != nil {
				return nil, err
			}
			recs = append(recs, rec)
		}
		return recs, nil
	}

	if m.Answers, err = readSection(h.ANCount); err != nil {
		return m, err
	}
	if m.Authority, err = readSection(h.NSCount); err != nil {
		return m, err
	}
	if m.Additional, err = readSection(h.ARCount); err != nil {
		return m, err
	}
	return m, nil
}

// Query is a Message whose header's QR bit must be clear (IsQuery false
// in this codec's naming; see Header.IsQuery's doc: false means query).
type Query struct {
	Message
}

// NewQuery builds an empty query with the given transaction ID and
// recursion-desired flag set, ready for questions to be added.
func NewQuery(id uint16, recursionDesired bool) *Query {
	return &Query{Message{Header: Header{
		ID:               id,
		IsQuery:          false,
		OpCode:           OpQuery,
		RecursionDesired: recursionDesired,
	}}}
}

// WriteTo encodes the query.
func (q *Query) WriteTo(w *wire.Writer) error { return q.writeTo(w) }

// ReadQueryFrom decodes a query, failing with ErrDnsQueryExpected if the
// header's QR bit indicates a reply.
func ReadQueryFrom(r *wire.Reader, reg *rr.Registry, clock support.Clock) (*Query, error) {
	m, err := readMessageFrom(r, reg, clock)
	if err != nil {
		return nil, err
	}
	if m.Header.IsQuery {
		return nil, support.ErrDnsQueryExpected.Wrap(nil)
	}
	return &Query{m}, nil
}

// Reply is a Message whose header's QR bit must be set.
type Reply struct {
	Message
}

// NewReply builds a reply correlated to q's transaction ID, copying its
// question section and opcode/recursion-desired flags forward.
func NewReply(q *Query, responseCode RCode) *Reply {
	rep := &Reply{Message{Header: Header{
		ID:               q.Header.ID,
		IsQuery:          true,
		OpCode:           q.Header.OpCode,
		RecursionDesired: q.Header.RecursionDesired,
		ResponseCode:     responseCode,
	}}}
	rep.Questions = append(rep.Questions, q.Questions...)
	return rep
}

// WriteTo encodes the reply.
func (rep *Reply) WriteTo(w *wire.Writer) error { return rep.writeTo(w) }

// ReadReplyFrom decodes a reply, failing with ErrDnsReplyExpected if the
// header's QR bit indicates a query.
func ReadReplyFrom(r *wire.Reader, reg *rr.Registry, clock support.Clock) (*Reply, error) {
	m, err := readMessageFrom(r, reg, clock)
	if err != nil {
		return nil, err
	}
	if !m.Header.IsQuery {
		return nil, support.ErrDnsReplyExpected.Wrap(nil)
	}
	return &Reply{m}, nil
}
