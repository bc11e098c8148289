package rr

import (
	"time"

	"github.com/dnsscience/dnsdig/internal/name"
	"github.com/dnsscience/dnsdig/internal/support"
	"github.com/dnsscience/dnsdig/internal/wire"
)

// Record is the common envelope shared by every resource record: owner,
// type, class, TTL, and an expiry instant, plus the type-tagged RDATA
// payload.
type Record struct {
	Owner   name.Name
	Type    Type
	Class   Class
	TTL     time.Duration
	Expires time.Time
	Data    Data
}

// IsAlive reports whether the record has not yet expired as of now.
func (r Record) IsAlive(now time.Time) bool {
	return !now.After(r.Expires)
}

// NewRecord builds a Record, computing Expires from clock.Now()+ttl.
func NewRecord(owner name.Name, typ Type, class Class, ttl time.Duration, data Data, clock support.Clock) Record {
	now := clock.Now()
	return Record{
		Owner:   owner,
		Type:    typ,
		Class:   class,
		TTL:     ttl,
		Expires: now.Add(ttl),
		Data:    data,
	}
}

// WriteTo encodes the record: owner, type, class, TTL, then a
// length-prefixed RDATA with the RDLENGTH back-patched once the actual
// byte count is known.
func (r Record) WriteTo(w *wire.Writer) error {
	w.WriteName(r.Owner, true)
	w.WriteUint16(uint16(r.Type))
	w.WriteUint16(uint16(r.Class))
	w.WriteTTL(r.TTL)

	lenOffset := w.Reserve(2)
	start := w.Len()
	if err := r.Data.Encode(w); err != nil {
		return err
	}
	w.Patch16(lenOffset, uint16(w.Len()-start))
	return nil
}

// ReadRecordFrom decodes owner/type/class/ttl/RDLENGTH, then dispatches
// to reg for the RDATA. The RDLENGTH is checked against the number of
// bytes the builder actually consumed.
func ReadRecordFrom(r *wire.Reader, reg *Registry, clock support.Clock) (Record, error) {
	owner, err := r.ReadName()
	if err != nil {
		return Record{}, err
	}
	t, err := r.ReadUint16()
	if err != nil {
		return Record{}, err
	}
	c, err := r.ReadUint16()
	if err != nil {
		return Record{}, err
	}
	ttl, err := r.ReadTTL()
	if err != nil {
		return Record{}, err
	}
	rdlength, err := r.ReadUint16()
	if err != nil {
		return Record{}, err
	}

	start := r.Pos()
	data, err := reg.Build(Type(t), r, int(rdlength))
	if err != nil {
		return Record{}, err
	}
	consumed := r.Pos() - start
	if consumed != int(rdlength) {
		return Record{}, support.ErrEndOfStream.Wrap(nil)
	}

	return NewRecord(owner, Type(t), Class(c), ttl, data, clock), nil
}
