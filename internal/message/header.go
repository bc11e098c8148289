// Package message implements the DNS header, question, and the
// query/reply message envelope, orchestrating the internal/wire
// reader/writer and internal/rr record codec.
package message

import (
	"github.com/dnsscience/dnsdig/internal/wire"
)

// OpCode is the 4-bit OPCODE field.
type OpCode uint8

const (
	OpQuery  OpCode = 0
	OpIQuery OpCode = 1
	OpStatus OpCode = 2
)

// RCode is the 4-bit response code.
type RCode uint8

const (
	RCodeNoError  RCode = 0
	RCodeFormErr  RCode = 1
	RCodeServFail RCode = 2
	RCodeNxDomain RCode = 3
	RCodeNotImp   RCode = 4
	RCodeRefused  RCode = 5
)

// Header is the mutable 12-byte DNS header.
type Header struct {
	ID                 uint16
	IsQuery            bool // QR: false for a query, true for a reply
	OpCode             OpCode
	Authoritative      bool
	Truncated          bool
	RecursionDesired   bool
	RecursionAvailable bool
	Z                  uint8 // 3 reserved bits
	ResponseCode       RCode

	QDCount uint16
	ANCount uint16
	NSCount uint16
	ARCount uint16
}

func (h *Header) flags() uint16 {
	var f uint16
	if h.IsQuery {
		f |= 1 << 15
	}
	f |= uint16(h.OpCode&0x0F) << 11
	if h.Authoritative {
		f |= 1 << 10
	}
	if h.Truncated {
		f |= 1 << 9
	}
	if h.RecursionDesired {
		f |= 1 << 8
	}
	if h.RecursionAvailable {
		f |= 1 << 7
	}
	f |= uint16(h.Z&0x07) << 4
	f |= uint16(h.ResponseCode & 0x0F)
	return f
}

func (h *Header) setFlags(f uint16) {
	h.IsQuery = f&(1<<15) != 0
	h.OpCode = OpCode((f >> 11) & 0x0F)
	h.Authoritative = f&(1<<10) != 0
	h.Truncated = f&(1<<9) != 0
	h.RecursionDesired = f&(1<<8) != 0
	h.RecursionAvailable = f&(1<<7) != 0
	h.Z = uint8((f >> 4) & 0x07)
	h.ResponseCode = RCode(f & 0x0F)
}

// WriteTo encodes the header's 12 bytes.
func (h *Header) WriteTo(w *wire.Writer) {
	w.WriteUint16(h.ID)
	w.WriteUint16(h.flags())
	w.WriteUint16(h.QDCount)
	w.WriteUint16(h.ANCount)
	w.WriteUint16(h.NSCount)
	w.WriteUint16(h.ARCount)
}

// ReadHeaderFrom decodes a header from r's current position.
func ReadHeaderFrom(r *wire.Reader) (Header, error) {
	var h Header
	id, err := r.ReadUint16()
	if err != nil {
		return h, err
	}
	flags, err := r.ReadUint16()
	if err != nil {
		return h, err
	}
	qd, err := r.ReadUint16()
	if err != nil {
		return h, err
	}
	an, err := r.ReadUint16()
	if err != nil {
		return h, err
	}
	ns, err := r.ReadUint16()
	if err != nil {
		return h, err
	}
	ar, err := r.ReadUint16()
	if err != nil {
		return h, err
	}
	h.ID = id
	h.setFlags(flags)
	h.QDCount = qd
	h.ANCount = an
	h.NSCount = ns
	h.ARCount = ar
	return h, nil
}
