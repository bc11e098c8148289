// Package wire implements the byte-level RFC 1035 codec: big-endian
// integers, names with compression-pointer chasing, IPv4/IPv6
// addresses, TTLs, and character-strings.
package wire

import (
	"encoding/binary"
	"net/netip"
	"time"

	"github.com/dnsscience/dnsdig/internal/name"
	"github.com/dnsscience/dnsdig/internal/support"
)

const maxPointerDepth = 30

// Reader is a single-threaded, cursor-based decoder over an entire DNS
// message buffer. Names may contain compression pointers that reference
// any earlier offset in the same buffer, so the Reader always holds the
// full message, not just the remaining bytes.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for sequential decoding starting at offset 0.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Pos returns the current cursor position.
func (r *Reader) Pos() int { return r.pos }

// Seek repositions the cursor to an absolute offset in the buffer.
func (r *Reader) Seek(pos int) { r.pos = pos }

// Remaining reports how many bytes are left to read.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

func (r *Reader) require(n int) error {
	if r.pos+n > len(r.buf) {
		return support.ErrEndOfStream.Wrap(nil)
	}
	return nil
}

// ReadUint8 reads one byte.
func (r *Reader) ReadUint8() (uint8, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

// ReadUint16 reads a big-endian uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.require(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

// ReadUint32 reads a big-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

// ReadInt32 reads a big-endian int32 (used for SOA's signed time fields).
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadTTL reads a wire uint32 TTL and clamps it: if the top bit is set,
// the decoded TTL is zero, per RFC 2181's guidance on the sign bit.
func (r *Reader) ReadTTL() (time.Duration, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	if v&0x80000000 != 0 {
		return 0, nil
	}
	return time.Duration(v) * time.Second, nil
}

// ReadBytes reads n raw bytes, copied so the result outlives the buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if err := r.require(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, r.buf[r.pos:r.pos+n])
	r.pos += n
	return out, nil
}

// ReadIPv4 reads a 4-byte IPv4 address.
func (r *Reader) ReadIPv4() (netip.Addr, error) {
	if err := r.require(4); err != nil {
		return netip.Addr{}, err
	}
	var b [4]byte
	copy(b[:], r.buf[r.pos:r.pos+4])
	r.pos += 4
	return netip.AddrFrom4(b), nil
}

// ReadIPv6 reads a 16-byte IPv6 address.
func (r *Reader) ReadIPv6() (netip.Addr, error) {
	if err := r.require(16); err != nil {
		return netip.Addr{}, err
	}
	var b [16]byte
	copy(b[:], r.buf[r.pos:r.pos+16])
	r.pos += 16
	return netip.AddrFrom16(b), nil
}

// ReadCharString reads an RFC 1035 character-string: a length octet
// followed by that many bytes, length <= 255.
func (r *Reader) ReadCharString() (string, error) {
	n, err := r.ReadUint8()
	if err != nil {
		return "", err
	}
	b, err := r.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadName decodes a domain name starting at the cursor, chasing
// compression pointers per RFC 1035 §4.1.4. On return the cursor sits
// just past the name's on-wire representation in the outer stream (the
// pointer pair counts as two bytes; bytes read while chasing a pointer
// do not advance the outer cursor further).
func (r *Reader) ReadName() (name.Name, error) {
	labels, err := r.readNameLabels(r.pos, 0, true)
	if err != nil {
		return name.Name{}, err
	}
	// Names on the wire are always absolute: they either terminate at the
	// root label or at a pointer that ultimately does.
	return name.FromLabels(labels, name.Absolute), nil
}

// readNameLabels walks labels starting at offset. advanceOuter controls
// whether r.pos is updated as we go (false once we've jumped through a
// pointer, per spec: "the outer cursor position is frozen at the first
// pointer pair").
func (r *Reader) readNameLabels(offset int, depth int, advanceOuter bool) ([]string, error) {
	var labels []string
	pos := offset

	for {
		if pos >= len(r.buf) {
			return nil, support.ErrEndOfStream.Wrap(nil)
		}
		lengthByte := r.buf[pos]
		top2 := lengthByte & 0xC0

		switch top2 {
		case 0x00:
			length := int(lengthByte)
			pos++
			if advanceOuter {
				r.pos = pos
			}
			if length == 0 {
				return labels, nil
			}
			if pos+length > len(r.buf) {
				return nil, support.ErrEndOfStream.Wrap(nil)
			}
			labels = append(labels, string(r.buf[pos:pos+length]))
			pos += length
			if advanceOuter {
				r.pos = pos
			}

		case 0xC0:
			if pos+1 >= len(r.buf) {
				return nil, support.ErrEndOfStream.Wrap(nil)
			}
			if depth+1 > maxPointerDepth {
				return nil, support.ErrNameHasTooManyRefs.Wrap(nil)
			}
			ptr := int(binary.BigEndian.Uint16(r.buf[pos:pos+2]) & 0x3FFF)
			if advanceOuter {
				r.pos = pos + 2
			}
			if ptr >= len(r.buf) {
				return nil, support.ErrEndOfStream.Wrap(nil)
			}
			rest, err := r.readNameLabels(ptr, depth+1, false)
			if err != nil {
				return nil, err
			}
			labels = append(labels, rest...)
			return labels, nil

		default:
			return nil, support.ErrUnsupportedLabelType.Wrap(nil)
		}
	}
}
