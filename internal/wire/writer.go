package wire

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/dnsscience/dnsdig/internal/name"
	"github.com/dnsscience/dnsdig/internal/support"
)

const maxPointerOffset = 0x3FFF

// Writer is a single-threaded, growable-buffer encoder that tracks a
// suffix→offset dictionary for name compression.
type Writer struct {
	buf   []byte
	names map[string]int // case-folded suffix -> offset where it starts
}

// NewWriter creates an empty Writer.
func NewWriter() *Writer {
	return &Writer{names: make(map[string]int)}
}

// Bytes returns the encoded buffer so far.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the current buffer length, i.e. the offset the next write
// will land at.
func (w *Writer) Len() int { return len(w.buf) }

// WriteUint8 appends one byte.
func (w *Writer) WriteUint8(v uint8) { w.buf = append(w.buf, v) }

// WriteUint16 appends a big-endian uint16.
func (w *Writer) WriteUint16(v uint16) {
	w.buf = append(w.buf, byte(v>>8), byte(v))
}

// WriteUint32 appends a big-endian uint32.
func (w *Writer) WriteUint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteInt32 appends a big-endian int32 (SOA's signed time fields).
func (w *Writer) WriteInt32(v int32) { w.WriteUint32(uint32(v)) }

// WriteTTL appends ttl as a wire uint32 of whole seconds.
func (w *Writer) WriteTTL(ttl time.Duration) {
	w.WriteUint32(uint32(ttl / time.Second))
}

// WriteBytes appends raw bytes verbatim.
func (w *Writer) WriteBytes(b []byte) { w.buf = append(w.buf, b...) }

// WriteIPv4 appends a 4-byte IPv4 address.
func (w *Writer) WriteIPv4(addr [4]byte) { w.buf = append(w.buf, addr[:]...) }

// WriteIPv6 appends a 16-byte IPv6 address.
func (w *Writer) WriteIPv6(addr [16]byte) { w.buf = append(w.buf, addr[:]...) }

// WriteCharString appends an RFC 1035 character-string: a length octet
// then the bytes. Fails with a Usage error if s exceeds 255 bytes.
func (w *Writer) WriteCharString(s string) error {
	if len(s) > 255 {
		return &support.UsageError{Msg: "character-string exceeds 255 bytes"}
	}
	w.WriteUint8(uint8(len(s)))
	w.WriteBytes([]byte(s))
	return nil
}

// WriteName encodes n with compression: if compress is true, the writer
// consults and updates its suffix dictionary; if false (required for
// SOA RDATA and DNAME targets per their RFCs), it always emits literal
// labels and a zero terminator, and never registers the suffix.
func (w *Writer) WriteName(n name.Name, compress bool) {
	labels := n.Labels()

	for i := 0; i <= len(labels); i++ {
		suffixLabels := labels[i:]
		key := suffixKey(suffixLabels)

		if compress && len(key) >= 3 {
			if offset, ok := w.names[key]; ok {
				w.writePointer(offset)
				return
			}
		}

		if i == len(labels) {
			w.WriteUint8(0)
			return
		}

		if compress && len(key) >= 3 {
			w.names[key] = w.Len()
		}

		label := labels[i]
		w.WriteUint8(uint8(len(label)))
		w.WriteBytes([]byte(label))
	}
}

func (w *Writer) writePointer(offset int) {
	v := uint16(0xC000) | uint16(offset&maxPointerOffset)
	w.WriteUint16(v)
}

// suffixKey renders the case-folded textual suffix key used for the
// compression dictionary, e.g. "example.com." for the full suffix.
func suffixKey(labels []string) string {
	if len(labels) == 0 {
		return "."
	}
	folded := make([]string, len(labels))
	for i, l := range labels {
		folded[i] = strings.ToLower(l)
	}
	return strings.Join(folded, ".") + "."
}

// Reserve appends n zero bytes and returns their starting offset, for
// RDLENGTH back-patching (WriteRecord reserves 2 bytes, writes RDATA,
// then calls Patch16 with the real length).
func (w *Writer) Reserve(n int) int {
	offset := len(w.buf)
	w.buf = append(w.buf, make([]byte, n)...)
	return offset
}

// Patch16 overwrites the big-endian uint16 at offset, used to back-patch
// RDLENGTH once RDATA has actually been written.
func (w *Writer) Patch16(offset int, v uint16) {
	binary.BigEndian.PutUint16(w.buf[offset:offset+2], v)
}
