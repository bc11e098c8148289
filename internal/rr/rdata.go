package rr

import (
	"net/netip"

	"github.com/dnsscience/dnsdig/internal/name"
	"github.com/dnsscience/dnsdig/internal/wire"
)

// Data is the RDATA payload of a Record, tagged by the owning Record's
// Type field. Each variant knows how to encode itself; decoding is the
// job of the builder registered for its type (see registry.go).
type Data interface {
	Encode(w *wire.Writer) error
}

// AData is the RDATA of an A record: a 4-byte IPv4 address.
type AData struct{ Addr netip.Addr }

func (d AData) Encode(w *wire.Writer) error {
	w.WriteIPv4(d.Addr.As4())
	return nil
}

// AAAAData is the RDATA of an AAAA record: a 16-byte IPv6 address.
type AAAAData struct{ Addr netip.Addr }

func (d AAAAData) Encode(w *wire.Writer) error {
	w.WriteIPv6(d.Addr.As16())
	return nil
}

// NameData is the RDATA shape shared by NS, CNAME, PTR, MB, MG, MR: a
// single DnsName. DNAME reuses it too but disables compression on write.
type NameData struct {
	Target   name.Name
	Compress bool // false for DNAME
}

func (d NameData) Encode(w *wire.Writer) error {
	w.WriteName(d.Target, d.Compress)
	return nil
}

// SOAData is the RDATA of an SOA record. Names never compress here.
type SOAData struct {
	Master  name.Name
	RMBox   name.Name
	Serial  uint32
	Refresh int32
	Retry   int32
	Expire  int32
	Minimum int32
}

func (d SOAData) Encode(w *wire.Writer) error {
	w.WriteName(d.Master, false)
	w.WriteName(d.RMBox, false)
	w.WriteUint32(d.Serial)
	w.WriteInt32(d.Refresh)
	w.WriteInt32(d.Retry)
	w.WriteInt32(d.Expire)
	w.WriteInt32(d.Minimum)
	return nil
}

// MXData is the RDATA of an MX record.
type MXData struct {
	Preference int16
	Exchange   name.Name
}

func (d MXData) Encode(w *wire.Writer) error {
	w.WriteUint16(uint16(d.Preference))
	w.WriteName(d.Exchange, true)
	return nil
}

// SRVData is the RDATA of an SRV record.
type SRVData struct {
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   name.Name
}

func (d SRVData) Encode(w *wire.Writer) error {
	w.WriteUint16(d.Priority)
	w.WriteUint16(d.Weight)
	w.WriteUint16(d.Port)
	// RFC 2782 forbids compressing the SRV target; treated like DNAME.
	w.WriteName(d.Target, false)
	return nil
}

// HINFOData is the RDATA of a HINFO record: two character-strings.
type HINFOData struct {
	CPU string
	OS  string
}

func (d HINFOData) Encode(w *wire.Writer) error {
	if err := w.WriteCharString(d.CPU); err != nil {
		return err
	}
	return w.WriteCharString(d.OS)
}

// MINFOData is the RDATA of a MINFO record: two DnsNames.
type MINFOData struct {
	RMBox    name.Name
	EMailBox name.Name
}

func (d MINFOData) Encode(w *wire.Writer) error {
	w.WriteName(d.RMBox, true)
	w.WriteName(d.EMailBox, true)
	return nil
}

// TextData is the RDATA shape shared by TXT and SPF: one character-string.
type TextData struct{ Text string }

func (d TextData) Encode(w *wire.Writer) error { return w.WriteCharString(d.Text) }

// NullData is the opaque RDATA of a NULL record, and the fallback the
// default builder produces for any type it does not otherwise recognize.
type NullData struct{ Raw []byte }

func (d NullData) Encode(w *wire.Writer) error {
	w.WriteBytes(d.Raw)
	return nil
}

// WKSData is the RDATA of a WKS record: an IPv4 address, protocol
// number, and a service bitmap.
type WKSData struct {
	Addr     netip.Addr
	Protocol uint8
	Bitmap   []byte
}

func (d WKSData) Encode(w *wire.Writer) error {
	w.WriteIPv4(d.Addr.As4())
	w.WriteUint8(d.Protocol)
	w.WriteBytes(d.Bitmap)
	return nil
}
