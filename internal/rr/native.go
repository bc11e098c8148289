package rr

import (
	"github.com/dnsscience/dnsdig/internal/wire"
)

// nativeBuilder recognizes every RR type this package names and
// constructs the matching variant.
type nativeBuilder struct{}

func (nativeBuilder) CanBuild(t Type) bool {
	switch t {
	case TypeA, TypeAAAA, TypeNS, TypeCNAME, TypePTR, TypeDNAME, TypeSOA,
		TypeMX, TypeSRV, TypeHINFO, TypeMINFO, TypeTXT, TypeSPF,
		TypeMB, TypeMG, TypeMR, TypeNULL, TypeWKS:
		return true
	default:
		return false
	}
}

func (nativeBuilder) Build(t Type, r *wire.Reader, rdlength int) (Data, error) {
	switch t {
	case TypeA:
		addr, err := r.ReadIPv4()
		if err != nil {
			return nil, err
		}
		return AData{Addr: addr}, nil

	case TypeAAAA:
		addr, err := r.ReadIPv6()
		if err != nil {
			return nil, err
		}
		return AAAAData{Addr: addr}, nil

	case TypeNS, TypeCNAME, TypePTR, TypeMB, TypeMG, TypeMR:
		target, err := r.ReadName()
		if err != nil {
			return nil, err
		}
		return NameData{Target: target, Compress: true}, nil

	case TypeDNAME:
		target, err := r.ReadName()
		if err != nil {
			return nil, err
		}
		return NameData{Target: target, Compress: false}, nil

	case TypeSOA:
		master, err := r.ReadName()
		if err != nil {
			return nil, err
		}
		rmbox, err := r.ReadName()
		if err != nil {
			return nil, err
		}
		serial, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		refresh, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		retry, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		expire, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		minimum, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		return SOAData{
			Master: master, RMBox: rmbox, Serial: serial,
			Refresh: refresh, Retry: retry, Expire: expire, Minimum: minimum,
		}, nil

	case TypeMX:
		pref, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		exchange, err := r.ReadName()
		if err != nil {
			return nil, err
		}
		return MXData{Preference: int16(pref), Exchange: exchange}, nil

	case TypeSRV:
		priority, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		weight, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		port, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		target, err := r.ReadName()
		if err != nil {
			return nil, err
		}
		return SRVData{Priority: priority, Weight: weight, Port: port, Target: target}, nil

	case TypeHINFO:
		cpu, err := r.ReadCharString()
		if err != nil {
			return nil, err
		}
		os, err := r.ReadCharString()
		if err != nil {
			return nil, err
		}
		return HINFOData{CPU: cpu, OS: os}, nil

	case TypeMINFO:
		rmbox, err := r.ReadName()
		if err != nil {
			return nil, err
		}
		emailbox, err := r.ReadName()
		if err != nil {
			return nil, err
		}
		return MINFOData{RMBox: rmbox, EMailBox: emailbox}, nil

	case TypeTXT:
		text, err := r.ReadCharString()
		if err != nil {
			return nil, err
		}
		return TextData{Text: text}, nil

	case TypeSPF:
		text, err := r.ReadCharString()
		if err != nil {
			return nil, err
		}
		return TextData{Text: text}, nil

	case TypeNULL:
		raw, err := r.ReadBytes(rdlength)
		if err != nil {
			return nil, err
		}
		return NullData{Raw: raw}, nil

	case TypeWKS:
		addr, err := r.ReadIPv4()
		if err != nil {
			return nil, err
		}
		proto, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		bitmapLen := rdlength - 5
		if bitmapLen < 0 {
			bitmapLen = 0
		}
		bitmap, err := r.ReadBytes(bitmapLen)
		if err != nil {
			return nil, err
		}
		return WKSData{Addr: addr, Protocol: proto, Bitmap: bitmap}, nil

	default:
		panic("nativeBuilder.Build called for a type it does not claim")
	}
}

// defaultBuilder is the forward-compatibility fallback: it reads exactly
// RDLENGTH bytes into an opaque NullData, for type codes the native
// builder does not represent (e.g. RP, AFSDB, present in the wire but
// carrying no structure this library exposes) and for genuinely unknown
// codes.
type defaultBuilder struct{}

func (defaultBuilder) CanBuild(Type) bool { return true }

func (defaultBuilder) Build(_ Type, r *wire.Reader, rdlength int) (Data, error) {
	raw, err := r.ReadBytes(rdlength)
	if err != nil {
		return nil, err
	}
	return NullData{Raw: raw}, nil
}
