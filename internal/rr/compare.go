package rr

import "strings"

// Compare orders records for the CLI's output formatting: by type name,
// then owner, then a type-specific tiebreaker. Total, reflexive,
// antisymmetric, and transitive over mixed-type record populations.
// Tiebreakers exist for MX (preference, exchange), SRV (priority,
// weight, target), the single-name types, TXT/SPF, HINFO, MINFO, A and
// AAAA; every other type (SOA, NULL, WKS, opaque fallback records)
// compares equal once type and owner match, as do SRV records that
// differ only in port.
func Compare(a, b Record) int {
	if c := strings.Compare(a.Type.String(), b.Type.String()); c != 0 {
		return c
	}
	if c := strings.Compare(a.Owner.String(), b.Owner.String()); c != 0 {
		return c
	}
	return compareData(a.Data, b.Data)
}

func compareData(a, b Data) int {
	switch ad := a.(type) {
	case MXData:
		bd := b.(MXData)
		if ad.Preference != bd.Preference {
			return cmpInt(int(ad.Preference), int(bd.Preference))
		}
		return strings.Compare(ad.Exchange.String(), bd.Exchange.String())

	case SRVData:
		bd := b.(SRVData)
		if ad.Priority != bd.Priority {
			return cmpInt(int(ad.Priority), int(bd.Priority))
		}
		if ad.Weight != bd.Weight {
			return cmpInt(int(ad.Weight), int(bd.Weight))
		}
		return strings.Compare(ad.Target.String(), bd.Target.String())

	case NameData:
		bd := b.(NameData)
		return strings.Compare(ad.Target.String(), bd.Target.String())

	case TextData:
		bd := b.(TextData)
		return strings.Compare(ad.Text, bd.Text)

	case HINFOData:
		bd := b.(HINFOData)
		if c := strings.Compare(ad.CPU, bd.CPU); c != 0 {
			return c
		}
		return strings.Compare(ad.OS, bd.OS)

	case MINFOData:
		bd := b.(MINFOData)
		if c := strings.Compare(ad.RMBox.String(), bd.RMBox.String()); c != 0 {
			return c
		}
		return strings.Compare(ad.EMailBox.String(), bd.EMailBox.String())

	case AData:
		bd := b.(AData)
		return strings.Compare(ad.Addr.String(), bd.Addr.String())

	case AAAAData:
		bd := b.(AAAAData)
		return strings.Compare(ad.Addr.String(), bd.Addr.String())

	default:
		return 0
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
