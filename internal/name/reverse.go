package name

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/dnsscience/dnsdig/internal/support"
)

// Reverse builds the PTR qname for addr: for IPv4, the reversed octets
// under in-addr.arpa.; for IPv6, the reversed lowercase hex nibbles under
// ip6.arpa.
func Reverse(addr netip.Addr) (Name, error) {
	if !addr.IsValid() {
		return Name{}, support.ErrArgument.Wrap(fmt.Errorf("invalid address"))
	}
	if addr.Is4() || addr.Is4In6() {
		a4 := addr.As4()
		s := fmt.Sprintf("%d.%d.%d.%d.in-addr.arpa.", a4[3], a4[2], a4[1], a4[0])
		return Parse(s)
	}

	a16 := addr.As16()
	var b strings.Builder
	for i := len(a16) - 1; i >= 0; i-- {
		lo := a16[i] & 0x0F
		hi := a16[i] >> 4
		b.WriteByte(hexDigit(lo))
		b.WriteByte('.')
		b.WriteByte(hexDigit(hi))
		b.WriteByte('.')
	}
	b.WriteString("ip6.arpa.")
	return Parse(b.String())
}

func hexDigit(v byte) byte {
	const digits = "0123456789abcdef"
	return digits[v&0x0F]
}
