package transport

import (
	"context"
	"net/netip"

	"github.com/dnsscience/dnsdig/internal/message"
	"github.com/dnsscience/dnsdig/internal/rr"
	"github.com/dnsscience/dnsdig/internal/support"
)

// SmartTransport does per-query transport selection (AXFR always goes
// via TCP) and UDP-first failover to TCP on transport error or a
// truncated (TC) reply.
type SmartTransport struct {
	UDP *UDPTransport
	TCP *TCPTransport
}

// NewSmartTransport wraps udp and tcp.
func NewSmartTransport(udp *UDPTransport, tcp *TCPTransport) *SmartTransport {
	return &SmartTransport{UDP: udp, TCP: tcp}
}

// Send chooses UDP unless the question is an AXFR request, and falls
// back from UDP to TCP on a *TransportError or a truncated reply. A TCP
// attempt never falls back further.
func (s *SmartTransport) Send(ctx context.Context, query *message.Query, endpoint netip.AddrPort) (*message.Reply, error) {
	if len(query.Questions) > 0 && query.Questions[0].Type == rr.TypeAXFR {
		return s.TCP.Send(ctx, query, endpoint)
	}

	reply, err := s.UDP.Send(ctx, query, endpoint)
	if err != nil {
		if _, ok := err.(*support.TransportError); ok {
			return s.TCP.Send(ctx, query, endpoint)
		}
		return nil, err
	}
	if reply.Header.Truncated {
		return s.TCP.Send(ctx, query, endpoint)
	}
	return reply, nil
}
