package transport

import (
	"context"
	"net"
	"net/netip"
	"time"

	"github.com/dnsscience/dnsdig/internal/message"
	"github.com/dnsscience/dnsdig/internal/pool"
	"github.com/dnsscience/dnsdig/internal/rr"
	"github.com/dnsscience/dnsdig/internal/support"
	"github.com/dnsscience/dnsdig/internal/wire"
	"github.com/dnsscience/dnsdig/dnsmetrics"
)

// UDPTransport is a connected-datagram send/retry loop with a spoof
// guard and a bounded receive buffer.
type UDPTransport struct {
	SendTimeout     time.Duration
	ReceiveTimeout  time.Duration
	TransmitRetries int
	DataSize        int // 512 by default
	Registry        *rr.Registry
	Clock           support.Clock
	Metrics         *dnsmetrics.Metrics // optional; nil disables instrumentation
}

// NewUDPTransport returns a transport with the default retry count (4)
// and receive buffer size (512 bytes), plus the given timeouts.
func NewUDPTransport(sendTimeout, receiveTimeout time.Duration) *UDPTransport {
	return &UDPTransport{
		SendTimeout:     sendTimeout,
		ReceiveTimeout:  receiveTimeout,
		TransmitRetries: 4,
		DataSize:        512,
		Registry:        rr.Default,
		Clock:           support.SystemClock{},
	}
}

func (t *UDPTransport) observe(result string, start time.Time) {
	if t.Metrics != nil {
		t.Metrics.ObserveQuery("udp", result, time.Since(start))
	}
}

// Send dials one connected UDP socket per call and reuses it for every
// retry attempt; a connected socket only ever yields
// datagrams from the peer it dialed, satisfying the source-address half
// of the spoof guard by construction; the transaction-id and
// question-section checks still run explicitly.
func (t *UDPTransport) Send(ctx context.Context, query *message.Query, endpoint netip.AddrPort) (*message.Reply, error) {
	if err := ctx.Err(); err != nil {
		return nil, support.ErrTransportFailed.Wrap(err)
	}

	start := t.Clock.Now()

	w := wire.NewWriter()
	if err := query.WriteTo(w); err != nil {
		t.observe("error", start)
		return nil, support.ErrTransportFailed.Wrap(err)
	}

	conn, err := net.DialUDP("udp", nil, net.UDPAddrFromAddrPort(endpoint))
	if err != nil {
		t.observe("error", start)
		return nil, support.ErrTransportFailed.Wrap(err)
	}
	defer conn.Close()

	recvBuf := pool.GetBuffer(t.DataSize)[:t.DataSize]
	defer pool.PutBuffer(recvBuf)

	for attempt := 0; attempt < t.TransmitRetries; attempt++ {
		if attempt > 0 && t.Metrics != nil {
			t.Metrics.Retries.Inc()
		}

		if err := conn.SetWriteDeadline(time.Now().Add(t.SendTimeout)); err != nil {
			t.observe("error", start)
			return nil, support.ErrTransportFailed.Wrap(err)
		}
		n, err := conn.Write(w.Bytes())
		if err != nil {
			t.observe("error", start)
			return nil, support.ErrTransportFailed.Wrap(err)
		}
		if t.Metrics != nil {
			t.Metrics.BytesSent.WithLabelValues("udp").Add(float64(n))
		}

		if err := conn.SetReadDeadline(time.Now().Add(t.ReceiveTimeout)); err != nil {
			t.observe("error", start)
			return nil, support.ErrTransportFailed.Wrap(err)
		}
		n, _, err = conn.ReadFromUDP(recvBuf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			t.observe("error", start)
			return nil, support.ErrTransportFailed.Wrap(err)
		}
		if n == 0 {
			continue
		}
		if t.Metrics != nil {
			t.Metrics.BytesRecv.WithLabelValues("udp").Add(float64(n))
		}

		reply, err := message.ReadReplyFrom(wire.NewReader(recvBuf[:n]), t.Registry, t.Clock)
		if err != nil {
			continue // malformed reply: counts as a lost packet
		}
		if !spoofGuardOK(query, reply) {
			if t.Metrics != nil {
				t.Metrics.SpoofDropped.Inc()
			}
			continue
		}

		t.observe("ok", start)
		return reply, nil
	}

	t.observe("no_reply", start)
	return nil, support.ErrNoEndPointsReplied.Wrap(nil)
}
