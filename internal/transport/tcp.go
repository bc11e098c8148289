package transport

import (
	"encoding/binary"
	"io"
	"net"
	"net/netip"
	"time"

	"context"

	"github.com/dnsscience/dnsdig/dnsmetrics"
	"github.com/dnsscience/dnsdig/internal/message"
	"github.com/dnsscience/dnsdig/internal/pool"
	"github.com/dnsscience/dnsdig/internal/rr"
	"github.com/dnsscience/dnsdig/internal/support"
	"github.com/dnsscience/dnsdig/internal/wire"
)

const defaultMaxIncomingMessageSize = 5 * 1024 * 1024 // 5 MiB

// TCPTransport is a single length-framed request/response over a
// freshly dialed stream socket.
type TCPTransport struct {
	ConnectTimeout          time.Duration
	SendTimeout             time.Duration
	ReceiveTimeout          time.Duration
	MaxIncomingMessageSize  int
	Registry                *rr.Registry
	Clock                   support.Clock
	Metrics                 *dnsmetrics.Metrics
}

// NewTCPTransport returns a transport with the default maximum
// incoming message size (5 MiB) and the given timeouts.
func NewTCPTransport(connectTimeout, sendTimeout, receiveTimeout time.Duration) *TCPTransport {
	return &TCPTransport{
		ConnectTimeout:         connectTimeout,
		SendTimeout:            sendTimeout,
		ReceiveTimeout:         receiveTimeout,
		MaxIncomingMessageSize: defaultMaxIncomingMessageSize,
		Registry:               rr.Default,
		Clock:                  support.SystemClock{},
	}
}

// Send is a single attempt that raises on first failure: no retry
// loop, unlike UDP.
func (t *TCPTransport) Send(ctx context.Context, query *message.Query, endpoint netip.AddrPort) (*message.Reply, error) {
	start := t.Clock.Now()
	observe := func(result string) {
		if t.Metrics != nil {
			t.Metrics.ObserveQuery("tcp", result, time.Since(start))
		}
	}

	dialer := net.Dialer{Timeout: t.ConnectTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", net.TCPAddrFromAddrPort(endpoint).String())
	if err != nil {
		observe("error")
		return nil, support.ErrTransportFailed.Wrap(err)
	}
	defer conn.Close()

	w := wire.NewWriter()
	if err := query.WriteTo(w); err != nil {
		observe("error")
		return nil, support.ErrTransportFailed.Wrap(err)
	}
	payload := w.Bytes()

	if err := conn.SetWriteDeadline(time.Now().Add(t.SendTimeout)); err != nil {
		observe("error")
		return nil, support.ErrTransportFailed.Wrap(err)
	}
	var lenPrefix [2]byte
	binary.BigEndian.PutUint16(lenPrefix[:], uint16(len(payload)))
	if _, err := conn.Write(lenPrefix[:]); err != nil {
		observe("error")
		return nil, support.ErrTransportFailed.Wrap(err)
	}
	if _, err := conn.Write(payload); err != nil {
		observe("error")
		return nil, support.ErrTransportFailed.Wrap(err)
	}
	if t.Metrics != nil {
		t.Metrics.BytesSent.WithLabelValues("tcp").Add(float64(len(payload) + 2))
	}

	if err := conn.SetReadDeadline(time.Now().Add(t.ReceiveTimeout)); err != nil {
		observe("error")
		return nil, support.ErrTransportFailed.Wrap(err)
	}
	if _, err := io.ReadFull(conn, lenPrefix[:]); err != nil {
		observe("error")
		return nil, support.ErrTransportFailed.Wrap(err)
	}
	replyLen := int(binary.BigEndian.Uint16(lenPrefix[:]))
	if replyLen < 1 {
		observe("error")
		return nil, support.ErrTransportReceivedEmptyMessage.Wrap(nil)
	}
	if replyLen > t.MaxIncomingMessageSize {
		observe("error")
		return nil, support.ErrIncomingMessageTooLarge.Wrap(nil)
	}

	var buf []byte
	if replyLen <= pool.LargeBufferSize {
		pooled := pool.GetLargeBuffer()
		defer pool.PutLargeBuffer(pooled)
		buf = pooled[:replyLen]
	} else {
		buf = make([]byte, replyLen)
	}
	if _, err := io.ReadFull(conn, buf); err != nil {
		observe("error")
		return nil, support.ErrTransportFailed.Wrap(err)
	}
	if t.Metrics != nil {
		t.Metrics.BytesRecv.WithLabelValues("tcp").Add(float64(replyLen + 2))
	}

	reply, err := message.ReadReplyFrom(wire.NewReader(buf), t.Registry, t.Clock)
	if err != nil {
		observe("error")
		return nil, support.ErrNoEndPointsReplied.Wrap(err)
	}
	if !spoofGuardOK(query, reply) {
		if t.Metrics != nil {
			t.Metrics.SpoofDropped.Inc()
		}
		observe("error")
		return nil, support.ErrNoEndPointsReplied.Wrap(nil)
	}

	observe("ok")
	return reply, nil
}
