package transport

import (
	"context"
	"net"
	"net/netip"
	"testing"
	"time"

	"github.com/dnsscience/dnsdig/internal/message"
	"github.com/dnsscience/dnsdig/internal/name"
	"github.com/dnsscience/dnsdig/internal/rr"
	"github.com/dnsscience/dnsdig/internal/support"
	"github.com/dnsscience/dnsdig/internal/wire"
	"github.com/stretchr/testify/require"
)

var clock = support.FixedClock{At: time.Unix(0, 0)}

func newQuery(t *testing.T, id uint16) *message.Query {
	t.Helper()
	q := message.NewQuery(id, true)
	require.NoError(t, q.AddQuestion(message.Question{
		Name: name.MustParse("example.com."), Type: rr.TypeA, Class: rr.ClassIN,
	}))
	return q
}

// udpEchoServer replies to exactly one datagram with a well-formed reply
// correlated to the query it receives, then exits.
func udpEchoServer(t *testing.T, truncated bool) netip.AddrPort {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)

	go func() {
		defer conn.Close()
		buf := make([]byte, 512)
		n, addr, err := conn.ReadFromUDP(buf)
		if err != nil {
			return
		}
		r := wire.NewReader(buf[:n])
		q, err := message.ReadQueryFrom(r, rr.Default, clock)
		if err != nil {
			return
		}
		rep := message.NewReply(q, message.RCodeNoError)
		rep.Header.Truncated = truncated
		w := wire.NewWriter()
		_ = rep.WriteTo(w)
		_, _ = conn.WriteToUDP(w.Bytes(), addr)
	}()

	addr := conn.LocalAddr().(*net.UDPAddr)
	return netip.AddrPortFrom(netip.MustParseAddr("127.0.0.1"), uint16(addr.Port))
}

func tcpEchoServer(t *testing.T) netip.AddrPort {
	t.Helper()
	return tcpEchoServerAt(t, "127.0.0.1:0")
}

func tcpEchoServerAt(t *testing.T, addr string) netip.AddrPort {
	t.Helper()
	ln, err := net.Listen("tcp", addr)
	require.NoError(t, err)

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		defer ln.Close()

		var lenPrefix [2]byte
		if _, err := conn.Read(lenPrefix[:]); err != nil {
			return
		}
		qlen := int(lenPrefix[0])<<8 | int(lenPrefix[1])
		buf := make([]byte, qlen)
		if _, err := conn.Read(buf); err != nil {
			return
		}
		q, err := message.ReadQueryFrom(wire.NewReader(buf), rr.Default, clock)
		if err != nil {
			return
		}
		rep := message.NewReply(q, message.RCodeNoError)
		w := wire.NewWriter()
		_ = rep.WriteTo(w)
		payload := w.Bytes()
		var out [2]byte
		out[0] = byte(len(payload) >> 8)
		out[1] = byte(len(payload))
		conn.Write(out[:])
		conn.Write(payload)
	}()

	tcpAddr := ln.Addr().(*net.TCPAddr)
	return netip.AddrPortFrom(netip.MustParseAddr("127.0.0.1"), uint16(tcpAddr.Port))
}

func TestUDPTransportRoundTrip(t *testing.T) {
	endpoint := udpEchoServer(t, false)
	ut := NewUDPTransport(100*time.Millisecond, 500*time.Millisecond)
	ut.Clock = clock

	reply, err := ut.Send(context.Background(), newQuery(t, 99), endpoint)
	require.NoError(t, err)
	require.Equal(t, uint16(99), reply.Header.ID)
}

func TestUDPTransportExhaustsRetriesOnSilence(t *testing.T) {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	defer conn.Close()
	addr := conn.LocalAddr().(*net.UDPAddr)
	endpoint := netip.AddrPortFrom(netip.MustParseAddr("127.0.0.1"), uint16(addr.Port))

	ut := NewUDPTransport(20*time.Millisecond, 20*time.Millisecond)
	ut.TransmitRetries = 2
	ut.Clock = clock

	_, err = ut.Send(context.Background(), newQuery(t, 1), endpoint)
	require.ErrorIs(t, err, support.ErrNoEndPointsReplied)
}

func TestTCPTransportRoundTrip(t *testing.T) {
	endpoint := tcpEchoServer(t)
	tt := NewTCPTransport(time.Second, time.Second, time.Second)
	tt.Clock = clock

	reply, err := tt.Send(context.Background(), newQuery(t, 7), endpoint)
	require.NoError(t, err)
	require.Equal(t, uint16(7), reply.Header.ID)
}

func TestSmartTransportFallsBackToTCPOnTruncation(t *testing.T) {
	// Both the UDP and TCP legs of a single nameserver share one port
	// number (just different protocols), so the server fixture binds UDP
	// first to learn an available port, then binds TCP to that same port.
	endpoint := udpEchoServer(t, true)
	tcpEchoServerAt(t, netip.AddrPortFrom(netip.MustParseAddr("127.0.0.1"), endpoint.Port()).String())

	ut := NewUDPTransport(100*time.Millisecond, 500*time.Millisecond)
	ut.Clock = clock
	tt := NewTCPTransport(time.Second, time.Second, time.Second)
	tt.Clock = clock

	smart := NewSmartTransport(ut, tt)

	reply, err := smart.Send(context.Background(), newQuery(t, 55), endpoint)
	require.NoError(t, err)
	require.False(t, reply.Header.Truncated)
}

func TestSmartTransportChoosesTCPForAXFR(t *testing.T) {
	tcpEndpoint := tcpEchoServer(t)
	ut := NewUDPTransport(50*time.Millisecond, 50*time.Millisecond)
	ut.Clock = clock
	tt := NewTCPTransport(time.Second, time.Second, time.Second)
	tt.Clock = clock
	smart := NewSmartTransport(ut, tt)

	q := message.NewQuery(3, true)
	require.NoError(t, q.AddQuestion(message.Question{
		Name: name.MustParse("example.com."), Type: rr.TypeAXFR, Class: rr.ClassIN,
	}))

	reply, err := smart.Send(context.Background(), q, tcpEndpoint)
	require.NoError(t, err)
	require.Equal(t, uint16(3), reply.Header.ID)
}
