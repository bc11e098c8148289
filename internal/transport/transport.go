// Package transport implements the UDP, TCP, and Smart send paths:
// turning an encoded query into bytes on a socket and an encoded reply
// back, with the retry, spoof-guard, and failover policies each
// transport is responsible for.
package transport

import (
	"context"
	"net/netip"

	"github.com/dnsscience/dnsdig/internal/message"
)

// Transport sends query to endpoint and returns the decoded reply, or an
// error from internal/support's Transport/Format/Usage kinds.
type Transport interface {
	Send(ctx context.Context, query *message.Query, endpoint netip.AddrPort) (*message.Reply, error)
}

// spoofGuardOK reports whether reply correlates to query: matching
// transaction ID and an elementwise-identical question section (shared
// by UDP and TCP).
func spoofGuardOK(query *message.Query, reply *message.Reply) bool {
	if reply.Header.ID != query.Header.ID {
		return false
	}
	if len(reply.Questions) != len(query.Questions) {
		return false
	}
	for i, q := range query.Questions {
		if !q.Equal(reply.Questions[i]) {
			return false
		}
	}
	return true
}
