// Package dnscache implements the resolver.Cache seam: a no-op sink and
// a real sharded, TTL-aware implementation.
package dnscache

import (
	"time"

	"github.com/dnsscience/dnsdig/internal/message"
)

// Cache is the seam a Resolver consults before sending a query and
// populates after a successful one.
type Cache interface {
	Get(q message.Question) (*message.Reply, bool)
	Put(q message.Question, reply *message.Reply, expires time.Time)
}

// NoOp never stores anything; Get always misses. The resolver's default
// when dnsconfig.Options.CacheEnabled is false.
type NoOp struct{}

func (NoOp) Get(message.Question) (*message.Reply, bool)             { return nil, false }
func (NoOp) Put(message.Question, *message.Reply, time.Time) {}
