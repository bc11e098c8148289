// Package resolver implements a stub resolver: turning a question into
// a reply by consulting a cache, picking a forwarder, sending over a
// transport, and validating the response code.
package resolver

import (
	"context"
	"net/netip"
	"sync"
	"time"

	"github.com/dnsscience/dnsdig/dnscache"
	"github.com/dnsscience/dnsdig/dnslog"
	"github.com/dnsscience/dnsdig/dnsmetrics"
	"github.com/dnsscience/dnsdig/internal/eventbus"
	"github.com/dnsscience/dnsdig/internal/message"
	"github.com/dnsscience/dnsdig/internal/name"
	"github.com/dnsscience/dnsdig/internal/random"
	"github.com/dnsscience/dnsdig/internal/rr"
	"github.com/dnsscience/dnsdig/internal/support"
	"github.com/dnsscience/dnsdig/internal/transport"
)

// Resolver is safe for concurrent Resolve calls; the forwarder list is
// read under RLock so concurrent readers never block each other, and
// SetServers is the only writer.
type Resolver struct {
	mu         sync.RWMutex
	servers    []netip.AddrPort
	nameSuffix *name.Name

	transport transport.Transport
	cache     dnscache.Cache
	log       dnslog.Logger
	metrics   *dnsmetrics.Metrics
	clock     support.Clock
	registry  *rr.Registry
	events    *eventbus.Bus // optional; nil disables publishing
}

// Config is the set of collaborators a Resolver is built from. Servers
// must be non-empty.
type Config struct {
	Servers    []netip.AddrPort
	NameSuffix *name.Name
	Transport  transport.Transport
	Cache      dnscache.Cache // nil becomes dnscache.NoOp{}
	Log        dnslog.Logger  // nil becomes dnslog.Discard{}
	Metrics    *dnsmetrics.Metrics
	Clock      support.Clock // nil becomes support.SystemClock{}
	Registry   *rr.Registry  // nil becomes rr.Default
	Events     *eventbus.Bus // optional; nil disables event publishing
}

// New builds a Resolver from cfg, applying the zero-value defaults
// documented on Config's fields.
func New(cfg Config) (*Resolver, error) {
	if err := support.RequireNonEmptyServers(len(cfg.Servers)); err != nil {
		return nil, err
	}
	r := &Resolver{
		servers:    append([]netip.AddrPort(nil), cfg.Servers...),
		nameSuffix: cfg.NameSuffix,
		transport:  cfg.Transport,
		cache:      cfg.Cache,
		log:        cfg.Log,
		metrics:    cfg.Metrics,
		clock:      cfg.Clock,
		registry:   cfg.Registry,
		events:     cfg.Events,
	}
	if r.cache == nil {
		r.cache = dnscache.NoOp{}
	}
	if r.log == nil {
		r.log = dnslog.Discard{}
	}
	if r.clock == nil {
		r.clock = support.SystemClock{}
	}
	if r.registry == nil {
		r.registry = rr.Default
	}
	return r, nil
}

// SetServers replaces the forwarder list under a dedicated mutex so
// mutations never race with an in-flight Resolve's server snapshot. A
// single-query override passes serverOverride to Resolve instead of
// calling this.
func (r *Resolver) SetServers(servers []netip.AddrPort) error {
	if err := support.RequireNonEmptyServers(len(servers)); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.servers = append([]netip.AddrPort(nil), servers...)
	return nil
}

func (r *Resolver) serverSnapshot() []netip.AddrPort {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.servers
}


// Resolve rewrites a relative question against the configured name
// suffix, checks the cache, then tries each forwarder in turn until one
// replies. A reply whose RCODE is not NOERROR fails the call with a
// ResolutionError without trying the remaining forwarders; only
// transport errors move on to the next one. If serverOverride is
// non-nil, it is used
// instead of the resolver's own forwarder list for this call only,
// never touching shared state.
func (r *Resolver) Resolve(ctx context.Context, question message.Question, serverOverride *netip.AddrPort) (*message.Reply, error) {
	r.mu.RLock()
	suffix := r.nameSuffix
	r.mu.RUnlock()

	if question.Name.IsRelative() && suffix != nil {
		rewritten, err := question.Name.Concat(*suffix)
		if err != nil {
			return nil, err
		}
		question.Name = rewritten
	}

	if reply, ok := r.cache.Get(question); ok {
		if r.metrics != nil {
			r.metrics.ObserveCache(true)
		}
		r.publishCacheEvent(ctx, question, true)
		return reply, nil
	}
	if r.metrics != nil {
		r.metrics.ObserveCache(false)
	}
	r.publishCacheEvent(ctx, question, false)

	var servers []netip.AddrPort
	if serverOverride != nil {
		servers = []netip.AddrPort{*serverOverride}
	} else {
		servers = r.serverSnapshot()
	}
	if len(servers) == 0 {
		return nil, support.ErrNoEndPointsReplied.Wrap(nil)
	}

	query := message.NewQuery(random.TransactionID(), true)
	if err := query.AddQuestion(question); err != nil {
		return nil, err
	}

	var lastErr error
	for _, endpoint := range servers {
		reply, err := r.transport.Send(ctx, query, endpoint)
		if err != nil {
			lastErr = err
			r.log.Warn(map[string]any{"endpoint": endpoint.String(), "error": err.Error()}, "transport attempt failed")
			r.publishResolveEvent(ctx, question, endpoint, err)
			continue
		}
		if reply.Header.ResponseCode != message.RCodeNoError {
			resErr := &support.ResolutionError{Code: uint8(reply.Header.ResponseCode)}
			r.publishResolveEvent(ctx, question, endpoint, resErr)
			return nil, resErr
		}

		r.cache.Put(question, reply, r.cacheExpiry(reply))
		r.publishResolveEvent(ctx, question, endpoint, nil)
		return reply, nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, support.ErrNoEndPointsReplied.Wrap(nil)
}

func (r *Resolver) publishResolveEvent(ctx context.Context, question message.Question, endpoint netip.AddrPort, err error) {
	if r.events == nil {
		return
	}
	r.events.Publish(ctx, eventbus.TopicResolve, eventbus.ResolveEvent{
		Question: question.Name.String(),
		Server:   endpoint.String(),
		Err:      err,
	})
}

func (r *Resolver) publishCacheEvent(ctx context.Context, question message.Question, hit bool) {
	if r.events == nil {
		return
	}
	r.events.Publish(ctx, eventbus.TopicCache, eventbus.CacheEvent{
		Question: question.Name.String(),
		Hit:      hit,
	})
}

// cacheExpiry is the soonest expiry among the reply's answer records, or
// clock.Now() (do not cache) if there are none.
func (r *Resolver) cacheExpiry(reply *message.Reply) time.Time {
	now := r.clock.Now()
	if len(reply.Answers) == 0 {
		return now
	}
	earliest := reply.Answers[0].Expires
	for _, rec := range reply.Answers[1:] {
		if rec.Expires.Before(earliest) {
			earliest = rec.Expires
		}
	}
	return earliest
}
