package resolver

import (
	"context"
	"net/netip"

	"github.com/dnsscience/dnsdig/internal/asyncop"
	"github.com/dnsscience/dnsdig/internal/message"
	"github.com/dnsscience/dnsdig/internal/name"
)

// AsyncResolver pairs a Resolver with the worker queue its Begin*/End*
// methods dispatch onto.
type AsyncResolver struct {
	*Resolver
	queue *asyncop.Queue
}

// NewAsync wraps r with a bounded worker queue for its async surface.
func NewAsync(r *Resolver, queue *asyncop.Queue) *AsyncResolver {
	return &AsyncResolver{Resolver: r, queue: queue}
}

// BeginResolve queues a Resolve call and returns immediately with a
// Future; EndResolve blocks for the result.
func (a *AsyncResolver) BeginResolve(ctx context.Context, question message.Question, serverOverride *netip.AddrPort) *asyncop.Future[*message.Reply] {
	return asyncop.QueueOperation(a.queue, ctx, func(ctx context.Context) (*message.Reply, error) {
		return a.Resolver.Resolve(ctx, question, serverOverride)
	})
}

// EndResolve blocks until future resolves, enforcing the single-End
// contract of internal/asyncop.
func EndResolve(future *asyncop.Future[*message.Reply]) (*message.Reply, error) {
	return future.End()
}

// BeginGetHostEntry queues GetHostEntry.
func (a *AsyncResolver) BeginGetHostEntry(ctx context.Context, hostname name.Name) *asyncop.Future[IPHostEntry] {
	return asyncop.QueueOperation(a.queue, ctx, func(ctx context.Context) (IPHostEntry, error) {
		return a.Resolver.GetHostEntry(ctx, hostname)
	})
}

// EndGetHostEntry blocks until future resolves.
func EndGetHostEntry(future *asyncop.Future[IPHostEntry]) (IPHostEntry, error) {
	return future.End()
}

// BeginGetHostEntryByAddr queues GetHostEntryByAddr.
func (a *AsyncResolver) BeginGetHostEntryByAddr(ctx context.Context, addr netip.Addr) *asyncop.Future[name.Name] {
	return asyncop.QueueOperation(a.queue, ctx, func(ctx context.Context) (name.Name, error) {
		return a.Resolver.GetHostEntryByAddr(ctx, addr)
	})
}

// EndGetHostEntryByAddr blocks until future resolves.
func EndGetHostEntryByAddr(future *asyncop.Future[name.Name]) (name.Name, error) {
	return future.End()
}

// BeginGetMXInfo queues GetMXInfo.
func (a *AsyncResolver) BeginGetMXInfo(ctx context.Context, domain name.Name) *asyncop.Future[MXInfo] {
	return asyncop.QueueOperation(a.queue, ctx, func(ctx context.Context) (MXInfo, error) {
		return a.Resolver.GetMXInfo(ctx, domain)
	})
}

// EndGetMXInfo blocks until future resolves.
func EndGetMXInfo(future *asyncop.Future[MXInfo]) (MXInfo, error) {
	return future.End()
}

// BeginGetNameServers queues GetNameServers.
func (a *AsyncResolver) BeginGetNameServers(ctx context.Context, domain name.Name) *asyncop.Future[[]name.Name] {
	return asyncop.QueueOperation(a.queue, ctx, func(ctx context.Context) ([]name.Name, error) {
		return a.Resolver.GetNameServers(ctx, domain)
	})
}

// EndGetNameServers blocks until future resolves.
func EndGetNameServers(future *asyncop.Future[[]name.Name]) ([]name.Name, error) {
	return future.End()
}
