package resolver

import (
	"context"
	"net/netip"
	"testing"
	"time"

	"github.com/dnsscience/dnsdig/internal/asyncop"
	"github.com/dnsscience/dnsdig/internal/message"
	"github.com/dnsscience/dnsdig/internal/name"
	"github.com/dnsscience/dnsdig/internal/rr"
	"github.com/dnsscience/dnsdig/internal/support"
	"github.com/dnsscience/dnsdig/internal/worker"
	"github.com/stretchr/testify/require"
)

var clock = support.FixedClock{At: time.Unix(0, 0)}

// fakeTransport answers every query with a canned reply built by fn, or
// fails if fn is nil.
type fakeTransport struct {
	fn func(q *message.Query) (*message.Reply, error)
}

func (f *fakeTransport) Send(ctx context.Context, q *message.Query, endpoint netip.AddrPort) (*message.Reply, error) {
	return f.fn(q)
}

var testServer = netip.MustParseAddrPort("127.0.0.1:53")

func newTestResolver(t *testing.T, fn func(q *message.Query) (*message.Reply, error)) *Resolver {
	t.Helper()
	r, err := New(Config{
		Servers:   []netip.AddrPort{testServer},
		Transport: &fakeTransport{fn: fn},
		Clock:     clock,
	})
	require.NoError(t, err)
	return r
}

func TestResolveReturnsAnswer(t *testing.T) {
	r := newTestResolver(t, func(q *message.Query) (*message.Reply, error) {
		rep := message.NewReply(q, message.RCodeNoError)
		rep.Answers = append(rep.Answers, rr.NewRecord(
			name.MustParse("example.com."), rr.TypeA, rr.ClassIN, 300*time.Second,
			rr.AData{Addr: netip.MustParseAddr("93.184.216.34")}, clock,
		))
		return rep, nil
	})

	reply, err := r.Resolve(context.Background(), message.Question{
		Name: name.MustParse("example.com."), Type: rr.TypeA, Class: rr.ClassIN,
	}, nil)
	require.NoError(t, err)
	require.Len(t, reply.Answers, 1)
}

func TestResolveFailsWithResolutionErrorOnNonZeroRCode(t *testing.T) {
	r := newTestResolver(t, func(q *message.Query) (*message.Reply, error) {
		return message.NewReply(q, message.RCodeNxDomain), nil
	})

	_, err := r.Resolve(context.Background(), message.Question{
		Name: name.MustParse("nosuchdomain.invalid."), Type: rr.TypeA, Class: rr.ClassIN,
	}, nil)
	require.Error(t, err)
	var resErr *support.ResolutionError
	require.ErrorAs(t, err, &resErr)
	require.Equal(t, uint8(message.RCodeNxDomain), resErr.Code)
}

func TestResolveUsesCacheOnSecondCall(t *testing.T) {
	calls := 0
	r := newTestResolver(t, func(q *message.Query) (*message.Reply, error) {
		calls++
		rep := message.NewReply(q, message.RCodeNoError)
		rep.Answers = append(rep.Answers, rr.NewRecord(
			name.MustParse("example.com."), rr.TypeA, rr.ClassIN, 300*time.Second,
			rr.AData{Addr: netip.MustParseAddr("1.2.3.4")}, clock,
		))
		return rep, nil
	})
	r.cache = newMemCache()

	q := message.Question{Name: name.MustParse("example.com."), Type: rr.TypeA, Class: rr.ClassIN}
	_, err := r.Resolve(context.Background(), q, nil)
	require.NoError(t, err)
	_, err = r.Resolve(context.Background(), q, nil)
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestResolveRewritesRelativeNameWithSuffix(t *testing.T) {
	var gotName string
	r := newTestResolver(t, func(q *message.Query) (*message.Reply, error) {
		gotName = q.Questions[0].Name.String()
		return message.NewReply(q, message.RCodeNoError), nil
	})
	suffix := name.MustParse("example.com.")
	r.nameSuffix = &suffix

	relative := name.MustParse("www")
	_, err := r.Resolve(context.Background(), message.Question{Name: relative, Type: rr.TypeA, Class: rr.ClassIN}, nil)
	require.NoError(t, err)
	require.Equal(t, "www.example.com.", gotName)
}

func TestResolveIteratesForwardersOnTransportFailure(t *testing.T) {
	attempts := 0
	r, err := New(Config{
		Servers: []netip.AddrPort{
			netip.MustParseAddrPort("127.0.0.1:1"),
			testServer,
		},
		Transport: &fakeTransport{fn: func(q *message.Query) (*message.Reply, error) {
			attempts++
			if attempts == 1 {
				return nil, support.ErrTransportFailed.Wrap(nil)
			}
			return message.NewReply(q, message.RCodeNoError), nil
		}},
		Clock: clock,
	})
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), message.Question{
		Name: name.MustParse("example.com."), Type: rr.TypeA, Class: rr.ClassIN,
	}, nil)
	require.NoError(t, err)
	require.Equal(t, 2, attempts)
}

func TestGetMXInfoOrdersByPreference(t *testing.T) {
	r := newTestResolver(t, func(q *message.Query) (*message.Reply, error) {
		rep := message.NewReply(q, message.RCodeNoError)
		rep.Answers = append(rep.Answers,
			rr.NewRecord(name.MustParse("example.com."), rr.TypeMX, rr.ClassIN, 0,
				rr.MXData{Preference: 20, Exchange: name.MustParse("mx2.example.com.")}, clock),
			rr.NewRecord(name.MustParse("example.com."), rr.TypeMX, rr.ClassIN, 0,
				rr.MXData{Preference: 10, Exchange: name.MustParse("mx1.example.com.")}, clock),
		)
		return rep, nil
	})

	info, err := r.GetMXInfo(context.Background(), name.MustParse("example.com."))
	require.NoError(t, err)
	require.Len(t, info.Exchangers, 2)
	require.Equal(t, int16(10), info.Exchangers[0].Preference)
	require.Equal(t, "mx1.example.com.", info.Exchangers[0].Exchange.String())
}

func TestAsyncResolveRoundTrip(t *testing.T) {
	r := newTestResolver(t, func(q *message.Query) (*message.Reply, error) {
		return message.NewReply(q, message.RCodeNoError), nil
	})
	queue := asyncop.NewQueue(worker.Config{Workers: 2, QueueSize: 4})
	defer queue.Close()
	async := NewAsync(r, queue)

	future := async.BeginResolve(context.Background(), message.Question{
		Name: name.MustParse("example.com."), Type: rr.TypeA, Class: rr.ClassIN,
	}, nil)
	reply, err := EndResolve(future)
	require.NoError(t, err)
	require.NotNil(t, reply)
}

// memCache is a trivial in-memory cache keyed by question name, used
// only by TestResolveUsesCacheOnSecondCall.
type memCache struct {
	entries map[string]*message.Reply
}

func newMemCache() *memCache { return &memCache{entries: map[string]*message.Reply{}} }

func (c *memCache) Get(q message.Question) (*message.Reply, bool) {
	rep, ok := c.entries[q.Name.String()]
	return rep, ok
}

func (c *memCache) Put(q message.Question, reply *message.Reply, expires time.Time) {
	c.entries[q.Name.String()] = reply
}
