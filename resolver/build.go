package resolver

import (
	"net/netip"
	"os"
	"strings"

	"github.com/dnsscience/dnsdig/dnscache"
	"github.com/dnsscience/dnsdig/dnsconfig"
	"github.com/dnsscience/dnsdig/dnslog"
	"github.com/dnsscience/dnsdig/dnsmetrics"
	"github.com/dnsscience/dnsdig/internal/name"
	"github.com/dnsscience/dnsdig/internal/support"
	"github.com/dnsscience/dnsdig/internal/transport"
)

// BuildOptions are the collaborators external callers (cmd/dnsdig,
// cmd/dnsdigbench) may want to supply in place of the defaults New would
// otherwise pick; everything here is optional.
type BuildOptions struct {
	Log     dnslog.Logger
	Metrics *dnsmetrics.Metrics
}

// NewFromOptions builds a Resolver from a dnsconfig.Options value: it
// picks the transport per opts.Transport.Kind, wires a sharded cache when
// enabled, and falls back to resolv.conf-style OS discovery when
// opts.Servers is empty and DiscoverFromOS is set.
func NewFromOptions(opts dnsconfig.Options, build BuildOptions) (*Resolver, error) {
	servers := opts.Servers
	if len(servers) == 0 && opts.DiscoverFromOS {
		discovered, err := discoverSystemServers()
		if err != nil {
			return nil, err
		}
		servers = discovered
	}

	t, err := buildTransport(opts.Transport, build.Metrics)
	if err != nil {
		return nil, err
	}

	var cache dnscache.Cache = dnscache.NoOp{}
	if opts.CacheEnabled {
		size := opts.CacheSize
		if size <= 0 {
			size = 4096
		}
		cache = dnscache.NewSharded(size)
	}

	var suffix *name.Name
	if opts.NameSuffix != "" {
		parsed, err := name.Parse(opts.NameSuffix)
		if err != nil {
			return nil, err
		}
		suffix = &parsed
	}

	return New(Config{
		Servers:    servers,
		NameSuffix: suffix,
		Transport:  t,
		Cache:      cache,
		Log:        build.Log,
		Metrics:    build.Metrics,
	})
}

func buildTransport(opts dnsconfig.TransportOptions, metrics *dnsmetrics.Metrics) (transport.Transport, error) {
	udp := transport.NewUDPTransport(opts.SendTimeout, opts.ReceiveTimeout)
	udp.TransmitRetries = opts.TransmitRetries
	udp.Metrics = metrics

	tcp := transport.NewTCPTransport(opts.ConnectTimeout, opts.SendTimeout, opts.ReceiveTimeout)
	tcp.Metrics = metrics

	switch opts.Kind {
	case dnsconfig.TransportUDP:
		return udp, nil
	case dnsconfig.TransportTCP:
		return tcp, nil
	case dnsconfig.TransportSmart, "":
		return transport.NewSmartTransport(udp, tcp), nil
	default:
		return nil, support.ErrArgument.Wrap(nil)
	}
}

// discoverSystemServers reads the nameserver lines of /etc/resolv.conf,
// the same source net.Resolver consults on Unix, since this resolver does
// not otherwise touch the OS stub resolver.
func discoverSystemServers() ([]netip.AddrPort, error) {
	data, err := os.ReadFile("/etc/resolv.conf")
	if err != nil {
		return nil, support.ErrArgument.Wrap(err)
	}

	var servers []netip.AddrPort
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 || fields[0] != "nameserver" {
			continue
		}
		addr, err := netip.ParseAddr(fields[1])
		if err != nil {
			continue
		}
		servers = append(servers, netip.AddrPortFrom(addr, 53))
	}
	if len(servers) == 0 {
		return nil, support.ErrNoEndPointsReplied.Wrap(nil)
	}
	return servers, nil
}
