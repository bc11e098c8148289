// Package dnsconfig is the resolver's construction-time configuration:
// a plain Options struct plus an optional YAML loader, grounded on the
// teacher's YAML conventions.
package dnsconfig

import (
	"net/netip"
	"time"
)

// TransportKind selects the resolver's transport strategy.
type TransportKind string

const (
	TransportUDP   TransportKind = "udp"
	TransportTCP   TransportKind = "tcp"
	TransportSmart TransportKind = "smart"
)

// TransportOptions configures the chosen transport(s).
type TransportOptions struct {
	Kind            TransportKind `yaml:"kind"`
	TransmitRetries int           `yaml:"transmit_retries"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout"`
	SendTimeout     time.Duration `yaml:"send_timeout"`
	ReceiveTimeout  time.Duration `yaml:"receive_timeout"`
}

// Options is the Resolver's construction-time configuration.
type Options struct {
	Servers        []netip.AddrPort `yaml:"servers"`
	DiscoverFromOS bool             `yaml:"discover_from_os"`
	NameSuffix     string           `yaml:"name_suffix,omitempty"`
	Transport      TransportOptions `yaml:"transport"`
	CacheEnabled   bool             `yaml:"cache_enabled"`
	CacheSize      int              `yaml:"cache_size,omitempty"`
}

// Default returns the resolver's out-of-the-box defaults: OS discovery
// on, smart transport with 4 UDP retries and 10-second timeouts both
// ways, cache disabled.
func Default() Options {
	return Options{
		DiscoverFromOS: true,
		Transport: TransportOptions{
			Kind:            TransportSmart,
			TransmitRetries: 4,
			ConnectTimeout:  10 * time.Second,
			SendTimeout:     10 * time.Second,
			ReceiveTimeout:  10 * time.Second,
		},
		CacheEnabled: false,
	}
}
