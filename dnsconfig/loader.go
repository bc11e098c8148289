package dnsconfig

import (
	"fmt"
	"net/netip"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlFile mirrors Options but with servers as plain "host:port" strings,
// since netip.AddrPort has no reflective YAML mapping.
type yamlFile struct {
	Servers        []string         `yaml:"servers"`
	DiscoverFromOS *bool            `yaml:"discover_from_os"`
	NameSuffix     string           `yaml:"name_suffix"`
	Transport      TransportOptions `yaml:"transport"`
	CacheEnabled   bool             `yaml:"cache_enabled"`
	CacheSize      int              `yaml:"cache_size"`
}

// Load reads a YAML configuration file shaped like Options and returns
// the parsed value, starting from Default() so unset fields keep their
// default values.
func Load(path string) (Options, error) {
	opts := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("dnsconfig: reading %s: %w", path, err)
	}

	yf := yamlFile{Transport: opts.Transport}
	if err := yaml.Unmarshal(data, &yf); err != nil {
		return opts, fmt.Errorf("dnsconfig: parsing %s: %w", path, err)
	}

	for _, s := range yf.Servers {
		addr, err := netip.ParseAddrPort(s)
		if err != nil {
			return opts, fmt.Errorf("dnsconfig: invalid server %q: %w", s, err)
		}
		opts.Servers = append(opts.Servers, addr)
	}
	if yf.DiscoverFromOS != nil {
		opts.DiscoverFromOS = *yf.DiscoverFromOS
	}
	if yf.NameSuffix != "" {
		opts.NameSuffix = yf.NameSuffix
	}
	if yf.Transport.Kind != "" {
		opts.Transport = yf.Transport
	}
	opts.CacheEnabled = yf.CacheEnabled
	if yf.CacheSize != 0 {
		opts.CacheSize = yf.CacheSize
	}

	return opts, nil
}
