package dnsconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resolver.yaml")
	contents := `
servers:
  - "1.1.1.1:53"
  - "8.8.8.8:53"
name_suffix: "example.com."
cache_enabled: true
cache_size: 4096
transport:
  kind: smart
  transmit_retries: 2
  send_timeout: 5s
  receive_timeout: 5s
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	opts, err := Load(path)
	require.NoError(t, err)
	require.Len(t, opts.Servers, 2)
	require.Equal(t, "1.1.1.1:53", opts.Servers[0].String())
	require.Equal(t, "example.com.", opts.NameSuffix)
	require.True(t, opts.CacheEnabled)
	require.Equal(t, 4096, opts.CacheSize)
	require.Equal(t, TransportSmart, opts.Transport.Kind)
	require.Equal(t, 2, opts.Transport.TransmitRetries)
}

func TestDefaultOptions(t *testing.T) {
	opts := Default()
	require.True(t, opts.DiscoverFromOS)
	require.Equal(t, TransportSmart, opts.Transport.Kind)
	require.Equal(t, 4, opts.Transport.TransmitRetries)
	require.False(t, opts.CacheEnabled)
}
