package name

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	cases := []string{
		"example.com.",
		"example.com",
		"www.example.com.",
		"_sip._tcp.example.com.",
		".",
		"a.",
	}
	for _, s := range cases {
		n, err := Parse(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, n.String(), s)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := []string{
		"-bad.example.com.",
		"bad-.example.com.",
		"toolonglabel" + string(make([]byte, 70)) + ".com.",
		"a_b.example.com.",
	}
	for _, s := range cases {
		_, err := Parse(s)
		assert.Error(t, err, s)
	}
}

func TestCanonicalization(t *testing.T) {
	a := MustParse("EXAMPLE.com.")
	b := MustParse("example.COM.")
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	c := MustParse("example.com")
	d := MustParse("example.com.")
	assert.True(t, c.Equal(d))
}

func TestIsParentOf(t *testing.T) {
	parent := MustParse("example.com.")
	child := MustParse("www.example.com.")
	assert.True(t, parent.IsParentOf(child))
	assert.False(t, child.IsParentOf(parent))
	assert.False(t, parent.IsParentOf(parent))
}

func TestMakeRelative(t *testing.T) {
	parent := MustParse("example.com.")
	child := MustParse("www.example.com.")

	rel, err := child.MakeRelative(parent)
	require.NoError(t, err)
	assert.Equal(t, "www", rel.String())
	assert.True(t, rel.IsRelative())

	_, err = parent.MakeRelative(child)
	assert.Error(t, err)
}

func TestConcat(t *testing.T) {
	rel := MustParse("www")
	suffix := MustParse("example.com.")
	full, err := rel.Concat(suffix)
	require.NoError(t, err)
	assert.Equal(t, "www.example.com.", full.String())

	abs := MustParse("www.example.com.")
	_, err = abs.Concat(suffix)
	assert.Error(t, err)
}

func TestReverseIPv4(t *testing.T) {
	addr := netip.MustParseAddr("8.8.4.4")
	n, err := Reverse(addr)
	require.NoError(t, err)
	assert.Equal(t, "4.4.8.8.in-addr.arpa.", n.String())
}

func TestReverseIPv6(t *testing.T) {
	addr := netip.MustParseAddr("2001:db8::1")
	n, err := Reverse(addr)
	require.NoError(t, err)
	labels := n.Labels()
	require.Len(t, labels, 32+2) // 32 nibbles + "ip6" + "arpa"
	assert.Equal(t, "ip6", labels[32])
	assert.Equal(t, "arpa", labels[33])
}
