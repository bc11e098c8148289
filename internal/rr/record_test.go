package rr

import (
	"net/netip"
	"testing"
	"time"

	"github.com/dnsscience/dnsdig/internal/name"
	"github.com/dnsscience/dnsdig/internal/support"
	"github.com/dnsscience/dnsdig/internal/wire"
	"github.com/stretchr/testify/require"
)

var clock = support.FixedClock{At: time.Unix(0, 0)}

func roundTrip(t *testing.T, rec Record) Record {
	t.Helper()
	w := wire.NewWriter()
	require.NoError(t, rec.WriteTo(w))

	r := wire.NewReader(w.Bytes())
	got, err := ReadRecordFrom(r, Default, clock)
	require.NoError(t, err)
	return got
}

func TestRecordRoundTripA(t *testing.T) {
	rec := NewRecord(
		name.MustParse("example.com."), TypeA, ClassIN, 300*time.Second,
		AData{Addr: netip.MustParseAddr("93.184.216.34")}, clock,
	)
	got := roundTrip(t, rec)
	require.Equal(t, rec.Owner.String(), got.Owner.String())
	require.Equal(t, rec.TTL, got.TTL)
	require.Equal(t, rec.Data, got.Data)
}

func TestRecordRoundTripMX(t *testing.T) {
	rec := NewRecord(
		name.MustParse("example.org."), TypeMX, ClassIN, 60*time.Second,
		MXData{Preference: 10, Exchange: name.MustParse("mx1.example.org.")}, clock,
	)
	got := roundTrip(t, rec)
	require.Equal(t, rec.Data, got.Data)
}

func TestRecordRoundTripSOANoCompression(t *testing.T) {
	rec := NewRecord(
		name.MustParse("example.com."), TypeSOA, ClassIN, 3600*time.Second,
		SOAData{
			Master: name.MustParse("ns1.example.com."), RMBox: name.MustParse("hostmaster.example.com."),
			Serial: 2024010100, Refresh: 7200, Retry: 3600, Expire: 1209600, Minimum: 300,
		}, clock,
	)
	got := roundTrip(t, rec)
	require.Equal(t, rec.Data, got.Data)
}

func TestDefaultBuilderOpaqueFallback(t *testing.T) {
	w := wire.NewWriter()
	rec := NewRecord(name.MustParse("x.example.com."), TypeRP, ClassIN, 60*time.Second,
		NullData{Raw: []byte{1, 2, 3}}, clock)
	require.NoError(t, rec.WriteTo(w))

	r := wire.NewReader(w.Bytes())
	got, err := ReadRecordFrom(r, Default, clock)
	require.NoError(t, err)
	require.Equal(t, NullData{Raw: []byte{1, 2, 3}}, got.Data)
}

func TestIsAlive(t *testing.T) {
	rec := NewRecord(name.MustParse("a."), TypeA, ClassIN, 10*time.Second, AData{}, clock)
	require.True(t, rec.IsAlive(clock.At))
	require.True(t, rec.IsAlive(clock.At.Add(10*time.Second)))
	require.False(t, rec.IsAlive(clock.At.Add(11*time.Second)))
}

func TestTTLHighBitClamp(t *testing.T) {
	w := wire.NewWriter()
	w.WriteName(name.MustParse("a."), true)
	w.WriteUint16(uint16(TypeA))
	w.WriteUint16(uint16(ClassIN))
	w.WriteUint32(0x80000001) // high bit set
	w.WriteUint16(4)
	w.WriteIPv4([4]byte{1, 2, 3, 4})

	r := wire.NewReader(w.Bytes())
	got, err := ReadRecordFrom(r, Default, clock)
	require.NoError(t, err)
	require.Equal(t, time.Duration(0), got.TTL)
}

func TestCompareOrdersByTypeThenOwnerThenTiebreaker(t *testing.T) {
	mxLo := NewRecord(name.MustParse("example.org."), TypeMX, ClassIN, 0,
		MXData{Preference: 10, Exchange: name.MustParse("mx1.example.org.")}, clock)
	mxHi := NewRecord(name.MustParse("example.org."), TypeMX, ClassIN, 0,
		MXData{Preference: 20, Exchange: name.MustParse("mx2.example.org.")}, clock)
	aRec := NewRecord(name.MustParse("example.org."), TypeA, ClassIN, 0,
		AData{Addr: netip.MustParseAddr("1.2.3.4")}, clock)

	require.True(t, Compare(mxLo, mxHi) < 0)
	require.True(t, Compare(mxHi, mxLo) > 0)
	require.True(t, Compare(aRec, mxLo) < 0) // "A" < "MX"
	require.Equal(t, 0, Compare(mxLo, mxLo))
}
