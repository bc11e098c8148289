package dnscache

import (
	"testing"
	"time"

	"github.com/dnsscience/dnsdig/internal/message"
	"github.com/dnsscience/dnsdig/internal/name"
	"github.com/dnsscience/dnsdig/internal/rr"
	"github.com/stretchr/testify/require"
)

func TestShardedGetMiss(t *testing.T) {
	c := NewSharded(16)
	q := message.Question{Name: name.MustParse("example.com."), Type: rr.TypeA, Class: rr.ClassIN}

	_, ok := c.Get(q)
	require.False(t, ok)
}

func TestShardedPutThenGet(t *testing.T) {
	c := NewSharded(16)
	q := message.Question{Name: name.MustParse("example.com."), Type: rr.TypeA, Class: rr.ClassIN}
	reply := &message.Reply{}

	c.Put(q, reply, time.Now().Add(time.Minute))

	got, ok := c.Get(q)
	require.True(t, ok)
	require.Same(t, reply, got)
}

func TestShardedExpiresEntries(t *testing.T) {
	c := NewSharded(16)
	q := message.Question{Name: name.MustParse("example.com."), Type: rr.TypeA, Class: rr.ClassIN}
	c.Put(q, &message.Reply{}, time.Now().Add(-time.Second))

	_, ok := c.Get(q)
	require.False(t, ok)
}

func TestShardedDistinguishesQuestions(t *testing.T) {
	c := NewSharded(16)
	a := message.Question{Name: name.MustParse("example.com."), Type: rr.TypeA, Class: rr.ClassIN}
	mx := message.Question{Name: name.MustParse("example.com."), Type: rr.TypeMX, Class: rr.ClassIN}

	c.Put(a, &message.Reply{}, time.Now().Add(time.Minute))
	_, ok := c.Get(mx)
	require.False(t, ok)
}
