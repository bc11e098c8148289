package dnslog

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewZapForwardsFieldsAndMessage(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := NewZap(zap.New(core))

	logger.Warn(map[string]any{"endpoint": "127.0.0.1:53", "attempt": 2}, "transport attempt failed")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "transport attempt failed", entries[0].Message)
	require.Equal(t, zap.WarnLevel, entries[0].Level)

	fields := entries[0].ContextMap()
	require.Equal(t, "127.0.0.1:53", fields["endpoint"])
}

func TestDiscardDoesNothing(t *testing.T) {
	var d Discard
	d.Debug(map[string]any{"a": 1}, "ignored")
	d.Info(nil, "ignored")
	d.Warn(nil, "ignored")
	d.Error(nil, "ignored")
}
