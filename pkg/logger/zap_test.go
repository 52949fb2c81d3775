package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewZapLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	l := NewZapLogger(&ZapLoggerConfig{Encoding: "json", Level: "verbose"})
	zl := l.(*zapLogger)

	assert.False(t, zl.l.Core().Enabled(zap.DebugLevel))
	assert.True(t, zl.l.Core().Enabled(zap.InfoLevel))
}

func TestWith_CarriesFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := Wrap(zap.New(core)).With(zap.String("merchant_id", "m-1"))

	l.Info("plan computed", zap.String("status", "safe"))

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		ctx := entries[0].ContextMap()
		assert.Equal(t, "m-1", ctx["merchant_id"])
		assert.Equal(t, "safe", ctx["status"])
	}
}
