package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_JSONCarriesServiceAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := build(Options{Level: "info", Format: "json", Service: "labqc-api", Writer: &buf})

	l.Debug().Msg("dropped")
	l.Info().Str("case_id", "c-1").Msg("case created")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line), buf.String())
	assert.Equal(t, "labqc-api", line["service"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "c-1", line["case_id"])
	assert.Equal(t, "case created", line["message"])
}

func TestBuild_UnknownLevelIsDebug(t *testing.T) {
	var buf bytes.Buffer
	l := build(Options{Level: "chatty", Format: "console", Writer: &buf})
	l.Debug().Msg("cache miss")
	assert.Contains(t, buf.String(), "cache miss")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_SERVICE", "")
	assert.Equal(t, Options{Level: "warn", Format: "json", Service: "labqc-api"}, FromEnv())
}

func TestC_AddsRequestID(t *testing.T) {
	assert.Same(t, Get(), C(context.Background()), "no id, root logger")
	assert.Same(t, Get(), C(WithRequest(context.Background(), "")))

	ctx := WithRequest(context.Background(), "req-9")
	assert.NotSame(t, Get(), C(ctx))
	id, ok := RequestID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "req-9", id)
	assert.NotNil(t, Named("analytics"))
}
