package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestWithContext_AddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("ecoscan-test", &buf)
	t.Cleanup(func() { Logger = zerolog.Nop() })

	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	Info(ctx).Str("barcode", "8901234567890").Msg("lookup")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ecoscan-test", entry["service"])
	assert.Equal(t, "lookup", entry["message"])
	assert.Equal(t, span.SpanContext().TraceID().String(), entry["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), entry["span_id"])
}

func TestWithContext_NoSpan(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("ecoscan-test", &buf)
	t.Cleanup(func() { Logger = zerolog.Nop() })

	Warn(context.Background()).Msg("plain")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.NotContains(t, entry, "trace_id")
	assert.Equal(t, "warn", entry["level"])
}

func TestSetLevel(t *testing.T) {
	original := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(original) })

	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{in: "debug", want: zerolog.DebugLevel},
		{in: "WARN", want: zerolog.WarnLevel},
		{in: " error ", want: zerolog.ErrorLevel},
		{in: "", want: zerolog.InfoLevel},
		{in: "verbose", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		SetLevel(tt.in)
		assert.Equal(t, tt.want, zerolog.GlobalLevel(), tt.in)
	}
}
