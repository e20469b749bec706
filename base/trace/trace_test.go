package trace

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	shutdown, err := Init(context.Background(), "", "shawty-test")
	require.NoError(t, err)
	defer shutdown(context.Background())

	_, span := otel.Tracer("test").Start(context.Background(), "shorten")
	require.True(t, span.SpanContext().IsValid())
	span.End()

	entries := logs.FilterMessageSnippet("span=shorten").All()
	require.Len(t, entries, 1)
	require.True(t, strings.Contains(entries[0].Message, span.SpanContext().TraceID().String()))
}
