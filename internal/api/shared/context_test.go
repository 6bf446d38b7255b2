package shared

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraceID(t *testing.T) {
	t.Run("set and get", func(t *testing.T) {
		ctx := SetTraceID(context.Background())
		traceID := GetTraceID(ctx)

		assert.Len(t, traceID, TraceIDLength*2, "trace ID should be a 32-character hex string")
	})

	t.Run("missing trace ID", func(t *testing.T) {
		assert.Empty(t, GetTraceID(context.Background()))
	})

	t.Run("unique per request", func(t *testing.T) {
		first := GetTraceID(SetTraceID(context.Background()))
		second := GetTraceID(SetTraceID(context.Background()))
		assert.NotEqual(t, first, second)
	})
}
