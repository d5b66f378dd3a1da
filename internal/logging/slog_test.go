package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG msg=dbg a=1",
		"level=INFO msg=inf b=2",
		"level=WARN msg=wrn c=3",
		"level=ERROR msg=err d=4",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, requestIDKey)
}

func TestSlogLogger_With(t *testing.T) {
	log, buf := newTestLogger(t)

	log.With("module", "talents_api").Info(context.Background(), "hello", "k", "v")

	assert.Contains(t, buf.String(), "msg=hello module=talents_api k=v")
}

func TestSlogLogger_RequestIDFromContext(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := ContextWithRequestID(context.Background(), "host/abc-000001")

	log.Info(ctx, "talent created", "id", 7)

	assert.Contains(t, buf.String(), "id=7 request_id=host/abc-000001")
}

func TestContextWithRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Same(t, ctx, ContextWithRequestID(ctx, ""), "empty id leaves ctx untouched")
	assert.Empty(t, RequestID(ctx))
	assert.Equal(t, "r1", RequestID(ContextWithRequestID(ctx, "r1")))
}

func TestWithRequestID_DoesNotAliasCallerArgs(t *testing.T) {
	args := make([]any, 2, 8)
	args[0], args[1] = "k", "v"
	ctx := ContextWithRequestID(context.Background(), "r1")

	got := withRequestID(ctx, args)
	assert.Equal(t, []any{"k", "v", "request_id", "r1"}, got)
	assert.Nil(t, args[:cap(args)][2], "caller backing array untouched")
}
