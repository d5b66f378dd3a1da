// Package logging is the structured logger used by the server and
// talentctl, with slog (JSON) and zap (console) backends.
package logging

import "context"

// Logger takes key/value pairs after the message:
//
//	log.Info(ctx, "talent created", "id", t.ID)
//
// A request id stored with ContextWithRequestID is added to every record
// logged with that context.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger carrying args on every record.
	With(args ...any) Logger
}

const requestIDKey = "request_id"

type ctxKey struct{}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func withRequestID(ctx context.Context, args []any) []any {
	if id := RequestID(ctx); id != "" {
		return append(args[:len(args):len(args)], requestIDKey, id)
	}
	return args
}
