package logger

import (
	"context"
	"log/slog"
)

type strategyKey struct{}

// WithStrategy stores the name of the authentication strategy handling the request.
func WithStrategy(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, strategyKey{}, name)
}

// Strategy returns the strategy name stored in ctx, or an empty string.
func Strategy(ctx context.Context) string {
	name, _ := ctx.Value(strategyKey{}).(string)
	return name
}

// StrategyExtractor adds "strategy" to every log entry written with a
// context that carries a strategy name.
func StrategyExtractor() ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if name := Strategy(ctx); name != "" {
			return slog.String("strategy", name), true
		}
		return slog.Attr{}, false
	}
}
