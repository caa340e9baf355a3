package log

import (
	"context"
	"slices"
)

// scope is what a context carries for the loggers: the level of the next
// record and the dotted name of the driver component emitting it.
type scope struct {
	level Level
	names []string
}

type scopeKey struct{}

func scopeOf(ctx context.Context) scope {
	s, _ := ctx.Value(scopeKey{}).(scope)

	return s
}

func (s scope) named(names ...string) scope {
	// clipped so that sibling scopes never share a backing array
	s.names = append(slices.Clip(s.names), names...)

	return s
}

func WithLevel(ctx context.Context, lvl Level) context.Context {
	s := scopeOf(ctx)
	s.level = lvl

	return context.WithValue(ctx, scopeKey{}, s)
}

func LevelFromContext(ctx context.Context) Level {
	return scopeOf(ctx).level
}

// WithNames appends names to the component name carried by ctx.
func WithNames(ctx context.Context, names ...string) context.Context {
	return context.WithValue(ctx, scopeKey{}, scopeOf(ctx).named(names...))
}

func NamesFromContext(ctx context.Context) []string {
	names := scopeOf(ctx).names
	if names == nil {
		return []string{}
	}

	return slices.Clip(names)
}

func with(ctx context.Context, lvl Level, names ...string) context.Context {
	s := scopeOf(ctx).named(names...)
	s.level = lvl

	return context.WithValue(ctx, scopeKey{}, s)
}
