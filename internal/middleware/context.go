package middleware

import (
	"context"
)

// context keys are unexported to avoid collisions
type ctxKey string

const ctxKeyLocale ctxKey = "locale"

// WithLocale stores the resolved locale in context
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, ctxKeyLocale, locale)
}

// LocaleFrom returns the resolved locale if present
func LocaleFrom(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyLocale).(string)
	return v, ok && v != ""
}
