package context

import "context"

type contextKey string

const attemptKey contextKey = "requestAttempt"

// WithAttempt records how many times the current call has already been
// replayed.
func WithAttempt(ctx context.Context, attempt int) context.Context {
	return context.WithValue(ctx, attemptKey, attempt)
}

// GetAttemptFromContext returns the replay count stored by WithAttempt, or 0.
func GetAttemptFromContext(ctx context.Context) int {
	if v, ok := ctx.Value(attemptKey).(int); ok {
		return v
	}
	return 0
}
