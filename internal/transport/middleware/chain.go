package middleware

import (
	"log/slog"
	"net/http"
)

// Middleware is a function that wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middleware into a single Middleware.
// Chain(mw1, mw2)(h) is mw1(mw2(h)): mw1 runs first.
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			final = mws[i](final)
		}
		return final
	}
}

// Default is the stack every API route runs behind. Recovery sits inside
// Logger so a recovered panic is still logged as a 500 with its request id.
func Default(logger *slog.Logger) Middleware {
	return Chain(
		RequestID(),
		Logger(logger),
		Recovery(logger),
	)
}
