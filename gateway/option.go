package gateway

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/octabyte/bm-gateway/models"
	"github.com/octabyte/bm-gateway/session"
)

type Option func(*Gateway)

// WithStore sets where credentials are kept. Defaults to a memory store.
func WithStore(store session.Store) Option {
	return func(g *Gateway) {
		g.store = store
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// WithTransport replaces the HTTP transport used for every call.
func WithTransport(transport http.RoundTripper) Option {
	return func(g *Gateway) {
		g.client.SetTransport(transport)
	}
}

// WithCookieJar replaces the jar carrying the refresh cookie.
func WithCookieJar(jar http.CookieJar) Option {
	return func(g *Gateway) {
		g.client.SetCookieJar(jar)
	}
}

// WithOnSessionSet registers a callback fired after new credentials are
// stored, by a refresh or by SetSession.
func WithOnSessionSet(fn func(ctx context.Context, creds models.Credentials)) Option {
	return func(g *Gateway) {
		g.onSessionSet = append(g.onSessionSet, fn)
	}
}

// WithOnLogout registers a callback fired after the session was cleared,
// either by Logout or by a failed refresh.
func WithOnLogout(fn func(ctx context.Context)) Option {
	return func(g *Gateway) {
		g.onLogout = append(g.onLogout, fn)
	}
}
