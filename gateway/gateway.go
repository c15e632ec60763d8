// Package gateway performs authenticated calls against the membership
// backend. It attaches the session's bearer token and, when the backend
// answers 401, runs a single coordinated token refresh and replays the call
// once.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"

	"github.com/octabyte/bm-gateway/models"
	"github.com/octabyte/bm-gateway/otel"
	otellogger "github.com/octabyte/bm-gateway/otel/logger"
	"github.com/octabyte/bm-gateway/otel/metrics"
	"github.com/octabyte/bm-gateway/session"
	reqctx "github.com/octabyte/bm-gateway/utils/context"
)

// maxReplays bounds how often one call is re-issued after a 401.
const maxReplays = 1

type Gateway struct {
	cfg    Config
	client *resty.Client
	store  session.Store
	logger *zap.Logger
	lock   RefreshLock

	// stateMu makes a store read and the epoch it belongs to one snapshot.
	// epoch is bumped on every session write.
	stateMu sync.RWMutex
	epoch   uint64

	onSessionSet []func(context.Context, models.Credentials)
	onLogout     []func(context.Context)
}

func New(cfg Config, opts ...Option) (*Gateway, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gateway configuration: %w", err)
	}
	cfg = cfg.withDefaults()

	// The refresh token travels as an httpOnly cookie set by login.
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	client := otel.NewTracedRestyClient(cfg.BaseURL).
		SetCookieJar(jar).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	client.JSONMarshal = json.Marshal
	client.JSONUnmarshal = json.Unmarshal
	if cfg.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.UserAgent)
	}

	g := &Gateway{
		cfg:    cfg,
		client: client,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.store == nil {
		g.store = session.NewMemoryStore()
	}
	if g.logger == nil {
		g.logger = zap.L().Named("gateway")
	}

	return g, nil
}

// Execute sends req with the current access token. A 401 triggers the
// refresh flow: at most one refresh runs at a time, callers that see a 401
// while it runs wait for its outcome, and every call is replayed at most
// once. HTTP error statuses are returned as responses, never as errors;
// the error result is reserved for transport and session store failures.
func (g *Gateway) Execute(ctx context.Context, req *Request) (*resty.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	// req may be shared between goroutines, only the copy is normalized.
	r := *req
	if err := r.normalize(); err != nil {
		return nil, err
	}
	return g.do(ctx, &r)
}

func (g *Gateway) do(ctx context.Context, req *Request) (*resty.Response, error) {
	if err := g.lock.WaitForUnlock(ctx); err != nil {
		return nil, err
	}

	creds, epoch, err := g.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := g.send(ctx, req, creds)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != http.StatusUnauthorized || req.NoRefresh || reqctx.GetAttemptFromContext(ctx) >= maxReplays {
		return resp, nil
	}
	return g.recover(ctx, req, resp, epoch)
}

// recover handles a first-attempt 401 that was sent under session epoch
// sentEpoch.
func (g *Gateway) recover(ctx context.Context, req *Request, original *resty.Response, sentEpoch uint64) (*resty.Response, error) {
	log := otellogger.WithTrace(ctx, g.logger).With(zap.String("method", req.Method), zap.String("path", req.Path))

	if g.lock.TryAcquire() {
		if g.currentEpoch() == sentEpoch {
			creds, err := g.refreshLocked(ctx)
			if err != nil {
				log.Warn("session cleared after failed refresh", zap.Error(err))
				return original, nil
			}
			log.Debug("replaying request with refreshed token", zap.String("user", creds.User.ID))
			metrics.RecordReplay(ctx, false)
			return g.do(reqctx.WithAttempt(ctx, reqctx.GetAttemptFromContext(ctx)+1), req)
		}
		// The session changed after this request went out, the 401 is
		// answered by that change rather than by a new refresh.
		g.lock.Release()
	} else if err := g.lock.WaitForUnlock(ctx); err != nil {
		return nil, err
	}

	creds, _, err := g.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if !creds.Authenticated() {
		log.Debug("no session after concurrent refresh, returning unauthorized response")
		return original, nil
	}

	log.Debug("replaying request after concurrent refresh")
	metrics.RecordReplay(ctx, true)
	return g.do(reqctx.WithAttempt(ctx, reqctx.GetAttemptFromContext(ctx)+1), req)
}

func (g *Gateway) send(ctx context.Context, req *Request, creds *models.Credentials) (*resty.Response, error) {
	spanCtx, finish := otel.StartHTTPSpan(ctx, g.cfg.ServiceName, "backend", req.operation(), req.Method, g.cfg.BaseURL, req.Path)

	r := g.client.R().SetContext(spanCtx)
	if creds.Authenticated() {
		r.SetAuthToken(creds.AccessToken)
	}
	req.apply(r)

	metrics.IncrementInFlightRequests(spanCtx, req.Method)
	defer metrics.DecrementInFlightRequests(spanCtx, req.Method)

	start := time.Now()
	resp, err := r.Execute(req.Method, req.Path)
	if err != nil {
		finish(0, err)
		metrics.RecordRequest(spanCtx, req.Method, req.operation(), 0, time.Since(start))
		otellogger.WithTrace(spanCtx, g.logger).Debug("backend call failed",
			zap.String("method", req.Method), zap.String("path", req.Path), zap.Error(err))
		return nil, err
	}

	finish(resp.StatusCode(), nil)
	metrics.RecordRequest(spanCtx, req.Method, req.operation(), resp.StatusCode(), time.Since(start))
	otellogger.WithTrace(spanCtx, g.logger).Debug("backend call",
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.Int("status", resp.StatusCode()),
		zap.Bool("authenticated", creds.Authenticated()),
		zap.Int("attempt", reqctx.GetAttemptFromContext(ctx)),
	)
	return resp, nil
}

func (g *Gateway) Get(ctx context.Context, path string, query map[string]string, result interface{}) (*resty.Response, error) {
	return g.Execute(ctx, &Request{Method: http.MethodGet, Path: path, QueryParams: query, Result: result})
}

func (g *Gateway) Post(ctx context.Context, path string, body, result interface{}) (*resty.Response, error) {
	return g.Execute(ctx, &Request{Method: http.MethodPost, Path: path, Body: body, Result: result})
}

func (g *Gateway) Put(ctx context.Context, path string, body, result interface{}) (*resty.Response, error) {
	return g.Execute(ctx, &Request{Method: http.MethodPut, Path: path, Body: body, Result: result})
}

func (g *Gateway) Patch(ctx context.Context, path string, body, result interface{}) (*resty.Response, error) {
	return g.Execute(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body, Result: result})
}

func (g *Gateway) Delete(ctx context.Context, path string, result interface{}) (*resty.Response, error) {
	return g.Execute(ctx, &Request{Method: http.MethodDelete, Path: path, Result: result})
}
