package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/octabyte/bm-gateway/models"
	"github.com/octabyte/bm-gateway/otel"
	otellogger "github.com/octabyte/bm-gateway/otel/logger"
	"github.com/octabyte/bm-gateway/otel/metrics"
	"github.com/octabyte/bm-gateway/utils"
)

// Refresh exchanges the refresh cookie for new credentials. When another
// refresh is already running it waits for that one and reports its outcome
// instead of starting a second call.
func (g *Gateway) Refresh(ctx context.Context) (*models.Credentials, error) {
	if !g.lock.TryAcquire() {
		if err := g.lock.WaitForUnlock(ctx); err != nil {
			return nil, err
		}
		creds, _, err := g.snapshot(ctx)
		if err != nil {
			return nil, err
		}
		if !creds.Authenticated() {
			return nil, ErrRefreshFailed
		}
		return creds, nil
	}
	return g.refreshLocked(ctx)
}

// refreshLocked runs with the refresh lock held and always releases it.
// On success the new credentials are stored before the lock is released, so
// every waiter observes them; on failure the session is cleared.
// Callbacks run after the release.
func (g *Gateway) refreshLocked(ctx context.Context) (*models.Credentials, error) {
	var hadSession bool
	creds, err := func() (*models.Credentials, error) {
		defer g.lock.Release()

		// The refresh is shared by every waiter, one caller giving up must
		// not log all of them out.
		ctx := context.WithoutCancel(ctx)

		creds, err := g.callRefresh(ctx)
		if err == nil {
			if err = g.commit(ctx, *creds); err == nil {
				return creds, nil
			}
			err = fmt.Errorf("%w: %w", ErrRefreshFailed, err)
		}

		var clearErr error
		if hadSession, clearErr = g.clear(ctx); clearErr != nil {
			g.logger.Error("failed to clear session", zap.Error(clearErr))
		}
		return nil, err
	}()

	if err != nil {
		if hadSession {
			g.fireLogout(ctx)
		}
		return nil, err
	}
	g.fireSessionSet(ctx, *creds)
	return creds, nil
}

func (g *Gateway) callRefresh(ctx context.Context) (*models.Credentials, error) {
	log := otellogger.WithTrace(ctx, g.logger)
	spanCtx, finish := otel.StartHTTPSpan(ctx, g.cfg.ServiceName, "backend", "refresh", http.MethodPost, g.cfg.BaseURL, g.cfg.RefreshPath)

	start := time.Now()
	resp, err := g.client.R().SetContext(spanCtx).Post(g.cfg.RefreshPath)
	if err != nil {
		finish(0, err)
		metrics.RecordRefresh(spanCtx, metrics.RefreshOutcomeError, time.Since(start))
		log.Warn("refresh call failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	finish(resp.StatusCode(), nil)

	creds, err := parseRefreshResponse(resp)
	if err != nil {
		metrics.RecordRefresh(spanCtx, metrics.RefreshOutcomeFailure, time.Since(start))
		log.Warn("refresh rejected", zap.Int("status", resp.StatusCode()), zap.Error(err))
		return nil, err
	}

	metrics.RecordRefresh(spanCtx, metrics.RefreshOutcomeSuccess, time.Since(start))
	log.Info("access token refreshed", zap.String("user", creds.User.ID))
	return creds, nil
}

// parseRefreshResponse accepts only a 2xx envelope carrying both
// data.accessToken and a data.user object.
func parseRefreshResponse(resp *resty.Response) (*models.Credentials, error) {
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: status %d: %s", ErrRefreshFailed, resp.StatusCode(),
			utils.EnvelopeMessage(resp.Body(), http.StatusText(resp.StatusCode())))
	}

	body := resp.Body()
	token, ok := utils.EnvelopeData(body, "accessToken")
	if !ok || token.String() == "" {
		return nil, fmt.Errorf("%w: response has no access token", ErrRefreshFailed)
	}
	user, ok := utils.EnvelopeData(body, "user")
	if !ok || !user.IsObject() {
		return nil, fmt.Errorf("%w: response has no user", ErrRefreshFailed)
	}

	creds := &models.Credentials{AccessToken: token.String()}
	if err := utils.BytesToStruct([]byte(user.Raw), &creds.User); err != nil {
		return nil, fmt.Errorf("%w: decode user: %w", ErrRefreshFailed, err)
	}
	return creds, nil
}
