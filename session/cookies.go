package session

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"

	redisdb "github.com/octabyte/bm-gateway/db/redis"
	"github.com/octabyte/bm-gateway/utils"
	"github.com/octabyte/bm-gateway/utils/logger"
)

// CookieKeySuffix is appended to the session key to store the backend's
// cookies, the refresh token among them.
const CookieKeySuffix = ":cookies"

type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// redisJar keeps the cookies of one backend in memory and mirrors them to
// redis after every change, so the refresh token outlives the process.
type redisJar struct {
	jar    *cookiejar.Jar
	client *redis.Client
	key    string
	ttl    time.Duration
	origin *url.URL
	logger *zap.Logger
}

// NewRedisCookieJar returns a cookie jar for the backend at baseURL that
// starts with the cookies persisted under key.
func NewRedisCookieJar(ctx context.Context, client *redis.Client, key, baseURL string, ttl time.Duration) (http.CookieJar, error) {
	origin, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	raw, found, err := redisdb.Get(ctx, client, key)
	if err != nil {
		return nil, fmt.Errorf("load cookies: %w", err)
	}
	if found {
		var stored []storedCookie
		if err := utils.BytesToStruct(raw, &stored); err != nil {
			return nil, fmt.Errorf("decode cookies: %w", err)
		}
		cookies := make([]*http.Cookie, 0, len(stored))
		for _, c := range stored {
			cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value, Path: "/"})
		}
		jar.SetCookies(origin, cookies)
	}

	return &redisJar{
		jar:    jar,
		client: client,
		key:    key,
		ttl:    ttl,
		origin: origin,
		logger: logger.Named("session"),
	}, nil
}

func (r *redisJar) Cookies(u *url.URL) []*http.Cookie {
	return r.jar.Cookies(u)
}

func (r *redisJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	r.jar.SetCookies(u, cookies)
	if u.Host != r.origin.Host {
		return
	}
	if err := r.persist(context.Background()); err != nil {
		r.logger.Warn("failed to persist cookies", zap.Error(err))
	}
}

func (r *redisJar) persist(ctx context.Context) error {
	current := r.jar.Cookies(r.origin)
	if len(current) == 0 {
		return redisdb.Del(ctx, r.client, r.key)
	}

	stored := make([]storedCookie, 0, len(current))
	for _, c := range current {
		stored = append(stored, storedCookie{Name: c.Name, Value: c.Value})
	}
	raw, err := utils.StructToBytes(stored)
	if err != nil {
		return err
	}
	return redisdb.Set(ctx, r.client, r.key, raw, r.ttl)
}
