package session

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "http://127.0.0.1:8080/api/v1"

func TestRedisCookieJarSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	key := DefaultKey + CookieKeySuffix
	refreshURL, _ := url.Parse(testBaseURL + "/auth/refresh-token")

	jar, err := NewRedisCookieJar(ctx, client, key, testBaseURL, time.Hour)
	require.NoError(t, err)
	assert.Empty(t, jar.Cookies(refreshURL))

	loginURL, _ := url.Parse(testBaseURL + "/auth/login")
	jar.SetCookies(loginURL, []*http.Cookie{{Name: "refreshToken", Value: "r1", Path: "/", HttpOnly: true}})
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Hour, mr.TTL(key))

	restarted, err := NewRedisCookieJar(ctx, client, key, testBaseURL, time.Hour)
	require.NoError(t, err)
	cookies := restarted.Cookies(refreshURL)
	require.Len(t, cookies, 1)
	assert.Equal(t, "refreshToken", cookies[0].Name)
	assert.Equal(t, "r1", cookies[0].Value)

	// Logout expires the cookie, the stored copy goes with it.
	restarted.SetCookies(loginURL, []*http.Cookie{{Name: "refreshToken", Value: "", Path: "/", MaxAge: -1}})
	assert.False(t, mr.Exists(key))
}

func TestRedisCookieJarIgnoresOtherHosts(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	jar, err := NewRedisCookieJar(ctx, client, "jar", testBaseURL, 0)
	require.NoError(t, err)

	other, _ := url.Parse("https://payments.example.com/checkout")
	jar.SetCookies(other, []*http.Cookie{{Name: "sid", Value: "x"}})
	assert.False(t, mr.Exists("jar"))
	assert.Len(t, jar.Cookies(other), 1)
}

func TestRedisCookieJarRejectsCorruptValue(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, mr.Set("jar", "not json"))

	_, err := NewRedisCookieJar(context.Background(), client, "jar", testBaseURL, 0)
	assert.Error(t, err)
}
