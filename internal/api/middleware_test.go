package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	// Buckets are per IP.
	assert.True(t, rl.Allow("10.0.0.2"))

	now = now.Add(time.Second)
	assert.True(t, rl.Allow("10.0.0.1"))
}

func TestRateLimiter_SweepsIdle(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Now()
	rl.now = func() time.Time { return now }

	rl.Allow("10.0.0.1")
	require.Len(t, rl.limiters, 1)

	now = now.Add(limiterIdleTTL + limiterSweepEvery + time.Second)
	rl.Allow("10.0.0.2")
	assert.Len(t, rl.limiters, 1)
	assert.Contains(t, rl.limiters, "10.0.0.2")
}

func TestRateLimiter_AuthRoutes(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Now()
	rl.now = func() time.Time { return now }
	env := newTestEnv(t, rl)

	body := `{"email":"asha@example.in","password":"x"}`
	rec, out := env.do(t, "/api/auth/login", body, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, out = env.do(t, "/api/auth/login", body, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Too many requests, slow down", out["error"])

	// Health is outside the limited group.
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	hrec := httptest.NewRecorder()
	env.router.ServeHTTP(hrec, req)
	assert.Equal(t, http.StatusOK, hrec.Code)
}

func TestRateLimiter_NonPositiveRateDisables(t *testing.T) {
	for _, rps := range []int{0, -1} {
		assert.Nil(t, NewRateLimiter(rps, 1))
	}

	env := newTestEnv(t, NewRateLimiter(0, 1))
	body := `{"email":"asha@example.in","password":"x"}`
	for i := 0; i < 5; i++ {
		rec, _ := env.do(t, "/api/auth/login", body, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
}

func TestRemoteIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "203.0.113.9:5555"
	assert.Equal(t, "203.0.113.9", remoteIP(r))

	r.RemoteAddr = "203.0.113.9"
	assert.Equal(t, "203.0.113.9", remoteIP(r))
}

func TestValidateSchema(t *testing.T) {
	assert.NoError(t, validateSchema(loginLoader, []byte(`{"email":"a","password":"b"}`)))

	err := validateSchema(loginLoader, []byte(`{"email":"a"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")

	assert.Error(t, validateSchema(chatMessageLoader, []byte(`not json`)))
}
