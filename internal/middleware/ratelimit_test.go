package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

func testRateLimiterConfig(generalBurst, publicBurst int) RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:     1,
		GeneralBurst:    generalBurst,
		PublicRate:      1,
		PublicBurst:     publicBurst,
		CleanupInterval: time.Minute,
	}
}

func requestAsUser(userID int64) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/departments", nil)
	return req.WithContext(context.WithValue(req.Context(), userIDContextKey, userID))
}

func TestNewRateLimiterConfig_PerMinute(t *testing.T) {
	cfg := NewRateLimiterConfig(120, 300)
	if cfg.GeneralRate != 2 || cfg.GeneralBurst != 120 {
		t.Errorf("general = %v/%d, want 2/120", cfg.GeneralRate, cfg.GeneralBurst)
	}
	if cfg.PublicRate != 5 || cfg.PublicBurst != 300 {
		t.Errorf("public = %v/%d, want 5/300", cfg.PublicRate, cfg.PublicBurst)
	}
}

func TestGeneralMiddleware_Returns429AfterBurst(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig(2, 10))
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(okHandler(nil))

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, requestAsUser(1))
		if w.Code != http.StatusOK {
			t.Errorf("request %d: status = %d, want %d", i, w.Code, http.StatusOK)
		}
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, requestAsUser(1))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}

	retry, err := strconv.Atoi(w.Header().Get("Retry-After"))
	if err != nil || retry < 1 {
		t.Errorf("Retry-After = %q, want a positive number", w.Header().Get("Retry-After"))
	}

	var body ErrorResponseBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Code != "RATE_LIMIT_EXCEEDED" {
		t.Errorf("code = %q, want RATE_LIMIT_EXCEEDED", body.Code)
	}
}

func TestGeneralMiddleware_IsolatesUsers(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig(1, 10))
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(okHandler(nil))

	codes := []int{}
	for _, uid := range []int64{1, 1, 2} {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, requestAsUser(uid))
		codes = append(codes, w.Code)
	}

	want := []int{http.StatusOK, http.StatusTooManyRequests, http.StatusOK}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("request %d: status = %d, want %d", i, codes[i], want[i])
		}
	}
	if n := rl.GeneralLimiterCount(); n != 2 {
		t.Errorf("GeneralLimiterCount() = %d, want 2", n)
	}
}

func TestGeneralMiddleware_WithoutUser_Returns401(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig(1, 1))
	defer rl.Stop()

	w := httptest.NewRecorder()
	rl.GeneralMiddleware()(okHandler(nil)).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/departments", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestPublicMiddleware_LimitsPerClientIP(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig(10, 1))
	defer rl.Stop()

	handler := rl.PublicMiddleware()(okHandler(nil))

	send := func(remote string) int {
		req := httptest.NewRequest(http.MethodGet, "/departments", nil)
		req.RemoteAddr = remote
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	if got := send("10.0.0.1:1111"); got != http.StatusOK {
		t.Errorf("first request: status = %d", got)
	}
	// ポートが違っても同じIP
	if got := send("10.0.0.1:2222"); got != http.StatusTooManyRequests {
		t.Errorf("second request from same IP: status = %d, want 429", got)
	}
	if got := send("10.0.0.2:1111"); got != http.StatusOK {
		t.Errorf("other IP: status = %d", got)
	}
	if n := rl.PublicLimiterCount(); n != 2 {
		t.Errorf("PublicLimiterCount() = %d, want 2", n)
	}
}

func TestRateLimiter_CleanupRemovesIdleEntries(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		GeneralRate: 1, GeneralBurst: 1, PublicRate: 1, PublicBurst: 1,
		CleanupInterval: time.Hour,
	})
	defer rl.Stop()

	rl.general.get("1")
	rl.public.get("10.0.0.1")
	rl.general.limiters["1"].lastAccess = time.Now().Add(-3 * time.Hour)

	rl.cleanup()

	if n := rl.GeneralLimiterCount(); n != 0 {
		t.Errorf("GeneralLimiterCount() = %d, want 0", n)
	}
	if n := rl.PublicLimiterCount(); n != 1 {
		t.Errorf("PublicLimiterCount() = %d, want 1", n)
	}
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(DefaultRateLimiterConfig())
	rl.Stop()
	rl.Stop()
}
