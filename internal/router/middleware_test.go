package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/vendor-payments/internal/constants"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	if w2.Header().Get(requestIDHeader) == "" {
		t.Fatalf("generated request id should not be empty")
	}
}

func TestJWTAuthMiddlewareMissingSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(JWTAuthMiddleware("", nil))
	r.GET("/admin/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	r.ServeHTTP(w, req)

	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", resp.StatusCode)
	}
}

func TestVendorJWTAuthMiddlewareMissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(VendorJWTAuthMiddleware("vendor-test-secret-key-0123456789", nil))
	r.GET("/vendor/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/vendor/ping", nil)
	r.ServeHTTP(w, req)

	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", resp.StatusCode)
	}
}

func setupAntiForgeryRouter(adminID uint, tokens map[string]bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	consume := func(ctx context.Context, id uint, token string) (bool, error) {
		if id == 0 || !tokens[token] {
			return false, nil
		}
		delete(tokens, token)
		return true, nil
	}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if adminID != 0 {
			c.Set("admin_id", adminID)
		}
	})
	r.Use(AntiForgeryMiddleware(consume))
	r.PATCH("/admin/payments/1/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status_code": 200})
	})
	return r
}

func antiForgeryStatusCode(t *testing.T, r *gin.Engine, token string) int {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/admin/payments/1/status", nil)
	if token != "" {
		req.Header.Set(constants.AntiForgeryTokenHeader, token)
	}
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("http status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp.StatusCode
}

func TestAntiForgeryMiddleware(t *testing.T) {
	r := setupAntiForgeryRouter(7, map[string]bool{"token-ok": true})

	if code := antiForgeryStatusCode(t, r, ""); code != 400 {
		t.Fatalf("missing token status_code want 400 got %d", code)
	}
	if code := antiForgeryStatusCode(t, r, "token-bad"); code != 400 {
		t.Fatalf("invalid token status_code want 400 got %d", code)
	}
	if code := antiForgeryStatusCode(t, r, "token-ok"); code != 200 {
		t.Fatalf("valid token status_code want 200 got %d", code)
	}
	// 令牌一次有效，重放必须被拒绝
	if code := antiForgeryStatusCode(t, r, "token-ok"); code != 400 {
		t.Fatalf("replayed token status_code want 400 got %d", code)
	}
}

func TestAntiForgeryMiddlewareMissingAdmin(t *testing.T) {
	r := setupAntiForgeryRouter(0, map[string]bool{"token-ok": true})

	if code := antiForgeryStatusCode(t, r, "token-ok"); code != 401 {
		t.Fatalf("missing admin status_code want 401 got %d", code)
	}
}

func TestIsIssuedAfterInvalidBefore(t *testing.T) {
	now := time.Now()

	if !isIssuedAfterInvalidBefore(jwt.NewNumericDate(now), nil) {
		t.Fatalf("nil invalid_before should always pass")
	}
	if isIssuedAfterInvalidBefore(nil, &now) {
		t.Fatalf("missing issued_at should fail when invalid_before set")
	}
	past := now.Add(-time.Hour)
	if !isIssuedAfterInvalidBefore(jwt.NewNumericDate(now), &past) {
		t.Fatalf("token issued after invalid_before should pass")
	}
	future := now.Add(time.Hour)
	if isIssuedAfterInvalidBefore(jwt.NewNumericDate(now), &future) {
		t.Fatalf("token issued before invalid_before should fail")
	}

	if !isIssuedAfterInvalidBeforeUnix(jwt.NewNumericDate(now), 0) {
		t.Fatalf("zero unix invalid_before should always pass")
	}
	if isIssuedAfterInvalidBeforeUnix(jwt.NewNumericDate(now), future.Unix()) {
		t.Fatalf("token issued before unix invalid_before should fail")
	}
}
