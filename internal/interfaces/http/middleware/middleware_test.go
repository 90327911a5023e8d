package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echoverse-api/internal/config"
	"echoverse-api/internal/interfaces/http/dto"
	apperrors "echoverse-api/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func ok(c *gin.Context) { c.String(http.StatusOK, "ok") }

func serve(r http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireCredentials(t *testing.T) {
	cfg := &config.Config{}
	cfg.LLM.DefaultProvider = "huggingface"
	cfg.LLM.Providers = map[string]config.ProviderConfig{"huggingface": {}}

	r := gin.New()
	r.POST("/rewrite", RequireCredentials(cfg, config.FeatureRewrite), ok)
	r.POST("/audiobooks", RequireCredentials(cfg, config.FeatureRewrite, config.FeatureSynthesis), ok)

	w := serve(r, http.MethodPost, "/rewrite", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(apperrors.CodeCredentialMissing), resp.Error.ErrorCode)
	assert.Equal(t, "llm.providers.huggingface.api_key", resp.Error.Details)

	// 同一缺失项只出现一次
	w = serve(r, http.MethodPost, "/audiobooks", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "llm.providers.huggingface.api_key", resp.Error.Details)

	cfg.LLM.Providers["huggingface"] = config.ProviderConfig{APIKey: "hf_x"}
	w = serve(r, http.MethodPost, "/rewrite", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

type fakeLimiter struct {
	calls int
	limit int
	keys  []string
	err   error
}

func (f *fakeLimiter) Allow(_ context.Context, key string, limit int, _ time.Duration) (bool, int, error) {
	if f.err != nil {
		return false, 0, f.err
	}
	f.calls++
	f.limit = limit
	f.keys = append(f.keys, key)
	remaining := limit - f.calls
	if remaining < 0 {
		return false, 0, nil
	}
	return true, remaining, nil
}

func TestRateLimit(t *testing.T) {
	limiter := &fakeLimiter{}
	r := gin.New()
	r.GET("/v1/catalog", RateLimit(RateLimitConfig{Enabled: true, RequestsPerMinute: 2}, limiter), ok)

	for i := 0; i < 2; i++ {
		w := serve(r, http.MethodGet, "/v1/catalog", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := serve(r, http.MethodGet, "/v1/catalog", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, 2, limiter.limit)
	assert.Contains(t, limiter.keys[0], "/v1/catalog")
}

func TestRateLimitFailsOpen(t *testing.T) {
	r := gin.New()
	r.GET("/x", RateLimit(RateLimitConfig{Enabled: true}, &fakeLimiter{err: errors.New("redis down")}), ok)

	w := serve(r, http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitDisabled(t *testing.T) {
	limiter := &fakeLimiter{}
	r := gin.New()
	r.GET("/x", RateLimit(RateLimitConfig{Enabled: false}, limiter), ok)

	serve(r, http.MethodGet, "/x", nil)
	assert.Zero(t, limiter.calls)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := serve(r, http.MethodGet, "/boom", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), string(apperrors.CodeInternalError))
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", ok)

	w := serve(r, http.MethodGet, "/x", map[string]string{RequestIDHeader: "req-123"})
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))

	w = serve(r, http.MethodGet, "/x", nil)
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	w = serve(r, http.MethodGet, "/x", map[string]string{RequestIDHeader: strings.Repeat("a", 65)})
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	w = serve(r, http.MethodGet, "/x", map[string]string{RequestIDHeader: "bad id"})
	assert.NotEqual(t, "bad id", w.Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS(CORSConfig{}))
	r.GET("/x", ok)

	w := serve(r, http.MethodGet, "/x", map[string]string{"Origin": "http://localhost:5173"})
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))

	r = gin.New()
	r.Use(CORS(CORSConfig{AllowedOrigins: []string{"https://echo.example"}}))
	r.GET("/x", ok)

	w = serve(r, http.MethodGet, "/x", map[string]string{"Origin": "https://echo.example"})
	assert.Equal(t, "https://echo.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = serve(r, http.MethodGet, "/x", map[string]string{"Origin": "https://evil.example"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
