// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"echoverse-api/internal/config"
)

// HealthChecker 依赖的健康检查
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler 健康检查处理器
type HealthHandler struct {
	cfg   *config.Config
	redis HealthChecker
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(cfg *config.Config, redis HealthChecker) *HealthHandler {
	return &HealthHandler{
		cfg:   cfg,
		redis: redis,
	}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type readinessCheck struct {
	Status    string   `json:"status"`
	Error     string   `json:"error,omitempty"`
	Missing   []string `json:"missing,omitempty"`
	LatencyMs int64    `json:"latency_ms,omitempty"`
}

type readinessResponse struct {
	Status string                     `json:"status"`
	Checks map[string]*readinessCheck `json:"checks,omitempty"`
}

// Health 健康检查接口
// @Summary 健康检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	resp := HealthResponse{Status: "ok"}
	if h != nil && h.cfg != nil {
		resp.Version = h.cfg.App.Version
	}
	c.JSON(http.StatusOK, resp)
}

// Ready 就绪检查接口
// Redis 不可用时返回 503；凭据缺失只降级对应功能
// @Summary 就绪检查
// @Tags System
// @Produce json
// @Success 200 {object} readinessResponse
// @Failure 503 {object} readinessResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]*readinessCheck{
		"redis": {Status: "unknown"},
	}
	ready := true
	degraded := false

	// Redis（必需）
	if h == nil || h.redis == nil {
		checks["redis"].Status = "missing"
		checks["redis"].Error = "redis client not configured"
		ready = false
	} else {
		start := time.Now()
		err := h.redis.HealthCheck(ctx)
		checks["redis"].LatencyMs = time.Since(start).Milliseconds()
		if err != nil {
			checks["redis"].Status = "error"
			checks["redis"].Error = err.Error()
			ready = false
		} else {
			checks["redis"].Status = "ok"
		}
	}

	// 外部服务凭据
	if h != nil && h.cfg != nil {
		for _, f := range []config.Feature{config.FeatureRewrite, config.FeatureSynthesis, config.FeatureTranscription} {
			check := &readinessCheck{Status: "ok"}
			if missing := h.cfg.MissingCredentials(f); len(missing) > 0 {
				check.Status = "missing_credentials"
				check.Missing = missing
				degraded = true
			}
			checks[string(f)] = check
		}
	}

	resp := readinessResponse{Status: "ok", Checks: checks}
	switch {
	case !ready:
		resp.Status = "not_ready"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	case degraded:
		resp.Status = "degraded"
	}
	c.JSON(http.StatusOK, resp)
}

// Live 存活检查接口
// @Summary 存活检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
	})
}
