package handler

import (
	"github.com/gin-gonic/gin"

	"echoverse-api/internal/interfaces/http/dto"
	"echoverse-api/pkg/errors"
)

// RewriteHandler 语气改写处理器
type RewriteHandler struct {
	svc AudiobookService
}

// NewRewriteHandler 创建改写处理器
func NewRewriteHandler(svc AudiobookService) *RewriteHandler {
	return &RewriteHandler{svc: svc}
}

// Rewrite 按语气改写文本
// @Summary 语气改写
// @Tags Rewrite
// @Accept json
// @Produce json
// @Param body body dto.RewriteRequest true "改写请求"
// @Success 200 {object} dto.Response[dto.RewriteResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /v1/rewrite [post]
func (h *RewriteHandler) Rewrite(c *gin.Context) {
	var req dto.RewriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.AppError(c, errors.ErrEmptyText.WithDetail(err.Error()))
		return
	}

	res, err := h.svc.Rewrite(c.Request.Context(), req.Text, req.Tone)
	if err != nil {
		dto.AppError(c, err)
		return
	}
	dto.Success(c, dto.ToRewriteResponse(res))
}
