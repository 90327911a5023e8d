package handler

import (
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"echoverse-api/internal/config"
	"echoverse-api/internal/interfaces/http/dto"
)

// DocumentHandler 文档文本提取处理器
type DocumentHandler struct {
	svc      AudiobookService
	maxBytes int64
}

// NewDocumentHandler 创建文档处理器
func NewDocumentHandler(cfg *config.Config, svc AudiobookService) *DocumentHandler {
	return &DocumentHandler{svc: svc, maxBytes: cfg.Upload.MaxDocumentBytes}
}

// ExtractText 提取上传文档中的文本
// @Summary 提取文档文本
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true ".txt / .pdf / .docx"
// @Success 200 {object} dto.Response[dto.TextResponse]
// @Failure 415 {object} dto.ErrorResponse
// @Router /v1/documents/extract [post]
func (h *DocumentHandler) ExtractText(c *gin.Context) {
	filename, _, data, err := readFormFile(c, "file", h.maxBytes)
	if err != nil {
		dto.AppError(c, err)
		return
	}

	text, err := h.svc.ExtractText(c.Request.Context(), filename, data)
	if err != nil {
		dto.AppError(c, err)
		return
	}
	dto.Success(c, &dto.TextResponse{Text: text, Chars: utf8.RuneCountInString(text)})
}
