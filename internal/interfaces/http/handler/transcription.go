package handler

import (
	"github.com/gin-gonic/gin"

	"echoverse-api/internal/config"
	"echoverse-api/internal/interfaces/http/dto"
)

// TranscriptionHandler 录音转写处理器
type TranscriptionHandler struct {
	svc      AudiobookService
	maxBytes int64
}

// NewTranscriptionHandler 创建转写处理器
func NewTranscriptionHandler(cfg *config.Config, svc AudiobookService) *TranscriptionHandler {
	return &TranscriptionHandler{svc: svc, maxBytes: cfg.Upload.MaxAudioBytes}
}

// CreateTranscription 转写录音并翻译为英文
// @Summary 录音转写
// @Tags Transcriptions
// @Accept multipart/form-data
// @Produce json
// @Param audio formData file true "录音文件"
// @Success 200 {object} dto.Response[dto.TranscriptionResponse]
// @Failure 422 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /v1/transcriptions [post]
func (h *TranscriptionHandler) CreateTranscription(c *gin.Context) {
	_, contentType, data, err := readFormFile(c, "audio", h.maxBytes)
	if err != nil {
		dto.AppError(c, err)
		return
	}

	out, err := h.svc.Transcribe(c.Request.Context(), data, contentType)
	if err != nil {
		dto.AppError(c, err)
		return
	}
	dto.Success(c, &dto.TranscriptionResponse{
		Text:       out.Text,
		Original:   out.Original,
		Translated: out.Translated,
	})
}
