package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"echoverse-api/internal/application/audiobook"
	"echoverse-api/internal/config"
	"echoverse-api/internal/domain/entity"
	"echoverse-api/internal/interfaces/http/dto"
	"echoverse-api/pkg/errors"
	"echoverse-api/pkg/logger"
)

// AudiobookHandler 有声书处理器
type AudiobookHandler struct {
	svc         AudiobookService
	baseURL     string
	maxDocBytes int64
}

// NewAudiobookHandler 创建有声书处理器
func NewAudiobookHandler(cfg *config.Config, svc AudiobookService) *AudiobookHandler {
	return &AudiobookHandler{
		svc:         svc,
		baseURL:     cfg.Audiobook.PublicBaseURL,
		maxDocBytes: cfg.Upload.MaxDocumentBytes,
	}
}

// CreateAudiobook 改写文本并合成有声书
// @Summary 生成有声书
// @Tags Audiobooks
// @Accept json
// @Produce json
// @Param body body dto.CreateAudiobookRequest true "生成请求"
// @Success 201 {object} dto.Response[dto.AudiobookResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /v1/audiobooks [post]
func (h *AudiobookHandler) CreateAudiobook(c *gin.Context) {
	var req dto.CreateAudiobookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.AppError(c, errors.ErrEmptyText.WithDetail(err.Error()))
		return
	}

	book, err := h.svc.Generate(c.Request.Context(), audiobook.GenerateInput{
		Text:   req.Text,
		Tone:   req.Tone,
		Voice:  req.Voice,
		Source: entity.SourceTyped,
	})
	if err != nil {
		dto.AppError(c, err)
		return
	}
	c.Set("audiobook_id", book.ID)
	dto.Created(c, dto.ToAudiobookResponse(book, h.baseURL))
}

// UploadAudiobook 上传文档并生成有声书
// @Summary 上传文档生成有声书
// @Tags Audiobooks
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true ".txt / .pdf / .docx"
// @Param tone formData string false "语气"
// @Param voice formData string false "声音"
// @Success 201 {object} dto.Response[dto.AudiobookResponse]
// @Failure 413 {object} dto.ErrorResponse
// @Failure 415 {object} dto.ErrorResponse
// @Router /v1/audiobooks/upload [post]
func (h *AudiobookHandler) UploadAudiobook(c *gin.Context) {
	var form dto.UploadAudiobookForm
	_ = c.ShouldBind(&form)

	filename, _, data, err := readFormFile(c, "file", h.maxDocBytes)
	if err != nil {
		dto.AppError(c, err)
		return
	}

	book, err := h.svc.GenerateFromDocument(c.Request.Context(), filename, data, form.Tone, form.Voice)
	if err != nil {
		dto.AppError(c, err)
		return
	}
	c.Set("audiobook_id", book.ID)
	dto.Created(c, dto.ToAudiobookResponse(book, h.baseURL))
}

// GetAudiobook 获取生成记录
// @Summary 获取有声书
// @Tags Audiobooks
// @Produce json
// @Param id path string true "有声书 ID"
// @Success 200 {object} dto.Response[dto.AudiobookResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/audiobooks/{id} [get]
func (h *AudiobookHandler) GetAudiobook(c *gin.Context) {
	book, err := h.svc.Get(c.Request.Context(), dto.BindID(c))
	if err != nil {
		dto.AppError(c, err)
		return
	}
	dto.Success(c, dto.ToAudiobookResponse(book, h.baseURL))
}

// DownloadAudio 下载 MP3
// @Summary 下载有声书音频
// @Tags Audiobooks
// @Produce audio/mpeg
// @Param id path string true "有声书 ID"
// @Success 200 {file} binary
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/audiobooks/{id}/audio [get]
func (h *AudiobookHandler) DownloadAudio(c *gin.Context) {
	ctx := c.Request.Context()
	book, obj, err := h.svc.OpenAudio(ctx, dto.BindID(c))
	if err != nil {
		dto.AppError(c, err)
		return
	}
	defer obj.Body.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", book.Filename))
	c.Header("Content-Type", obj.ContentType)
	if obj.Size > 0 {
		c.Header("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, obj.Body); err != nil {
		logger.Warn(ctx, "audio download interrupted", "audiobook_id", book.ID, "error", err.Error())
	}
}
