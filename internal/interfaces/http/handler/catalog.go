package handler

import (
	"github.com/gin-gonic/gin"

	"echoverse-api/internal/config"
	"echoverse-api/internal/domain/entity"
	"echoverse-api/internal/interfaces/http/dto"
)

// CatalogHandler 语气与声音目录
type CatalogHandler struct {
	defaultVoice entity.Voice
}

// NewCatalogHandler 创建目录处理器
func NewCatalogHandler(cfg *config.Config) *CatalogHandler {
	return &CatalogHandler{defaultVoice: entity.Voice(cfg.TTS.DefaultVoice)}
}

// GetCatalog 获取可选语气与声音
// @Summary 语气与声音目录
// @Tags Catalog
// @Produce json
// @Success 200 {object} dto.Response[dto.CatalogResponse]
// @Router /v1/catalog [get]
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	dto.Success(c, dto.NewCatalogResponse(h.defaultVoice))
}
