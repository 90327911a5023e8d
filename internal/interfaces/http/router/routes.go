package router

import (
	"github.com/gin-gonic/gin"

	"echoverse-api/internal/config"
	"echoverse-api/internal/interfaces/http/middleware"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(v1 *gin.RouterGroup, cfg *config.Config, h *Handlers) {
	needRewrite := middleware.RequireCredentials(cfg, config.FeatureRewrite)
	needSynthesis := middleware.RequireCredentials(cfg, config.FeatureSynthesis)
	needTranscription := middleware.RequireCredentials(cfg, config.FeatureTranscription)

	// 目录
	v1.GET("/catalog", h.Catalog.GetCatalog)

	// 语气改写
	v1.POST("/rewrite", needRewrite, h.Rewrite.Rewrite)

	// 有声书
	audiobooks := v1.Group("/audiobooks")
	{
		audiobooks.POST("", needSynthesis, h.Audiobook.CreateAudiobook)
		audiobooks.POST("/upload", needSynthesis, h.Audiobook.UploadAudiobook)
		audiobooks.GET("/:id", h.Audiobook.GetAudiobook)
		audiobooks.GET("/:id/audio", h.Audiobook.DownloadAudio)
	}

	// 文档文本提取
	v1.POST("/documents/extract", h.Document.ExtractText)

	// 录音转写
	v1.POST("/transcriptions", needTranscription, h.Transcription.CreateTranscription)
}
