//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"echoverse-api/internal/application/audiobook"
	"echoverse-api/internal/application/rewrite"
	"echoverse-api/internal/config"
	"echoverse-api/internal/domain/repository"
	"echoverse-api/internal/infrastructure/document"
	"echoverse-api/internal/infrastructure/llm"
	"echoverse-api/internal/infrastructure/persistence/redis"
	"echoverse-api/internal/infrastructure/storage"
	"echoverse-api/internal/infrastructure/stt"
	"echoverse-api/internal/infrastructure/tokenizer"
	"echoverse-api/internal/interfaces/http/handler"
	"echoverse-api/internal/interfaces/http/middleware"
	"echoverse-api/internal/interfaces/http/router"
	workflowport "echoverse-api/internal/workflow/port"
	workflowprompt "echoverse-api/internal/workflow/prompt"
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		RedisSet,
		StorageSet,
		LLMSet,
		SpeechSet,
		ServiceSet,
		RouterSet,
	)
	return nil, nil, nil
}

// RedisSet Redis 提供者集合
var RedisSet = wire.NewSet(
	ProvideRedisClient,
	redis.NewCache,
	redis.NewRateLimiter,
	redis.NewAudiobookRepositoryFromConfig,
	wire.Bind(new(repository.AudiobookRepository), new(*redis.AudiobookRepository)),
	wire.Bind(new(middleware.RateLimiter), new(*redis.RateLimiter)),
	wire.Bind(new(handler.HealthChecker), new(*redis.Client)),
)

// StorageSet 音频存储提供者集合
var StorageSet = wire.NewSet(
	storage.New,
)

// LLMSet 改写与翻译提供者集合
var LLMSet = wire.NewSet(
	llm.NewEinoFactory,
	tokenizer.NewTiktokenFromConfig,
	workflowprompt.NewRegistry,
	rewrite.NewRewriterFromConfig,
	audiobook.NewChainTranslatorFromConfig,
	wire.Bind(new(workflowport.ChatModelFactory), new(*llm.EinoFactory)),
	wire.Bind(new(workflowport.Tokenizer), new(*tokenizer.Tiktoken)),
	wire.Bind(new(audiobook.Translator), new(*audiobook.ChainTranslator)),
)

// SpeechSet 语音合成与转写提供者集合
var SpeechSet = wire.NewSet(
	ProvideSynthesizer,
	stt.NewHuggingFaceFromConfig,
	document.NewExtractor,
	wire.Bind(new(stt.Transcriber), new(*stt.HuggingFace)),
	wire.Bind(new(audiobook.TextExtractor), new(*document.Extractor)),
)

// ServiceSet 应用服务提供者集合
var ServiceSet = wire.NewSet(
	audiobook.NewServiceFromConfig,
	wire.Bind(new(handler.AudiobookService), new(*audiobook.Service)),
)

// RouterSet 路由提供者集合
var RouterSet = wire.NewSet(
	handler.NewHealthHandler,
	handler.NewCatalogHandler,
	handler.NewRewriteHandler,
	handler.NewAudiobookHandler,
	handler.NewDocumentHandler,
	handler.NewTranscriptionHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)
