package audiobook

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"echoverse-api/internal/application/rewrite"
	"echoverse-api/internal/config"
	"echoverse-api/internal/domain/entity"
	"echoverse-api/internal/domain/repository"
	"echoverse-api/internal/infrastructure/document"
	"echoverse-api/internal/infrastructure/stt"
	"echoverse-api/internal/infrastructure/tts"
	"echoverse-api/internal/workflow/node"
	apperrors "echoverse-api/pkg/errors"
	"echoverse-api/pkg/logger"
	"echoverse-api/pkg/metrics"
)

// Options 服务参数
type Options struct {
	RecordTTL          time.Duration
	DefaultVoice       entity.Voice
	TranslationEnabled bool
	TargetLanguage     string
}

// OptionsFromConfig 从配置构造服务参数
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		RecordTTL:          cfg.Audiobook.RecordTTL,
		DefaultVoice:       entity.Voice(cfg.TTS.DefaultVoice),
		TranslationEnabled: cfg.Translation.Enabled,
		TargetLanguage:     cfg.Translation.TargetLanguage,
	}
}

// GenerateInput 生成请求
type GenerateInput struct {
	Text   string
	Tone   string
	Voice  string
	Source entity.TextSource
}

// Transcription 录音转写结果
type Transcription struct {
	Text       string `json:"text"`
	Original   string `json:"original"`
	Translated bool   `json:"translated"`
}

// Service 有声书应用服务
// 流程严格顺序执行：改写 -> 合成 -> 存储 -> 记录，任一步失败即中止，不重试
type Service struct {
	rewriter    TextRewriter
	synthesizer tts.Synthesizer
	store       repository.AudioStore
	records     repository.AudiobookRepository
	transcriber stt.Transcriber
	translator  Translator
	extractor   TextExtractor
	opts        Options

	newID func() string
	now   func() time.Time
}

// NewService 创建有声书服务
func NewService(
	rewriter TextRewriter,
	synthesizer tts.Synthesizer,
	store repository.AudioStore,
	records repository.AudiobookRepository,
	transcriber stt.Transcriber,
	translator Translator,
	extractor TextExtractor,
	opts Options,
) *Service {
	if opts.RecordTTL <= 0 {
		opts.RecordTTL = 24 * time.Hour
	}
	if opts.DefaultVoice == "" {
		opts.DefaultVoice = entity.DefaultVoice
	}
	if opts.TargetLanguage == "" {
		opts.TargetLanguage = "en"
	}
	// 未配置翻译时按关闭处理
	if t, ok := translator.(*ChainTranslator); translator == nil || (ok && t == nil) {
		translator = nil
		opts.TranslationEnabled = false
	}
	return &Service{
		rewriter:    rewriter,
		synthesizer: synthesizer,
		store:       store,
		records:     records,
		transcriber: transcriber,
		translator:  translator,
		extractor:   extractor,
		opts:        opts,
		newID:       uuid.NewString,
		now:         time.Now,
	}
}

// NewServiceFromConfig 供依赖注入使用
func NewServiceFromConfig(
	cfg *config.Config,
	rewriter *rewrite.Rewriter,
	synthesizer tts.Synthesizer,
	store repository.AudioStore,
	records repository.AudiobookRepository,
	transcriber stt.Transcriber,
	translator Translator,
	extractor TextExtractor,
) *Service {
	return NewService(rewriter, synthesizer, store, records, transcriber, translator, extractor, OptionsFromConfig(cfg))
}

// Rewrite 仅改写文本，不合成
func (s *Service) Rewrite(ctx context.Context, text, tone string) (*rewrite.Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.ErrEmptyText
	}
	res, err := s.rewriter.Rewrite(ctx, rewrite.Request{Text: text, Tone: tone})
	if err != nil {
		return nil, rewriteError(err)
	}
	return res, nil
}

// Generate 改写并合成有声书
func (s *Service) Generate(ctx context.Context, in GenerateInput) (book *entity.Audiobook, err error) {
	tone := entity.ParseTone(in.Tone)
	start := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
		}
		metrics.AudiobookGenerationTotal.WithLabelValues(tone.String(), status).Inc()
		metrics.AudiobookGenerationDuration.WithLabelValues(tone.String()).Observe(time.Since(start).Seconds())
	}()

	if strings.TrimSpace(in.Text) == "" {
		return nil, apperrors.ErrEmptyText
	}
	voice := entity.ResolveVoice(in.Voice, s.opts.DefaultVoice)
	source := in.Source
	if source == "" {
		source = entity.SourceTyped
	}

	id := s.newID()
	ctx = logger.WithContext(ctx, logger.AudiobookIDKey, id)

	rewritten, err := s.rewriter.Rewrite(ctx, rewrite.Request{Text: in.Text, Tone: tone.String()})
	if err != nil {
		return nil, rewriteError(err)
	}

	audio, err := s.synthesizer.Synthesize(ctx, rewritten.Text, voice)
	if err != nil {
		logger.Error(ctx, "speech synthesis failed", err, "voice", string(voice.Voice), "synthesizer", s.synthesizer.Name())
		return nil, apperrors.ErrSynthesisFailed.WithError(err)
	}

	key := entity.AudioKeyFor(id)
	if err := s.store.Put(ctx, key, audio.Data, audio.ContentType); err != nil {
		logger.Error(ctx, "failed to store audio", err, "key", key)
		return nil, apperrors.ErrStorage.WithError(err)
	}

	book = &entity.Audiobook{
		ID:            id,
		OriginalText:  in.Text,
		RewrittenText: rewritten.Text,
		Tone:          tone,
		Voice:         voice.Voice,
		Source:        source,
		Synthesizer:   audio.Provider,
		AudioKey:      key,
		AudioBytes:    int64(len(audio.Data)),
		ContentType:   audio.ContentType,
		Filename:      entity.DownloadFilename(tone),
		PromptTokens:  rewritten.PromptTokens,
		MaxNewTokens:  rewritten.MaxNewTokens,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.records.Save(ctx, book, s.opts.RecordTTL); err != nil {
		logger.Error(ctx, "failed to save audiobook record", err)
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			logger.Warn(ctx, "failed to remove orphaned audio", "key", key, "error", delErr.Error())
		}
		return nil, apperrors.ErrCache.WithError(err)
	}

	metrics.AudiobookAudioBytes.Observe(float64(book.AudioBytes))
	logger.Info(ctx, "audiobook generated",
		"tone", tone.String(),
		"voice", string(voice.Voice),
		"source", string(source),
		"audio_bytes", book.AudioBytes,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return book, nil
}

// GenerateFromDocument 提取文档文本后生成有声书
func (s *Service) GenerateFromDocument(ctx context.Context, filename string, data []byte, tone, voice string) (*entity.Audiobook, error) {
	text, err := s.ExtractText(ctx, filename, data)
	if err != nil {
		return nil, err
	}
	return s.Generate(ctx, GenerateInput{Text: text, Tone: tone, Voice: voice, Source: entity.SourceDocument})
}

// ExtractText 提取文档文本
func (s *Service) ExtractText(ctx context.Context, filename string, data []byte) (string, error) {
	text, err := s.extractor.Extract(filename, data)
	if err == nil {
		return text, nil
	}

	logger.Warn(ctx, "document extraction failed", "filename", filename, "error", err.Error())
	switch {
	case errors.Is(err, document.ErrUnsupported):
		return "", apperrors.ErrUnsupportedDocument.WithDetail(err.Error())
	case errors.Is(err, document.ErrEmpty):
		return "", apperrors.ErrEmptyText
	default:
		return "", apperrors.ErrDocumentParseFailed.WithError(err)
	}
}

// Transcribe 转写录音，并按配置翻译为目标语言
func (s *Service) Transcribe(ctx context.Context, audio []byte, contentType string) (*Transcription, error) {
	if len(audio) == 0 {
		return nil, apperrors.ErrInvalidParam.WithDetail("audio is empty")
	}

	original, err := s.transcriber.Transcribe(ctx, audio, contentType)
	if err != nil {
		if errors.Is(err, stt.ErrEmptyTranscription) {
			return nil, apperrors.ErrTranscriptionEmpty
		}
		logger.Error(ctx, "transcription failed", err)
		return nil, apperrors.ErrTranscriptionFailed.WithError(err)
	}

	out := &Transcription{Text: original, Original: original}
	if !s.opts.TranslationEnabled {
		return out, nil
	}

	translated, err := s.translator.Translate(ctx, original, s.opts.TargetLanguage)
	if err != nil {
		logger.Error(ctx, "translation failed", err, "target_language", s.opts.TargetLanguage)
		return nil, apperrors.ErrTranslationFailed.WithError(err)
	}
	out.Text = translated
	out.Translated = true
	logger.Info(ctx, "transcription translated",
		"target_language", s.opts.TargetLanguage,
		"preview", node.PreviewText(translated, 80),
	)
	return out, nil
}

// Get 获取生成记录
func (s *Service) Get(ctx context.Context, id string) (*entity.Audiobook, error) {
	book, err := s.records.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrAudiobookNotFound
		}
		return nil, apperrors.ErrCache.WithError(err)
	}
	return book, nil
}

// OpenAudio 打开有声书音频，调用方负责关闭 Body
func (s *Service) OpenAudio(ctx context.Context, id string) (*entity.Audiobook, *repository.AudioObject, error) {
	book, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	obj, err := s.store.Open(ctx, book.AudioKey)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil, apperrors.ErrAudioNotFound
		}
		return nil, nil, apperrors.ErrStorage.WithError(err)
	}
	if obj.ContentType == "" || obj.ContentType == "application/octet-stream" {
		obj.ContentType = book.ContentType
	}
	return book, obj, nil
}

// rewriteError 将改写失败映射为应用错误
func rewriteError(err error) error {
	f, ok := rewrite.AsFailure(err)
	if !ok {
		return apperrors.ErrRewriteFailed.WithError(err)
	}
	if f.Kind == rewrite.FailureInvalidInput {
		return apperrors.ErrInvalidParam.WithDetail(f.Error()).WithError(err)
	}
	return apperrors.ErrRewriteFailed.WithDetail(string(f.Kind)).WithError(err)
}
