package tts

import (
	"context"
	"fmt"
	"sync"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/option"

	"echoverse-api/internal/config"
	"echoverse-api/internal/domain/entity"
	"echoverse-api/pkg/tracer"
)

// speechClient texttospeech.Client 的最小依赖
type speechClient interface {
	SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error)
	Close() error
}

var _ speechClient = (*texttospeech.Client)(nil)

// Google Google Cloud Text-to-Speech
// gRPC 客户端在首次合成时创建
type Google struct {
	cfg      config.GoogleTTSConfig
	maxChars int

	mu     sync.Mutex
	client speechClient
}

// NewGoogle 创建 Google 合成后端
func NewGoogle(cfg config.GoogleTTSConfig, maxChars int) *Google {
	if cfg.LanguageCode == "" {
		cfg.LanguageCode = "en-US"
	}
	return &Google{cfg: cfg, maxChars: maxChars}
}

// Name 实现 Synthesizer
func (s *Google) Name() string { return "google" }

func (s *Google) getClient(ctx context.Context) (speechClient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return s.client, nil
	}

	var opts []option.ClientOption
	if s.cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(s.cfg.CredentialsFile))
	}
	c, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create google tts client: %w", err)
	}
	s.client = c
	return c, nil
}

// Synthesize 实现 Synthesizer
func (s *Google) Synthesize(ctx context.Context, text string, voice entity.VoiceProfile) (*Audio, error) {
	ctx, span := tracer.Start(ctx, "tts.google.Synthesize")
	defer span.End()
	span.SetAttributes(attribute.String("tts.voice", voice.Google), attribute.Int("tts.chars", len(text)))

	client, err := s.getClient(ctx)
	if err != nil {
		tracer.Fail(span, err)
		return nil, err
	}

	audio, err := synthesizeChunks(ctx, s.Name(), text, s.maxChars, func(ctx context.Context, chunk string) ([]byte, error) {
		resp, err := client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
			Input: &texttospeechpb.SynthesisInput{
				InputSource: &texttospeechpb.SynthesisInput_Text{Text: chunk},
			},
			Voice: &texttospeechpb.VoiceSelectionParams{
				LanguageCode: s.cfg.LanguageCode,
				Name:         voice.Google,
			},
			AudioConfig: &texttospeechpb.AudioConfig{
				AudioEncoding: texttospeechpb.AudioEncoding_MP3,
				SpeakingRate:  s.cfg.SpeakingRate,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("google synthesize speech: %w", err)
		}
		return resp.GetAudioContent(), nil
	})
	tracer.Fail(span, err)
	return audio, err
}

// Close 关闭 gRPC 连接
func (s *Google) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	return err
}
