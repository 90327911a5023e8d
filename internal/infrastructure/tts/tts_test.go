package tts

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echoverse-api/internal/config"
	"echoverse-api/internal/domain/entity"
	"echoverse-api/internal/infrastructure/httpclient"
)

var fakeMP3 = []byte{0xFF, 0xFB, 0x90, 0x64, 0x00}

func lisa(t *testing.T) entity.VoiceProfile {
	t.Helper()
	v, ok := entity.LookupVoice("Lisa (Female)")
	require.True(t, ok)
	return v
}

func TestOpenAISynthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/speech", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body speechRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tts-1", body.Model)
		assert.Equal(t, "nova", body.Voice)
		assert.Equal(t, "mp3", body.ResponseFormat)
		assert.Equal(t, "Hello there.", body.Input)

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write(fakeMP3)
	}))
	defer srv.Close()

	s := NewOpenAI(config.OpenAITTSConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1/", Model: "tts-1"}, time.Second, 4096)
	audio, err := s.Synthesize(context.Background(), "Hello there.", lisa(t))
	require.NoError(t, err)
	assert.Equal(t, fakeMP3, audio.Data)
	assert.Equal(t, ContentTypeMP3, audio.ContentType)
	assert.Equal(t, "openai", audio.Provider)
}

func TestOpenAISynthesizeUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := NewOpenAI(config.OpenAITTSConfig{BaseURL: srv.URL}, time.Second, 0)
	_, err := s.Synthesize(context.Background(), "Hello", lisa(t))
	require.Error(t, err)

	var se *httpclient.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
}

func TestOpenAISynthesizeEmptyAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewOpenAI(config.OpenAITTSConfig{BaseURL: srv.URL}, time.Second, 0)
	_, err := s.Synthesize(context.Background(), "Hello", lisa(t))
	assert.ErrorIs(t, err, ErrEmptyAudio)
}

func TestWatsonSynthesize(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/synthesize", r.URL.Path)
		assert.Equal(t, "en-US_MichaelV3Voice", r.URL.Query().Get("voice"))
		assert.Equal(t, "audio/mp3", r.Header.Get("Accept"))
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "apikey", user)
		assert.Equal(t, "watson-key", pass)

		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), `"text"`)
		_, _ = w.Write(fakeMP3)
	}))
	defer srv.Close()

	michael, _ := entity.LookupVoice("Michael (Male)")
	s := NewWatson(config.WatsonTTSConfig{APIKey: "watson-key", URL: srv.URL}, time.Second, 20)

	text := "First sentence here. Second sentence here. Third one."
	audio, err := s.Synthesize(context.Background(), text, michael)
	require.NoError(t, err)

	n := int(atomic.LoadInt32(&calls))
	assert.Greater(t, n, 1)
	assert.Len(t, audio.Data, n*len(fakeMP3))
}

func TestSplitText(t *testing.T) {
	assert.Nil(t, SplitText("   ", 10))
	assert.Equal(t, []string{"short"}, SplitText("short", 10))
	assert.Equal(t, []string{"no limit at all"}, SplitText("no limit at all", 0))

	chunks := SplitText("One two. Three four. Five six seven eight.", 12)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), 12)
	}
	assert.Equal(t, "One two. Three four. Five six seven eight.", strings.Join(chunks, " "))

	hard := SplitText("abcdefghij", 4)
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, hard)
}

func TestNewSelectsProvider(t *testing.T) {
	cfg := &config.Config{}
	for provider, want := range map[string]string{"": "openai", "openai": "openai", "Watson": "watson", "google": "google"} {
		cfg.TTS.Provider = provider
		s, err := New(cfg)
		require.NoError(t, err)
		assert.Equal(t, want, s.Name())
	}

	cfg.TTS.Provider = "espeak"
	_, err := New(cfg)
	assert.Error(t, err)
}

type countingSynth struct {
	calls int32
	err   error
}

func (s *countingSynth) Name() string { return "fake" }

func (s *countingSynth) Synthesize(_ context.Context, _ string, _ entity.VoiceProfile) (*Audio, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.err != nil {
		return nil, s.err
	}
	return &Audio{Data: fakeMP3, ContentType: ContentTypeMP3, Provider: "fake"}, nil
}

type memLoader struct {
	data map[string][]byte
	err  error
}

func (m *memLoader) GetOrLoadBytes(ctx context.Context, key string, _ time.Duration, loader func(context.Context) ([]byte, error)) ([]byte, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	if v, ok := m.data[key]; ok {
		return v, false, nil
	}
	v, err := loader(ctx)
	if err != nil {
		return nil, true, err
	}
	m.data[key] = v
	return v, true, nil
}

func TestCachedSynthesizer(t *testing.T) {
	next := &countingSynth{}
	s := NewCached(next, &memLoader{data: map[string][]byte{}}, time.Hour)

	for i := 0; i < 3; i++ {
		audio, err := s.Synthesize(context.Background(), "same text", lisa(t))
		require.NoError(t, err)
		assert.Equal(t, fakeMP3, audio.Data)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&next.calls))

	_, err := s.Synthesize(context.Background(), "other text", lisa(t))
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&next.calls))
}

func TestCachedSynthesizerPropagatesBackendError(t *testing.T) {
	boom := errors.New("backend down")
	next := &countingSynth{err: boom}
	s := NewCached(next, &memLoader{data: map[string][]byte{}}, time.Hour)

	_, err := s.Synthesize(context.Background(), "text", lisa(t))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(1), atomic.LoadInt32(&next.calls))
}

func TestCachedSynthesizerFallsBackWhenCacheDown(t *testing.T) {
	next := &countingSynth{}
	s := NewCached(next, &memLoader{err: errors.New("redis: connection refused")}, time.Hour)

	audio, err := s.Synthesize(context.Background(), "text", lisa(t))
	require.NoError(t, err)
	assert.Equal(t, fakeMP3, audio.Data)
}

func TestNewCachedDisabled(t *testing.T) {
	next := &countingSynth{}
	assert.Same(t, next, NewCached(next, nil, time.Hour))
	assert.Same(t, next, NewCached(next, &memLoader{}, 0))
}

func TestCacheKeyStable(t *testing.T) {
	a := CacheKey("openai", entity.VoiceLisa, "hello")
	assert.Equal(t, a, CacheKey("openai", entity.VoiceLisa, "hello"))
	assert.NotEqual(t, a, CacheKey("openai", entity.VoiceAllison, "hello"))
	assert.True(t, strings.HasPrefix(a, "tts:openai:lisafemale:"))
}
