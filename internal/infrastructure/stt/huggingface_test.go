package stt

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echoverse-api/internal/config"
	"echoverse-api/internal/infrastructure/httpclient"
)

// 最小 WAV 头
var wavHeader = []byte("RIFF\x24\x00\x00\x00WAVEfmt \x10\x00\x00\x00\x01\x00\x01\x00\x40\x1f\x00\x00\x80\x3e\x00\x00\x02\x00\x10\x00data\x00\x00\x00\x00")

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer hf-token", r.Header.Get("Authorization"))
		assert.Equal(t, "audio/wav", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, wavHeader, body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text": "  Hola a todos.  "}`))
	}))
	defer srv.Close()

	tr := NewHuggingFace(config.STTConfig{URL: srv.URL, Token: "hf-token"})
	text, err := tr.Transcribe(context.Background(), wavHeader, "")
	require.NoError(t, err)
	assert.Equal(t, "Hola a todos.", text)
}

func TestTranscribeKeepsExplicitContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "audio/webm", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"text":"hello"}`))
	}))
	defer srv.Close()

	tr := NewHuggingFace(config.STTConfig{URL: srv.URL})
	text, err := tr.Transcribe(context.Background(), []byte("raw"), "audio/webm")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestTranscribeEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"text":"   "}`))
	}))
	defer srv.Close()

	tr := NewHuggingFace(config.STTConfig{URL: srv.URL})
	_, err := tr.Transcribe(context.Background(), wavHeader, "")
	assert.ErrorIs(t, err, ErrEmptyTranscription)
}

func TestTranscribeUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"Model is loading"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	tr := NewHuggingFace(config.STTConfig{URL: srv.URL})
	_, err := tr.Transcribe(context.Background(), wavHeader, "")

	var se *httpclient.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.StatusCode)
	assert.Contains(t, se.Body, "Model is loading")
}

func TestTranscribeRejectsEmptyAudio(t *testing.T) {
	tr := NewHuggingFace(config.STTConfig{URL: "http://127.0.0.1:1"})
	_, err := tr.Transcribe(context.Background(), nil, "audio/wav")
	assert.Error(t, err)
}

func TestIsAudio(t *testing.T) {
	assert.True(t, IsAudio(wavHeader))
	assert.False(t, IsAudio([]byte("just some text")))
}
