package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeToHTTPStatus(t *testing.T) {
	cases := map[ErrorCode]int{
		CodeEmptyText:           http.StatusBadRequest,
		CodeUnsupportedDocument: http.StatusUnsupportedMediaType,
		CodeCredentialMissing:   http.StatusServiceUnavailable,
		CodeRewriteFailed:       http.StatusBadGateway,
		CodeSynthesisFailed:     http.StatusBadGateway,
		CodeTranscriptionEmpty:  http.StatusUnprocessableEntity,
		CodeAudiobookNotFound:   http.StatusNotFound,
		CodeStorageError:        http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, New(code, "x").HTTPStatus, "code %s", code)
	}
}

func TestWithDetailDoesNotMutatePredefined(t *testing.T) {
	e := ErrRewriteFailed.WithDetail("generation")
	assert.Equal(t, "generation", e.Detail)
	assert.Empty(t, ErrRewriteFailed.Detail)
}

func TestIsAndAs(t *testing.T) {
	cause := stderrors.New("status 500")
	err := fmt.Errorf("synthesize: %w", ErrSynthesisFailed.WithError(cause))

	assert.True(t, stderrors.Is(err, ErrSynthesisFailed))
	assert.False(t, stderrors.Is(err, ErrRewriteFailed))
	assert.True(t, stderrors.Is(err, cause))
	assert.True(t, IsAppError(err))
	assert.Equal(t, CodeSynthesisFailed, AsAppError(err).Code)

	plain := AsAppError(cause)
	assert.Equal(t, CodeUnknown, plain.Code)
	assert.Equal(t, http.StatusInternalServerError, plain.HTTPStatus)
}
