package httpclient

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckResponse(t *testing.T) {
	ok := &http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader(""))}
	assert.NoError(t, CheckResponse("svc", ok))

	bad := &http.Response{StatusCode: 503, Body: io.NopCloser(strings.NewReader("model is loading"))}
	err := CheckResponse("whisper", bad)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 503, se.StatusCode)
	assert.Equal(t, "model is loading", se.Body)
	assert.Equal(t, "whisper returned 503: model is loading", err.Error())
}
