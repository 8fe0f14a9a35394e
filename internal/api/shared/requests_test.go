package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSONBody(t *testing.T) {
	t.Run("returns body verbatim", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader(`{"name":"Lamp"}`))
		raw, err := ReadJSONBody(httptest.NewRecorder(), req)
		require.NoError(t, err)
		assert.Equal(t, `{"name":"Lamp"}`, string(raw))
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/items", nil)
		raw, err := ReadJSONBody(httptest.NewRecorder(), req)
		require.NoError(t, err)
		assert.Empty(t, raw)
	})

	t.Run("oversized body", func(t *testing.T) {
		big := strings.Repeat("a", MaxRequestBodyBytes+1)
		req := httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader(big))
		_, err := ReadJSONBody(httptest.NewRecorder(), req)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrRequestBodyTooLarge)
		assert.Contains(t, err.Error(), "1048576")
	})
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestReadJSONBody_ReadFailureIsNotTooLarge(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/items", failingReader{})
	_, err := ReadJSONBody(httptest.NewRecorder(), req)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRequestBodyTooLarge)
}
