package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/mocks"
	"github.com/phrazzld/catalog-api/internal/service"
	"github.com/phrazzld/catalog-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestStatsHandler_GetStats(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h := NewStatsHandler(&mocks.MockStatsProvider{Stats: domain.Stats{Total: 3, AveragePrice: 80}})

		w := httptest.NewRecorder()
		h.GetStats(w, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"total":3,"averagePrice":80}`, w.Body.String())
	})

	t.Run("store unavailable", func(t *testing.T) {
		cause := store.Unavailable("item", "load", "failed to parse data file", errors.New("unexpected end of JSON input"))
		h := NewStatsHandler(&mocks.MockStatsProvider{
			DefaultError: service.NewServiceError("get_stats", "failed to load items", cause),
		})

		w := httptest.NewRecorder()
		h.GetStats(w, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to load stats", decodeError(t, w.Body.Bytes()).Error)
	})

	t.Run("nil provider panics", func(t *testing.T) {
		assert.Panics(t, func() { NewStatsHandler(nil) })
	})
}
