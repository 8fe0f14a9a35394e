package api

import (
	"context"
	"net/http"

	"github.com/phrazzld/catalog-api/internal/api/shared"
	"github.com/phrazzld/catalog-api/internal/domain"
)

// StatsProvider returns statistics for the current collection.
// *service.StatsCache satisfies it.
type StatsProvider interface {
	GetStats(ctx context.Context) (domain.Stats, error)
}

// StatsHandler handles GET /api/stats.
type StatsHandler struct {
	stats StatsProvider
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(stats StatsProvider) *StatsHandler {
	if stats == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("stats provider cannot be nil")
	}
	return &StatsHandler{stats: stats}
}

// GetStats handles GET /api/stats requests.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.GetStats(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load stats")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, statsToResponse(stats))
}
