package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/catalog-api/internal/api/shared"
	"github.com/phrazzld/catalog-api/internal/domain/query"
	"github.com/phrazzld/catalog-api/internal/platform/logger"
	"github.com/phrazzld/catalog-api/internal/service"
)

// ItemHandler handles item-related HTTP requests
type ItemHandler struct {
	itemService service.ItemService
	logger      *slog.Logger
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemService service.ItemService, logger *slog.Logger) *ItemHandler {
	if itemService == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("itemService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ItemHandler{
		itemService: itemService,
		logger:      logger.With("component", "item_handler"),
	}
}

// ListItems handles GET /api/items requests.
// Malformed q/page/limit values fall back to their defaults rather than
// failing the request.
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	params := query.ParseParams(r.URL.Query())

	result, err := h.itemService.List(r.Context(), params)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load items")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resultToResponse(result))
}

// GetItem handles GET /api/items/{id} requests.
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathInt64(r, "id")
	if err != nil {
		log.Debug("invalid item id", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	item, err := h.itemService.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load item")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// CreateItem handles POST /api/items requests.
// The body is handed to the service unparsed; validation decides whether it
// is an acceptable item.
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	raw, err := shared.ReadJSONBody(w, r)
	if err != nil {
		if errors.Is(err, shared.ErrRequestBodyTooLarge) {
			shared.RespondWithErrorAndLog(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Request body too large (limit %d bytes)", shared.MaxRequestBodyBytes), err)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	item, err := h.itemService.Create(r.Context(), raw)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create item")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, itemToResponse(item))
}
