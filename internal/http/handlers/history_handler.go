// README: Ride history handlers: list and clear.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridetrack/internal/modules/history"
)

type HistoryHandler struct {
	store history.Store
}

func NewHistoryHandler(store history.Store) *HistoryHandler {
	return &HistoryHandler{store: store}
}

func (h *HistoryHandler) List(c *gin.Context) {
	records, err := h.store.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if records == nil {
		records = []history.Record{}
	}
	writeJSON(c, http.StatusOK, map[string]any{"rides": records})
}

func (h *HistoryHandler) Clear(c *gin.Context) {
	if err := h.store.Clear(c.Request.Context()); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"status": "cleared"})
}
