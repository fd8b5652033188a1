package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

// ImportInfoHandler answers the legacy /api/import route. Imports run
// as a batch process (cmd/import), not over HTTP.
type ImportInfoHandler struct {
	logger *zap.Logger
}

// NewImportInfoHandler creates a new import info handler.
func NewImportInfoHandler(logger *zap.Logger) *ImportInfoHandler {
	return &ImportInfoHandler{logger: logger}
}

// RegisterRoutes registers the import info route on the given mux.
func (h *ImportInfoHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/import", h.Info)
}

// Info handles GET /api/import
func (h *ImportInfoHandler) Info(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"message": "Import route works (use cmd/import to import CSV)",
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
