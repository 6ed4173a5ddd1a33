package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/provider"
)

// ResolveTeam handles GET /api/v1/teams/resolve?q=
func (h *Handler) ResolveTeam(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		h.errorResponse(w, http.StatusBadRequest, "Missing query parameter q")
		return
	}

	resp, err := h.reports.ResolveTeam(r.Context(), query)
	if err != nil {
		if errors.Is(err, provider.ErrTeamNotFound) {
			h.errorResponse(w, http.StatusNotFound, "Team not found: "+query)
			return
		}
		h.logger.Errorw("Team resolution failed", "query", query, "error", err)
		h.errorResponse(w, http.StatusBadGateway, "Upstream data vendor unavailable")
		return
	}
	h.jsonResponse(w, http.StatusOK, resp)
}
