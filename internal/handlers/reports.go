package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/models"
	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/provider"
)

// ScoutReport handles POST /api/v1/reports/scout
func (h *Handler) ScoutReport(w http.ResponseWriter, r *http.Request) {
	var req models.ScoutRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	report, err := h.reports.ScoutTeam(r.Context(), req)
	if err != nil {
		h.reportError(w, err, req.Team)
		return
	}
	h.jsonResponse(w, http.StatusOK, report)
}

// MatchupReport handles POST /api/v1/reports/matchup
func (h *Handler) MatchupReport(w http.ResponseWriter, r *http.Request) {
	var req models.MatchupRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	report, err := h.matchups.Matchup(r.Context(), req)
	if err != nil {
		h.reportError(w, err, req.OurTeam+" vs "+req.OpponentTeam)
		return
	}
	h.jsonResponse(w, http.StatusOK, report)
}

func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	if err := h.validator.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			h.errorResponse(w, http.StatusBadRequest, "Invalid field: "+verrs[0].Field())
			return false
		}
		h.errorResponse(w, http.StatusBadRequest, "Invalid request")
		return false
	}
	return true
}

func (h *Handler) reportError(w http.ResponseWriter, err error, subject string) {
	switch {
	case errors.Is(err, provider.ErrTeamNotFound):
		h.errorResponse(w, http.StatusNotFound, "Team not found: "+subject)
	case errors.Is(err, provider.ErrVendorUnavailable):
		h.logger.Errorw("Vendor unavailable", "subject", subject, "error", err)
		h.errorResponse(w, http.StatusBadGateway, "Upstream data vendor unavailable")
	default:
		h.logger.Errorw("Report generation failed", "subject", subject, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to generate report")
	}
}
