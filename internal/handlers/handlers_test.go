package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/models"
	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/provider"
)

func testHandler(reports *MockReportService, matchups *MockMatchupService) *Handler {
	if reports == nil {
		reports = &MockReportService{}
	}
	if matchups == nil {
		matchups = &MockMatchupService{}
	}
	return New(Config{
		Logger:   zap.NewNop(),
		Reports:  reports,
		Matchups: matchups,
	})
}

func TestScoutReportHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		scoutErr       error
		expectedStatus int
	}{
		{
			name:           "Valid",
			body:           `{"team":"Astralis","transparency":true}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "InvalidJSON",
			body:           `{"team":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "MissingTeam",
			body:           `{"timeframe_days":30}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "TeamTooShort",
			body:           `{"team":"x"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "TimeframeOutOfRange",
			body:           `{"team":"Astralis","timeframe_days":9999}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "TeamNotFound",
			body:           `{"team":"ghost team"}`,
			scoutErr:       fmt.Errorf("%w: %q", provider.ErrTeamNotFound, "ghost team"),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "VendorDown",
			body:           `{"team":"Astralis"}`,
			scoutErr:       provider.ErrVendorUnavailable,
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reports := &MockReportService{
				ScoutTeamFunc: func(ctx context.Context, req models.ScoutRequest) (*models.ScoutReport, error) {
					if tt.scoutErr != nil {
						return nil, tt.scoutErr
					}
					return &models.ScoutReport{ReportID: "r1", Team: models.TeamRef{ID: "t1", Name: req.Team}}, nil
				},
			}
			h := testHandler(reports, nil)
			r := h.Router(nil)

			req := httptest.NewRequest("POST", "/api/v1/reports/scout", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %v, want %v (body %s)", w.Code, tt.expectedStatus, w.Body.String())
			}
			if tt.expectedStatus == http.StatusOK {
				var report models.ScoutReport
				if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
					t.Fatalf("bad response body: %v", err)
				}
				if report.ReportID != "r1" {
					t.Errorf("report id = %s, want r1", report.ReportID)
				}
			}
		})
	}
}

func TestMatchupReportHandler(t *testing.T) {
	matchups := &MockMatchupService{
		MatchupFunc: func(ctx context.Context, req models.MatchupRequest) (*models.MatchupReport, error) {
			if req.OurTeam != "Astralis" || req.OpponentTeam != "NaVi" {
				t.Errorf("unexpected request: %+v", req)
			}
			return &models.MatchupReport{ReportID: "m1"}, nil
		},
	}
	h := testHandler(nil, matchups)
	r := h.Router(nil)

	body := `{"our_team":"Astralis","opponent_team":"NaVi"}`
	req := httptest.NewRequest("POST", "/api/v1/reports/matchup", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %v, want 200 (body %s)", w.Code, w.Body.String())
	}

	// One side missing is a validation error.
	req = httptest.NewRequest("POST", "/api/v1/reports/matchup", strings.NewReader(`{"our_team":"Astralis"}`))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %v, want 400", w.Code)
	}
}

func TestResolveTeamHandler(t *testing.T) {
	reports := &MockReportService{
		ResolveTeamFunc: func(ctx context.Context, query string) (*models.ResolveTeamResponse, error) {
			if query == "ghost" {
				return nil, provider.ErrTeamNotFound
			}
			return &models.ResolveTeamResponse{
				Team:   models.TeamRef{ID: "t1", Name: query},
				Source: "vendor",
			}, nil
		},
	}
	h := testHandler(reports, nil)
	r := h.Router(nil)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{name: "Found", path: "/api/v1/teams/resolve?q=Astralis", expectedStatus: http.StatusOK},
		{name: "NotFound", path: "/api/v1/teams/resolve?q=ghost", expectedStatus: http.StatusNotFound},
		{name: "MissingQuery", path: "/api/v1/teams/resolve", expectedStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.expectedStatus {
				t.Errorf("status = %v, want %v", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHealthAndReady(t *testing.T) {
	h := testHandler(nil, nil)
	r := h.Router(nil)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("health status = %v, want 200", w.Code)
	}

	// No backends configured means nothing can be unhealthy.
	req = httptest.NewRequest("GET", "/ready", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("ready status = %v, want 200", w.Code)
	}
}

func TestReadyReportsQueueDepth(t *testing.T) {
	h := New(Config{
		WorkerPool: &MockArchiveQueue{Depth: 7},
		Logger:     zap.NewNop(),
		Reports:    &MockReportService{},
		Matchups:   &MockMatchupService{},
	})

	req := httptest.NewRequest("GET", "/ready", nil)
	w := httptest.NewRecorder()
	h.Ready(w, req)

	var payload struct {
		Ready      bool `json:"ready"`
		QueueDepth int  `json:"queueDepth"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if !payload.Ready || payload.QueueDepth != 7 {
		t.Errorf("payload = %+v, want ready with depth 7", payload)
	}
}

func TestBodySizeLimit(t *testing.T) {
	h := testHandler(nil, nil)
	r := h.Router(nil)

	huge := `{"team":"` + strings.Repeat("a", MaxBodySize+1) + `"}`
	req := httptest.NewRequest("POST", "/api/v1/reports/scout", strings.NewReader(huge))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %v, want 400 for oversized body", w.Code)
	}
}
