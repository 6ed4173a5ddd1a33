package handlers

import (
	"context"

	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/models"
)

// Mocks

type MockReportService struct {
	ScoutTeamFunc   func(ctx context.Context, req models.ScoutRequest) (*models.ScoutReport, error)
	ResolveTeamFunc func(ctx context.Context, query string) (*models.ResolveTeamResponse, error)
}

func (m *MockReportService) ScoutTeam(ctx context.Context, req models.ScoutRequest) (*models.ScoutReport, error) {
	if m.ScoutTeamFunc != nil {
		return m.ScoutTeamFunc(ctx, req)
	}
	return &models.ScoutReport{ReportID: "r1"}, nil
}

func (m *MockReportService) ResolveTeam(ctx context.Context, query string) (*models.ResolveTeamResponse, error) {
	if m.ResolveTeamFunc != nil {
		return m.ResolveTeamFunc(ctx, query)
	}
	return &models.ResolveTeamResponse{Source: "vendor"}, nil
}

type MockMatchupService struct {
	MatchupFunc func(ctx context.Context, req models.MatchupRequest) (*models.MatchupReport, error)
}

func (m *MockMatchupService) Matchup(ctx context.Context, req models.MatchupRequest) (*models.MatchupReport, error) {
	if m.MatchupFunc != nil {
		return m.MatchupFunc(ctx, req)
	}
	return &models.MatchupReport{ReportID: "m1"}, nil
}

type MockArchiveQueue struct {
	Depth int
}

func (m *MockArchiveQueue) QueueDepth() int { return m.Depth }
