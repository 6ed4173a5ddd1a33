package logic

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/engine"
	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/models"
	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/provider"
)

var (
	refAstra = models.TeamRef{ID: "t-astra", Name: "Astralis"}
	refNavi  = models.TeamRef{ID: "t-navi", Name: "NaVi"}
)

func fixtureMatches(ref models.TeamRef, results []bool) []models.Match {
	base := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)
	var out []models.Match
	for i, won := range results {
		ourScore, oppScore := 13.0, 7.0
		if !won {
			ourScore, oppScore = 7.0, 13.0
		}
		isWin := won
		isLoss := !won
		out = append(out, models.Match{
			ID:        fmt.Sprintf("%s-m%d", ref.ID, i),
			SeriesID:  fmt.Sprintf("%s-s%d", ref.ID, i),
			StartTime: base.AddDate(0, 0, i).Format(time.RFC3339),
			MapName:   "inferno",
			Teams: []models.TeamResult{
				{TeamID: ref.ID, TeamName: ref.Name, Score: ourScore, IsWinner: &isWin},
				{TeamID: "t-opp", TeamName: "Opponent", Score: oppScore, IsWinner: &isLoss},
			},
		})
	}
	return out
}

func testConfig(p provider.Provider) Config {
	return Config{
		Provider: p,
		Tuning:   engine.DefaultTuning(),
		Logger:   zap.NewNop(),
	}
}

func TestScoutTeamHappyPath(t *testing.T) {
	mock := &MockProvider{
		Refs:    map[string]models.TeamRef{"Astralis": refAstra},
		Matches: map[string][]models.Match{"Astralis": fixtureMatches(refAstra, []bool{true, true, false, true})},
	}
	archive := &MockArchive{}
	cfg := testConfig(mock)
	cfg.Archive = archive
	svc := NewReportService(cfg)

	report, err := svc.ScoutTeam(context.Background(), models.ScoutRequest{Team: "Astralis"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.ReportID == "" || report.GeneratedAt.IsZero() {
		t.Error("report missing id or timestamp")
	}
	if report.Team != refAstra {
		t.Errorf("team = %+v, want %+v", report.Team, refAstra)
	}
	if report.WinProbability != 75 {
		t.Errorf("win probability = %d, want 75", report.WinProbability)
	}
	if report.DemoData {
		t.Error("vendor-backed report must not be flagged as demo data")
	}
	if archive.Count() != 4 {
		t.Errorf("archived matches = %d, want 4", archive.Count())
	}
}

func TestScoutTeamCaching(t *testing.T) {
	mock := &MockProvider{
		Refs:    map[string]models.TeamRef{"Astralis": refAstra},
		Matches: map[string][]models.Match{"Astralis": fixtureMatches(refAstra, []bool{true, false})},
	}
	cfg := testConfig(mock)
	cfg.Cache = NewMockRedis()
	svc := NewReportService(cfg)

	first, err := svc.ScoutTeam(context.Background(), models.ScoutRequest{Team: "Astralis"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	callsAfterFirst := mock.Calls

	second, err := svc.ScoutTeam(context.Background(), models.ScoutRequest{Team: "Astralis"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.Calls != callsAfterFirst {
		t.Errorf("cached request hit the vendor (%d calls, had %d)", mock.Calls, callsAfterFirst)
	}
	if second.ReportID != first.ReportID {
		t.Error("cached report must be returned verbatim")
	}
}

func TestScoutTeamDemoFallback(t *testing.T) {
	mock := &MockProvider{Err: provider.ErrVendorUnavailable}
	archive := &MockArchive{}
	cfg := testConfig(mock)
	cfg.Demo = provider.NewDemoProvider()
	cfg.Archive = archive
	svc := NewReportService(cfg)

	report, err := svc.ScoutTeam(context.Background(), models.ScoutRequest{Team: "Phantom Five"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.DemoData {
		t.Error("fallback report must be flagged as demo data")
	}
	if report.MatchesAnalyzed == 0 {
		t.Error("demo fallback produced an empty report")
	}
	if archive.Count() != 0 {
		t.Error("demo matches must not be archived")
	}
}

func TestScoutTeamNotFoundIsNotMasked(t *testing.T) {
	mock := &MockProvider{Err: fmt.Errorf("%w: %q", provider.ErrTeamNotFound, "ghost")}
	cfg := testConfig(mock)
	cfg.Demo = provider.NewDemoProvider()
	svc := NewReportService(cfg)

	_, err := svc.ScoutTeam(context.Background(), models.ScoutRequest{Team: "ghost"})
	if !errors.Is(err, provider.ErrTeamNotFound) {
		t.Errorf("err = %v, want ErrTeamNotFound", err)
	}
}

func TestScoutTeamUsesTeamCache(t *testing.T) {
	mock := &MockProvider{
		Refs:    map[string]models.TeamRef{"t-astra": refAstra},
		Matches: map[string][]models.Match{"t-astra": fixtureMatches(refAstra, []bool{true})},
	}
	teams := NewMockTeamCache()
	teams.Put(context.Background(), "Astralis", refAstra)
	cfg := testConfig(mock)
	cfg.Teams = teams
	svc := NewReportService(cfg)

	_, err := svc.ScoutTeam(context.Background(), models.ScoutRequest{Team: "Astralis"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mock.Queries) == 0 || mock.Queries[0] != "t-astra" {
		t.Errorf("vendor queried with %v, want the cached team id", mock.Queries)
	}
}

func TestResolveTeamSources(t *testing.T) {
	mock := &MockProvider{Refs: map[string]models.TeamRef{"NaVi": refNavi}}
	teams := NewMockTeamCache()
	teams.Put(context.Background(), "Astralis", refAstra)
	cfg := testConfig(mock)
	cfg.Teams = teams
	svc := NewReportService(cfg)

	resp, err := svc.ResolveTeam(context.Background(), "Astralis")
	if err != nil || resp.Source != "store" {
		t.Errorf("resp = %+v err = %v, want store hit", resp, err)
	}

	resp, err = svc.ResolveTeam(context.Background(), "NaVi")
	if err != nil || resp.Source != "vendor" {
		t.Errorf("resp = %+v err = %v, want vendor hit", resp, err)
	}
	if _, ok := teams.Get(context.Background(), "NaVi"); !ok {
		t.Error("vendor resolution must backfill the team cache")
	}

	mock.Err = provider.ErrVendorUnavailable
	cfg2 := testConfig(mock)
	cfg2.Demo = provider.NewDemoProvider()
	svc = NewReportService(cfg2)
	resp, err = svc.ResolveTeam(context.Background(), "Phantom Five")
	if err != nil || resp.Source != "demo" {
		t.Errorf("resp = %+v err = %v, want demo fallback", resp, err)
	}
}

func TestScoutTeamRespectsMatchCap(t *testing.T) {
	mock := &MockProvider{
		Refs: map[string]models.TeamRef{"Astralis": refAstra},
		Matches: map[string][]models.Match{
			"Astralis": fixtureMatches(refAstra, make([]bool, 30)),
		},
	}
	cfg := testConfig(mock)
	cfg.MatchCap = 10
	svc := NewReportService(cfg)

	report, err := svc.ScoutTeam(context.Background(), models.ScoutRequest{Team: "Astralis"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.MatchesAnalyzed != 10 {
		t.Errorf("matches analyzed = %d, want capped 10", report.MatchesAnalyzed)
	}
}
