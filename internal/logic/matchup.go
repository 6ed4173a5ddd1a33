package logic

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/engine"
	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/models"
)

type matchupService struct {
	*reportService
}

// NewMatchupService creates the two-team comparison service.
func NewMatchupService(cfg Config) MatchupService {
	return &matchupService{newReportService(cfg)}
}

func (s *matchupService) Matchup(ctx context.Context, req models.MatchupRequest) (*models.MatchupReport, error) {
	limit := s.limit(req.MaxMatches)

	var (
		ourMatches, oppMatches []models.Match
		ourRef, oppRef         models.TeamRef
		ourDemo, oppDemo       bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ourMatches, ourRef, ourDemo, err = s.fetchMatches(gctx, req.OurTeam, limit)
		return err
	})
	g.Go(func() error {
		var err error
		oppMatches, oppRef, oppDemo, err = s.fetchMatches(gctx, req.OpponentTeam, limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ourMatches = s.trim(ourMatches, req.TimeframeDays, limit)
	oppMatches = s.trim(oppMatches, req.TimeframeDays, limit)

	report := engine.BuildMatchupReport(ourMatches, ourRef, oppMatches, oppRef, s.tuning, req.Transparency)
	report.ReportID = uuid.NewString()
	report.GeneratedAt = s.now().UTC()
	report.DemoData = ourDemo || oppDemo

	s.archiveMatches(ourRef, ourMatches, ourDemo)
	s.archiveMatches(oppRef, oppMatches, oppDemo)

	return &report, nil
}
