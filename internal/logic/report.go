package logic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/engine"
	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/models"
	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/provider"
)

const defaultMatchCap = 50

// Config wires a report service. Cache, Teams, Archive and Demo are
// optional; a nil value disables that collaborator.
type Config struct {
	Provider provider.Provider
	Demo     provider.Provider
	Teams    TeamCache
	Cache    RedisClient
	Archive  Archive
	Tuning   engine.Tuning
	CacheTTL time.Duration
	MatchCap int
	Logger   *zap.Logger
}

type reportService struct {
	provider provider.Provider
	demo     provider.Provider
	teams    TeamCache
	cache    RedisClient
	archive  Archive
	tuning   engine.Tuning
	cacheTTL time.Duration
	matchCap int
	logger   *zap.SugaredLogger
	now      func() time.Time
}

func newReportService(cfg Config) *reportService {
	matchCap := cfg.MatchCap
	if matchCap <= 0 {
		matchCap = defaultMatchCap
	}
	cacheTTL := cfg.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &reportService{
		provider: cfg.Provider,
		demo:     cfg.Demo,
		teams:    cfg.Teams,
		cache:    cfg.Cache,
		archive:  cfg.Archive,
		tuning:   cfg.Tuning,
		cacheTTL: cacheTTL,
		matchCap: matchCap,
		logger:   cfg.Logger.Sugar(),
		now:      time.Now,
	}
}

// NewReportService creates the single-team scouting service.
func NewReportService(cfg Config) ReportService {
	return newReportService(cfg)
}

func (s *reportService) ScoutTeam(ctx context.Context, req models.ScoutRequest) (*models.ScoutReport, error) {
	limit := s.limit(req.MaxMatches)
	cacheKey := fmt.Sprintf("scout:report:%s:%d:%d:%t",
		strings.ToLower(req.Team), req.TimeframeDays, limit, req.Transparency)

	if cached, ok := s.cachedReport(ctx, cacheKey); ok {
		return cached, nil
	}

	matches, ref, demoData, err := s.fetchMatches(ctx, req.Team, limit)
	if err != nil {
		return nil, err
	}
	matches = s.trim(matches, req.TimeframeDays, limit)

	report := engine.BuildScoutReport(matches, ref, nil, s.tuning, req.Transparency)
	report.ReportID = uuid.NewString()
	report.GeneratedAt = s.now().UTC()
	report.DemoData = demoData

	s.archiveMatches(ref, matches, demoData)
	s.storeReport(ctx, cacheKey, &report)

	return &report, nil
}

func (s *reportService) ResolveTeam(ctx context.Context, query string) (*models.ResolveTeamResponse, error) {
	if s.teams != nil {
		if ref, ok := s.teams.Get(ctx, query); ok {
			return &models.ResolveTeamResponse{Team: ref, Source: "store"}, nil
		}
	}

	ref, err := s.provider.ResolveTeam(ctx, query)
	if err == nil {
		if s.teams != nil {
			s.teams.Put(ctx, query, ref)
		}
		return &models.ResolveTeamResponse{Team: ref, Source: "vendor"}, nil
	}
	if errors.Is(err, provider.ErrTeamNotFound) || s.demo == nil {
		return nil, err
	}

	s.logger.Warnw("Vendor resolve failed, using demo directory", "query", query, "error", err)
	ref, err = s.demo.ResolveTeam(ctx, query)
	if err != nil {
		return nil, err
	}
	return &models.ResolveTeamResponse{Team: ref, Source: "demo"}, nil
}

// fetchMatches pulls the team's history from the vendor, preferring a cached
// team id so the vendor skips its directory search. A vendor outage falls
// back to the demo dataset; an unknown team does not.
func (s *reportService) fetchMatches(ctx context.Context, query string, limit int) ([]models.Match, models.TeamRef, bool, error) {
	vendorQuery := query
	if s.teams != nil {
		if ref, ok := s.teams.Get(ctx, query); ok {
			vendorQuery = ref.ID
		}
	}

	matches, ref, err := s.provider.TeamMatches(ctx, vendorQuery, limit)
	if err == nil {
		if s.teams != nil {
			s.teams.Put(ctx, query, ref)
		}
		return matches, ref, false, nil
	}
	if errors.Is(err, provider.ErrTeamNotFound) || s.demo == nil {
		return nil, models.TeamRef{}, false, err
	}

	s.logger.Warnw("Vendor fetch failed, serving demo data", "team", query, "error", err)
	matches, ref, err = s.demo.TeamMatches(ctx, query, limit)
	if err != nil {
		return nil, models.TeamRef{}, false, err
	}
	return matches, ref, true, nil
}

func (s *reportService) limit(requested int) int {
	if requested <= 0 || requested > s.matchCap {
		return s.matchCap
	}
	return requested
}

func (s *reportService) trim(matches []models.Match, timeframeDays, limit int) []models.Match {
	matches = engine.FilterByTimeframe(matches, timeframeDays, s.now())
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func (s *reportService) cachedReport(ctx context.Context, key string) (*models.ScoutReport, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var report models.ScoutReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		s.logger.Warnw("Corrupt cached report dropped", "key", key, "error", err)
		return nil, false
	}
	return &report, true
}

func (s *reportService) storeReport(ctx context.Context, key string, report *models.ScoutReport) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warnw("Report cache write failed", "key", key, "error", err)
	}
}

func (s *reportService) archiveMatches(ref models.TeamRef, matches []models.Match, demoData bool) {
	if s.archive == nil || demoData {
		return
	}
	for _, m := range matches {
		s.archive.Enqueue(ref.ID, m)
	}
}
