package logic

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/models"
)

// RedisClient defines the interface for the Redis report cache
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// TeamCache defines the interface for the Postgres team directory cache
type TeamCache interface {
	Get(ctx context.Context, query string) (models.TeamRef, bool)
	Put(ctx context.Context, query string, ref models.TeamRef)
}

// Archive defines the interface for the async match archive
type Archive interface {
	Enqueue(teamID string, match models.Match) bool
}

// ReportService builds single-team scouting reports
type ReportService interface {
	ScoutTeam(ctx context.Context, req models.ScoutRequest) (*models.ScoutReport, error)
	ResolveTeam(ctx context.Context, query string) (*models.ResolveTeamResponse, error)
}

// MatchupService builds two-team comparison reports
type MatchupService interface {
	Matchup(ctx context.Context, req models.MatchupRequest) (*models.MatchupReport, error)
}
