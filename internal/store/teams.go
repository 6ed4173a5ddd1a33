// Package store caches resolved team identities in Postgres so repeat
// scouting requests skip the vendor directory lookup.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS scout_teams (
	query      TEXT PRIMARY KEY,
	team_id    TEXT NOT NULL,
	team_name  TEXT NOT NULL,
	last_seen  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// DB is the subset of pgxpool.Pool the store needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TeamStore persists query -> team ref mappings. A nil DB disables the
// store; lookups miss and writes are dropped.
type TeamStore struct {
	db     DB
	logger *zap.SugaredLogger
}

// NewTeamStore creates a team store over the given connection pool.
func NewTeamStore(db DB, logger *zap.Logger) *TeamStore {
	return &TeamStore{db: db, logger: logger.Sugar()}
}

// EnsureSchema creates the backing table if it does not exist.
func (s *TeamStore) EnsureSchema(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	_, err := s.db.Exec(ctx, schema)
	return err
}

// Get returns the cached ref for a query, if any. Lookup errors count as
// misses; the vendor directory is the source of truth.
func (s *TeamStore) Get(ctx context.Context, query string) (models.TeamRef, bool) {
	if s.db == nil {
		return models.TeamRef{}, false
	}

	var ref models.TeamRef
	err := s.db.QueryRow(ctx,
		`SELECT team_id, team_name FROM scout_teams WHERE query = $1`,
		normalizeQuery(query),
	).Scan(&ref.ID, &ref.Name)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warnw("Team cache lookup failed", "query", query, "error", err)
		}
		return models.TeamRef{}, false
	}
	return ref, true
}

// Put records a resolved ref under the query that produced it. Failures are
// logged and swallowed; the cache is never on the request's critical path.
func (s *TeamStore) Put(ctx context.Context, query string, ref models.TeamRef) {
	if s.db == nil {
		return
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO scout_teams (query, team_id, team_name, last_seen)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (query) DO UPDATE
		SET team_id = EXCLUDED.team_id,
		    team_name = EXCLUDED.team_name,
		    last_seen = EXCLUDED.last_seen`,
		normalizeQuery(query), ref.ID, ref.Name, time.Now().UTC(),
	)
	if err != nil {
		s.logger.Warnw("Team cache write failed", "query", query, "error", err)
	}
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}
