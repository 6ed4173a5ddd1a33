// Package provider fetches team match histories from the upstream esports
// data vendor. The concrete client speaks the vendor's GraphQL API; retry
// and metrics decorators wrap it, and a demo provider stands in when no
// vendor credentials are configured.
package provider

import (
	"context"
	"errors"

	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/models"
)

var (
	// ErrTeamNotFound means the query matched no team in the vendor directory.
	ErrTeamNotFound = errors.New("provider: team not found")

	// ErrVendorUnavailable wraps transport and non-2xx failures from the vendor.
	ErrVendorUnavailable = errors.New("provider: vendor unavailable")
)

// Provider resolves teams and fetches their recent match histories.
type Provider interface {
	// ResolveTeam finds a team by exact id or exact case-insensitive name.
	// Fuzzy matching is deliberately not offered; a wrong team silently
	// scouted is worse than a not-found error.
	ResolveTeam(ctx context.Context, query string) (models.TeamRef, error)

	// TeamMatches resolves the query and returns up to limit recent matches,
	// newest first as the vendor serves them.
	TeamMatches(ctx context.Context, query string, limit int) ([]models.Match, models.TeamRef, error)
}
