package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/models"
)

// DemoProvider serves a deterministic fixture dataset. It backs the service
// when no vendor token is configured and doubles as the fallback when the
// vendor is down, so reports stay explorable without credentials. Reports
// built from it must be flagged as demo data by the caller.
type DemoProvider struct {
	now func() time.Time
}

// NewDemoProvider creates a demo provider with a real time source.
func NewDemoProvider() *DemoProvider {
	return &DemoProvider{now: time.Now}
}

type demoResult struct {
	opponent string
	mapName  string
	ourScore float64
	oppScore float64
}

var demoTeams = []models.TeamRef{
	{ID: "demo-phantom", Name: "Phantom Five"},
	{ID: "demo-wolves", Name: "Crimson Wolves"},
	{ID: "demo-owls", Name: "Iron Owls"},
}

// Histories are fixed per team; dates come from the time source so the
// matches always land inside a recent scouting window.
var demoHistories = map[string][]demoResult{
	"demo-phantom": {
		{"Crimson Wolves", "inferno", 13, 7},
		{"Iron Owls", "inferno", 13, 10},
		{"Crimson Wolves", "nuke", 5, 13},
		{"Iron Owls", "nuke", 9, 13},
		{"Crimson Wolves", "mirage", 13, 11},
		{"Iron Owls", "inferno", 13, 4},
		{"Crimson Wolves", "nuke", 7, 13},
		{"Iron Owls", "mirage", 13, 9},
		{"Crimson Wolves", "inferno", 13, 8},
		{"Iron Owls", "overpass", 10, 13},
	},
	"demo-wolves": {
		{"Phantom Five", "inferno", 7, 13},
		{"Iron Owls", "nuke", 13, 6},
		{"Phantom Five", "nuke", 13, 5},
		{"Iron Owls", "nuke", 13, 9},
		{"Phantom Five", "mirage", 11, 13},
		{"Iron Owls", "nuke", 13, 11},
		{"Phantom Five", "nuke", 13, 7},
		{"Iron Owls", "train", 8, 13},
	},
	"demo-owls": {
		{"Phantom Five", "inferno", 10, 13},
		{"Crimson Wolves", "nuke", 6, 13},
		{"Phantom Five", "nuke", 13, 9},
		{"Crimson Wolves", "nuke", 9, 13},
		{"Phantom Five", "mirage", 9, 13},
		{"Crimson Wolves", "train", 13, 8},
		{"Phantom Five", "overpass", 13, 10},
	},
}

// ResolveTeam matches demo teams by id or case-insensitive name. Any other
// query resolves to the first demo team so a credential-less install always
// produces a report.
func (p *DemoProvider) ResolveTeam(ctx context.Context, query string) (models.TeamRef, error) {
	_ = ctx
	return p.resolve(query), nil
}

// TeamMatches returns the fixture history for the resolved team, newest
// first, dated daily back from the current day.
func (p *DemoProvider) TeamMatches(ctx context.Context, query string, limit int) ([]models.Match, models.TeamRef, error) {
	_ = ctx
	ref := p.resolve(query)
	history := demoHistories[ref.ID]

	day := p.now().UTC().Truncate(24 * time.Hour)
	matches := make([]models.Match, 0, len(history))
	for i, r := range history {
		opponent := p.byName(r.opponent)
		matchID := fmt.Sprintf("%s-m%d", ref.ID, i+1)
		matches = append(matches, models.Match{
			ID:        matchID,
			SeriesID:  fmt.Sprintf("%s-s%d", ref.ID, i/2+1),
			StartTime: day.AddDate(0, 0, -i).Format(time.RFC3339),
			MapName:   r.mapName,
			Teams: []models.TeamResult{
				demoSide(ref, r.ourScore, r.ourScore > r.oppScore),
				demoSide(opponent, r.oppScore, r.oppScore > r.ourScore),
			},
		})
	}
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, ref, nil
}

func (p *DemoProvider) resolve(query string) models.TeamRef {
	for _, t := range demoTeams {
		if t.ID == query || strings.EqualFold(t.Name, query) {
			return t
		}
	}
	return demoTeams[0]
}

func (p *DemoProvider) byName(name string) models.TeamRef {
	for _, t := range demoTeams {
		if t.Name == name {
			return t
		}
	}
	return demoTeams[0]
}

func demoSide(ref models.TeamRef, score float64, won bool) models.TeamResult {
	isWinner := won
	side := models.TeamResult{
		TeamID:   ref.ID,
		TeamName: ref.Name,
		Score:    score,
		IsWinner: &isWinner,
	}
	for i := 1; i <= 5; i++ {
		side.Players = append(side.Players, models.Player{
			ID:     fmt.Sprintf("%s-p%d", ref.ID, i),
			Name:   fmt.Sprintf("%s #%d", ref.Name, i),
			TeamID: ref.ID,
		})
	}
	return side
}
