package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/models"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultMatchLimit = 50
)

const teamsQuery = `query Teams($query: String!) {
  teams(query: $query) { id name }
}`

const teamMatchesQuery = `query TeamMatches($teamId: ID!, $limit: Int!) {
  teamMatches(teamId: $teamId, limit: $limit) {
    id seriesId startTime map
    teams { id name score winner players { id name } }
  }
}`

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// VendorConfig controls how the client reaches the vendor GraphQL endpoint.
type VendorConfig struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// VendorClient fetches match histories from the vendor GraphQL API and maps
// them to normalized models.
type VendorClient struct {
	baseURL    string
	token      string
	httpClient httpDoer
}

// NewVendorClient constructs a vendor client with the provided configuration.
func NewVendorClient(cfg VendorConfig) *VendorClient {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &VendorClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: httpClient,
	}
}

// ResolveTeam looks the query up in the vendor team directory. Exact id wins
// over exact case-insensitive name.
func (c *VendorClient) ResolveTeam(ctx context.Context, query string) (models.TeamRef, error) {
	var payload struct {
		Teams []vendorTeamRef `json:"teams"`
	}
	if err := c.post(ctx, teamsQuery, map[string]any{"query": query}, &payload); err != nil {
		return models.TeamRef{}, err
	}

	for _, t := range payload.Teams {
		if t.ID == query {
			return models.TeamRef{ID: t.ID, Name: t.Name}, nil
		}
	}
	for _, t := range payload.Teams {
		if strings.EqualFold(t.Name, query) {
			return models.TeamRef{ID: t.ID, Name: t.Name}, nil
		}
	}
	return models.TeamRef{}, fmt.Errorf("%w: %q", ErrTeamNotFound, query)
}

// TeamMatches resolves the team and fetches its recent matches.
func (c *VendorClient) TeamMatches(ctx context.Context, query string, limit int) ([]models.Match, models.TeamRef, error) {
	ref, err := c.ResolveTeam(ctx, query)
	if err != nil {
		return nil, models.TeamRef{}, err
	}

	if limit <= 0 {
		limit = defaultMatchLimit
	}

	var payload struct {
		TeamMatches []vendorMatch `json:"teamMatches"`
	}
	vars := map[string]any{"teamId": ref.ID, "limit": limit}
	if err := c.post(ctx, teamMatchesQuery, vars, &payload); err != nil {
		return nil, models.TeamRef{}, err
	}

	matches := make([]models.Match, 0, len(payload.TeamMatches))
	for _, m := range payload.TeamMatches {
		matches = append(matches, normalizeMatch(m))
	}
	return matches, ref, nil
}

func (c *VendorClient) post(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/graphql", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVendorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s",
			ErrVendorUnavailable, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrVendorUnavailable, err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("%w: graphql: %s", ErrVendorUnavailable, envelope.Errors[0].Message)
	}
	return json.Unmarshal(envelope.Data, out)
}

// Vendor wire types. Scores and winners are pointers because the vendor
// omits them for forfeits and live matches.
type vendorTeamRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type vendorMatch struct {
	ID        string           `json:"id"`
	SeriesID  string           `json:"seriesId"`
	StartTime string           `json:"startTime"`
	Map       string           `json:"map"`
	Teams     []vendorTeamSide `json:"teams"`
}

type vendorTeamSide struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Score   *float64       `json:"score"`
	Winner  *bool          `json:"winner"`
	Players []vendorPlayer `json:"players"`
}

type vendorPlayer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// normalizeMatch maps a vendor payload onto the internal shape. Malformed
// startTime strings pass through untouched; the aggregator decides what to
// do with timestamps it cannot parse.
func normalizeMatch(v vendorMatch) models.Match {
	match := models.Match{
		ID:        v.ID,
		SeriesID:  v.SeriesID,
		StartTime: v.StartTime,
		MapName:   v.Map,
		Teams:     make([]models.TeamResult, 0, len(v.Teams)),
	}
	for _, side := range v.Teams {
		result := models.TeamResult{
			TeamID:   side.ID,
			TeamName: side.Name,
			IsWinner: side.Winner,
		}
		if side.Score != nil {
			result.Score = *side.Score
		}
		for _, p := range side.Players {
			result.Players = append(result.Players, models.Player{
				ID:     p.ID,
				Name:   p.Name,
				TeamID: side.ID,
			})
		}
		match.Teams = append(match.Teams, result)
	}
	return match
}
