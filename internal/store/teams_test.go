package store

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/models"
)

// MockDB implements DB over an in-memory map
type MockDB struct {
	Rows  map[string]models.TeamRef
	Execs []string
}

func NewMockDB() *MockDB {
	return &MockDB{Rows: make(map[string]models.TeamRef)}
}

func (m *MockDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.Execs = append(m.Execs, sql)
	if len(args) >= 3 {
		query, _ := args[0].(string)
		id, _ := args[1].(string)
		name, _ := args[2].(string)
		m.Rows[query] = models.TeamRef{ID: id, Name: name}
	}
	return pgconn.CommandTag{}, nil
}

func (m *MockDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	query, _ := args[0].(string)
	ref, ok := m.Rows[query]
	return &MockRow{ref: ref, miss: !ok}
}

type MockRow struct {
	ref  models.TeamRef
	miss bool
}

func (r *MockRow) Scan(dest ...any) error {
	if r.miss {
		return pgx.ErrNoRows
	}
	*(dest[0].(*string)) = r.ref.ID
	*(dest[1].(*string)) = r.ref.Name
	return nil
}

func TestTeamStoreRoundTrip(t *testing.T) {
	db := NewMockDB()
	s := NewTeamStore(db, zap.NewNop())
	ctx := context.Background()

	if _, ok := s.Get(ctx, "Astralis"); ok {
		t.Fatal("empty store must miss")
	}

	s.Put(ctx, "Astralis", models.TeamRef{ID: "t1", Name: "Astralis"})

	ref, ok := s.Get(ctx, "Astralis")
	if !ok || ref.ID != "t1" {
		t.Errorf("Get = %+v %v, want hit with t1", ref, ok)
	}

	// Queries are normalized, so casing and whitespace hit the same row.
	ref, ok = s.Get(ctx, "  astralis ")
	if !ok || ref.ID != "t1" {
		t.Errorf("normalized Get = %+v %v, want hit with t1", ref, ok)
	}
}

func TestTeamStoreDisabledWithoutDB(t *testing.T) {
	s := NewTeamStore(nil, zap.NewNop())
	ctx := context.Background()

	if err := s.EnsureSchema(ctx); err != nil {
		t.Errorf("EnsureSchema on disabled store: %v", err)
	}
	s.Put(ctx, "Astralis", models.TeamRef{ID: "t1", Name: "Astralis"})
	if _, ok := s.Get(ctx, "Astralis"); ok {
		t.Error("disabled store must always miss")
	}
}
