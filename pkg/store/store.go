// Package store keeps imported team profiles in sqlite so that predictions can be
// requested by team name.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/richard-senior/hoops/internal/logger"
	"github.com/richard-senior/hoops/pkg/hoops"
	"github.com/richard-senior/hoops/pkg/ingest"
)

// ErrNotFound is returned when no stored profile matches a team name
var ErrNotFound = errors.New("team not found")

// StoredProfile is a profile with its provenance
type StoredProfile struct {
	Profile   hoops.TeamProfile `json:"profile"`
	Source    string            `json:"source"`
	ImportID  string            `json:"importId"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Import describes one batch of saved profiles
type Import struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	TeamCount int       `json:"teamCount"`
	CreatedAt time.Time `json:"createdAt"`
}

type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open connects to the sqlite file at path, creating it if needed. Call Migrate
// before first use.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info("Database opened", path)
	return &Store{db: db, path: path, now: time.Now}, nil
}

// Migrate creates the tables and indexes
func (s *Store) Migrate(ctx context.Context) error {
	for _, t := range []table{profileRow{}, importRow{}} {
		query := createTableSQL(t)
		logger.Debug("Creating table with SQL", query)
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", t.tableName(), err)
		}
		for _, idx := range indexSQL(t) {
			if _, err := s.db.ExecContext(ctx, idx); err != nil {
				return fmt.Errorf("failed to create index on %s: %w", t.tableName(), err)
			}
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveProfiles stores profiles as one import batch. A team already present is
// replaced by the newer profile.
func (s *Store) SaveProfiles(ctx context.Context, source string, profiles []hoops.TeamProfile) (*Import, error) {
	imp := &Import{
		ID:        uuid.NewString(),
		Source:    source,
		TeamCount: len(profiles),
		CreatedAt: s.now().UTC(),
	}
	stamp := imp.CreatedAt.Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, p := range profiles {
		key := ingest.NormalizeName(p.Name)
		if key == "" {
			return nil, fmt.Errorf("profile with empty name")
		}
		data, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("encode profile %s: %w", p.Name, err)
		}
		query, args := upsertSQL(profileRow{
			NameKey:     key,
			Name:        p.Name,
			ProfileJSON: string(data),
			Source:      source,
			ImportID:    imp.ID,
			UpdatedAt:   stamp,
		})
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("save profile %s: %w", p.Name, err)
		}
	}

	query, args := upsertSQL(importRow{ID: imp.ID, Source: source, TeamCount: imp.TeamCount, CreatedAt: stamp})
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("save import: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	logger.Info("Saved profiles", imp.TeamCount, "from", source)
	return imp, nil
}

// FindProfile looks a team up by name, ignoring case, accents and punctuation.
// A miss names the closest stored teams in the error.
func (s *Store) FindProfile(ctx context.Context, name string) (*StoredProfile, error) {
	key := ingest.NormalizeName(name)
	row := s.db.QueryRowContext(ctx,
		"SELECT profile_json, source, import_id, updated_at FROM team_profiles WHERE name_key = ?", key)
	sp, err := scanProfile(row)
	if !errors.Is(err, sql.ErrNoRows) {
		return sp, err
	}

	suggestions, serr := s.Suggest(ctx, name)
	if serr != nil || len(suggestions) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil, fmt.Errorf("%w: %s (did you mean %s?)", ErrNotFound, name, strings.Join(suggestions, ", "))
}

// ListProfiles returns every stored team ordered by name
func (s *Store) ListProfiles(ctx context.Context) ([]StoredProfile, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT profile_json, source, import_id, updated_at FROM team_profiles ORDER BY name_key")
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var out []StoredProfile
	for rows.Next() {
		sp, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sp)
	}
	return out, rows.Err()
}

// ListImports returns import batches, newest first
func (s *Store) ListImports(ctx context.Context) ([]Import, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, source, team_count, created_at FROM imports ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list imports: %w", err)
	}
	defer rows.Close()

	var out []Import
	for rows.Next() {
		var imp Import
		var created string
		if err := rows.Scan(&imp.ID, &imp.Source, &imp.TeamCount, &created); err != nil {
			return nil, fmt.Errorf("scan import: %w", err)
		}
		imp.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, imp)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (*StoredProfile, error) {
	var data, updated string
	var sp StoredProfile
	if err := row.Scan(&data, &sp.Source, &sp.ImportID, &updated); err != nil {
		return nil, err
	}
	if err := json.NewDecoder(strings.NewReader(data)).Decode(&sp.Profile); err != nil {
		return nil, fmt.Errorf("decode stored profile: %w", err)
	}
	sp.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return &sp, nil
}
