package reftable

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/0xcro3dile/decaysearch-go/internal/domain/entities"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore persists a reference table in a SQLite database.
// It is both a TransitionSink (export) and a TransitionSource (import).
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &SQLiteStore{db: db, path: path}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS transitions (
		seq INTEGER PRIMARY KEY,
		parent TEXT NOT NULL,
		daughter TEXT NOT NULL,
		decay TEXT NOT NULL,
		radiation TEXT NOT NULL,
		energy TEXT NOT NULL,
		uncertainty TEXT NOT NULL,
		intensity REAL NOT NULL,
		lower_kev REAL NOT NULL,
		upper_kev REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_decay ON transitions(decay, radiation);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save replaces the stored table with transitions in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, transitions []entities.Transition) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM transitions"); err != nil {
		return fmt.Errorf("clearing table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transitions (seq, parent, daughter, decay, radiation, energy, uncertainty, intensity, lower_kev, upper_kev)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, t := range transitions {
		_, err = stmt.ExecContext(ctx,
			i,
			t.Parent,
			t.Daughter,
			string(t.Decay),
			t.Radiation.Code(),
			t.EnergyText,
			t.UncertaintyText,
			t.Intensity,
			t.LowerKeV,
			t.UpperKeV,
		)
		if err != nil {
			return fmt.Errorf("inserting transition %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Load reads the stored table back in the order it was saved.
func (s *SQLiteStore) Load(ctx context.Context) ([]entities.Transition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT parent, daughter, decay, radiation, energy, uncertainty, intensity, lower_kev, upper_kev
		FROM transitions ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("querying transitions: %w", err)
	}
	defer rows.Close()

	var transitions []entities.Transition
	for rows.Next() {
		var t entities.Transition
		var decay, code string
		err := rows.Scan(&t.Parent, &t.Daughter, &decay, &code, &t.EnergyText, &t.UncertaintyText, &t.Intensity, &t.LowerKeV, &t.UpperKeV)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		t.Decay = entities.DecayID(decay)
		if t.Radiation, err = entities.RadiationTypeFromCode(code); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrCorrupt, len(transitions), err)
		}
		transitions = append(transitions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	return transitions, nil
}

func (s *SQLiteStore) Name() string { return "sqlite:" + s.path }

// Count returns the number of stored transitions.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transitions").Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
