// Package history records apply runs in a SQLite database.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/facundojmaero/gnome-shortcuts/internal/migrations"
	"github.com/facundojmaero/gnome-shortcuts/internal/types"
)

// DefaultLimit is the number of runs returned when no limit is given
const DefaultLimit = 20

type Manager struct {
	db *sql.DB
}

func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db}, nil
}

// NewRunID returns a fresh identifier for an apply run
func NewRunID() string {
	return uuid.NewString()
}

// Save stores a run and its changes. ID is filled in on success,
// RunID and Timestamp when they are empty.
func (m *Manager) Save(record *types.RunRecord) error {
	if record.RunID == "" {
		record.RunID = NewRunID()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}

	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin history transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO runs (run_id, timestamp, config_file, dry_run, duration_ms, error)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		record.RunID,
		record.Timestamp.UTC(),
		record.ConfigFile,
		record.DryRun,
		record.DurationMs,
		nullString(record.Error),
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read run id: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO run_changes (run_id, position, kind, name, binding, command, schema_name, slot, path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare change insert: %w", err)
	}
	defer stmt.Close()

	for i, change := range record.Changes {
		var slot sql.NullInt64
		if change.Slot != nil {
			slot = sql.NullInt64{Int64: int64(*change.Slot), Valid: true}
		}
		_, err := stmt.Exec(id, i, string(change.Kind), change.Name,
			nullString(change.Binding), nullString(change.Command), nullString(change.Schema),
			slot, nullString(change.Path))
		if err != nil {
			return fmt.Errorf("failed to save change %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}

	record.ID = id
	return nil
}

// Load returns the most recent runs first, each with its changes
func (m *Manager) Load(limit int) ([]types.RunRecord, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := m.db.Query(`
		SELECT id, run_id, timestamp, config_file, dry_run, duration_ms, error
		FROM runs
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	records, err := m.scanRuns(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	for i := range records {
		changes, err := m.loadChanges(records[i].ID)
		if err != nil {
			return nil, err
		}
		records[i].Changes = changes
	}

	return records, nil
}

// Get returns a single run by its run identifier
func (m *Manager) Get(runID string) (*types.RunRecord, error) {
	rows, err := m.db.Query(`
		SELECT id, run_id, timestamp, config_file, dry_run, duration_ms, error
		FROM runs
		WHERE run_id = ?
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	records, err := m.scanRuns(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("run not found: %s", runID)
	}

	record := records[0]
	record.Changes, err = m.loadChanges(record.ID)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (m *Manager) scanRuns(rows *sql.Rows) ([]types.RunRecord, error) {
	records := []types.RunRecord{}

	for rows.Next() {
		var record types.RunRecord
		var errorMsg sql.NullString

		err := rows.Scan(
			&record.ID,
			&record.RunID,
			&record.Timestamp,
			&record.ConfigFile,
			&record.DryRun,
			&record.DurationMs,
			&errorMsg,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		record.Timestamp = record.Timestamp.Local()
		record.Error = errorMsg.String
		records = append(records, record)
	}

	return records, rows.Err()
}

func (m *Manager) loadChanges(runID int64) ([]types.Change, error) {
	rows, err := m.db.Query(`
		SELECT kind, name, binding, command, schema_name, slot, path
		FROM run_changes
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load changes: %w", err)
	}
	defer rows.Close()

	changes := []types.Change{}
	for rows.Next() {
		var kind, name string
		var binding, command, schema, path sql.NullString
		var slot sql.NullInt64

		if err := rows.Scan(&kind, &name, &binding, &command, &schema, &slot, &path); err != nil {
			return nil, fmt.Errorf("failed to scan change: %w", err)
		}

		change := types.Change{
			Kind:    types.ChangeKind(kind),
			Name:    name,
			Binding: binding.String,
			Command: command.String,
			Schema:  schema.String,
			Path:    path.String,
		}
		if slot.Valid {
			index := int(slot.Int64)
			change.Slot = &index
		}
		changes = append(changes, change)
	}

	return changes, rows.Err()
}

func (m *Manager) Clear() error {
	if _, err := m.db.Exec("DELETE FROM run_changes"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	if _, err := m.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func (m *Manager) GetCount() (int, error) {
	var count int
	err := m.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get history count: %w", err)
	}
	return count, nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
