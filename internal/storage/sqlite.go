// Package storage provides SQLite-based persistence for battle results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for battle persistence.
type Store struct {
	db *sql.DB
}

// BattleRecord is the stored outcome of one simulated battle.
type BattleRecord struct {
	ID            int64
	StageID       int
	StageName     string
	Frames        int    // ticks simulated
	Outcome       string // "player", "enemy", "draw", "timeout"
	PlayerSpawned int
	EnemySpawned  int
	PlayerLost    int
	EnemyLost     int
	PeakCost      float64
	DurationMS    int64 // wall-clock duration of the run
	CreatedAt     time.Time
}

// StageStats contains aggregated statistics for one stage.
type StageStats struct {
	StageID    int
	Battles    int
	PlayerWins int
	AvgFrames  float64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS battles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			stage_id INTEGER NOT NULL,
			stage_name TEXT NOT NULL,
			frames INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			player_spawned INTEGER NOT NULL DEFAULT 0,
			enemy_spawned INTEGER NOT NULL DEFAULT 0,
			player_lost INTEGER NOT NULL DEFAULT 0,
			enemy_lost INTEGER NOT NULL DEFAULT 0,
			peak_cost REAL NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_battles_stage_id ON battles(stage_id);
		CREATE INDEX IF NOT EXISTS idx_battles_recent ON battles(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveBattle records a finished battle. Returns the inserted row id.
func (s *Store) SaveBattle(rec BattleRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO battles
		 (stage_id, stage_name, frames, outcome, player_spawned, enemy_spawned,
		  player_lost, enemy_lost, peak_cost, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.StageID,
		rec.StageName,
		rec.Frames,
		rec.Outcome,
		rec.PlayerSpawned,
		rec.EnemySpawned,
		rec.PlayerLost,
		rec.EnemyLost,
		rec.PeakCost,
		rec.DurationMS,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save battle: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentBattles retrieves the most recent battle records.
func (s *Store) RecentBattles(limit int) ([]BattleRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, stage_id, stage_name, frames, outcome, player_spawned,
		        enemy_spawned, player_lost, enemy_lost, peak_cost, duration_ms, created_at
		 FROM battles
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query battles: %w", err)
	}
	defer rows.Close()

	var records []BattleRecord
	for rows.Next() {
		rec, err := scanBattle(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// StageBattles retrieves battle records for one stage, newest first.
func (s *Store) StageBattles(stageID, limit int) ([]BattleRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, stage_id, stage_name, frames, outcome, player_spawned,
		        enemy_spawned, player_lost, enemy_lost, peak_cost, duration_ms, created_at
		 FROM battles
		 WHERE stage_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		stageID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query battles: %w", err)
	}
	defer rows.Close()

	var records []BattleRecord
	for rows.Next() {
		rec, err := scanBattle(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// GetStageStats retrieves aggregated statistics for one stage.
func (s *Store) GetStageStats(stageID int) (*StageStats, error) {
	stats := &StageStats{StageID: stageID}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'player' THEN 1 ELSE 0 END), 0),
		        COALESCE(AVG(frames), 0)
		 FROM battles WHERE stage_id = ?`,
		stageID,
	).Scan(&stats.Battles, &stats.PlayerWins, &stats.AvgFrames)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stage stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM battles WHERE stage_id = ? ORDER BY id DESC LIMIT 1`,
		stageID,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTimestamp(lastPlayed)
	}

	return stats, nil
}

// ClearBattles deletes all records for the given stage.
func (s *Store) ClearBattles(stageID int) error {
	_, err := s.db.Exec("DELETE FROM battles WHERE stage_id = ?", stageID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear battles: %w", err)
	}
	return nil
}

// scanBattle reads one battles row.
func scanBattle(rows *sql.Rows) (BattleRecord, error) {
	var rec BattleRecord
	var createdAt any
	if err := rows.Scan(
		&rec.ID,
		&rec.StageID,
		&rec.StageName,
		&rec.Frames,
		&rec.Outcome,
		&rec.PlayerSpawned,
		&rec.EnemySpawned,
		&rec.PlayerLost,
		&rec.EnemyLost,
		&rec.PeakCost,
		&rec.DurationMS,
		&createdAt,
	); err != nil {
		return rec, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	rec.CreatedAt = parseTimestamp(createdAt)
	return rec, nil
}

// parseTimestamp handles the driver returning either time.Time or string.
func parseTimestamp(v any) time.Time {
	switch val := v.(type) {
	case time.Time:
		return val
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", val); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
