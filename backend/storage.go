package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type GameRecord struct {
	ID        string            `json:"id"`
	StartedAt time.Time         `json:"started_at"`
	EndedAt   time.Time         `json:"ended_at"`
	BoardSize int               `json:"board_size"`
	Black     string            `json:"black"`
	White     string            `json:"white"`
	Result    string            `json:"result"`
	Moves     []historyEntryDTO `json:"moves"`
}

// GameArchive stores finished games.
type GameArchive interface {
	SaveGame(ctx context.Context, record GameRecord) error
	RecentGames(ctx context.Context, limit int) ([]GameRecord, error)
}

// GameStore is the SQLite GameArchive.
type GameStore struct {
	db *sql.DB
}

const createGamesTable = `
CREATE TABLE IF NOT EXISTS games (
	id TEXT PRIMARY KEY,
	started_at DATETIME,
	ended_at DATETIME,
	board_size INTEGER,
	black TEXT,
	white TEXT,
	result TEXT,
	moves TEXT
);`

func OpenGameStore(path string) (*GameStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One writer at a time; sqlite serialises anyway.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(createGamesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create games table: %w", err)
	}
	return &GameStore{db: db}, nil
}

func (s *GameStore) SaveGame(ctx context.Context, record GameRecord) error {
	moves, err := json.Marshal(record.Moves)
	if err != nil {
		return fmt.Errorf("encode moves: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
	INSERT OR REPLACE INTO games (id, started_at, ended_at, board_size, black, white, result, moves)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.StartedAt.UTC(),
		record.EndedAt.UTC(),
		record.BoardSize,
		record.Black,
		record.White,
		record.Result,
		string(moves),
	)
	if err != nil {
		return fmt.Errorf("save game %s: %w", record.ID, err)
	}
	return nil
}

// RecentGames returns up to limit games, most recently finished first.
func (s *GameStore) RecentGames(ctx context.Context, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, started_at, ended_at, board_size, black, white, result, moves
	FROM games ORDER BY ended_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	records := []GameRecord{}
	for rows.Next() {
		var record GameRecord
		var moves string
		if err := rows.Scan(
			&record.ID,
			&record.StartedAt,
			&record.EndedAt,
			&record.BoardSize,
			&record.Black,
			&record.White,
			&record.Result,
			&moves,
		); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		if err := json.Unmarshal([]byte(moves), &record.Moves); err != nil {
			return nil, fmt.Errorf("decode moves of %s: %w", record.ID, err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *GameStore) Close() error {
	return s.db.Close()
}
