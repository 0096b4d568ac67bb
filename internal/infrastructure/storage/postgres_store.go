package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore дублирует снимки в таблицу game_snapshots.
type PostgresStore struct {
	db       *sql.DB
	gameFile string
}

// NewPostgresStore подключается к базе и создает схему при необходимости.
// gameFile отличает снимки разных игр в одной таблице.
func NewPostgresStore(ctx context.Context, dsn, gameFile string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &PostgresStore{db: db, gameFile: gameFile}
	if err := store.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

func (s *PostgresStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS game_snapshots (
		id SERIAL PRIMARY KEY,
		game_file TEXT NOT NULL,
		turn INTEGER NOT NULL,
		body TEXT NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS game_snapshots_game_file_idx
		ON game_snapshots (game_file, created_at DESC);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// SaveSnapshot добавляет снимок. Старые снимки не удаляются.
func (s *PostgresStore) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	query := `INSERT INTO game_snapshots (game_file, turn, body, created_at) VALUES ($1, $2, $3, $4)`
	body := strings.Join(snap.Lines, "\n")
	if _, err := s.db.ExecContext(ctx, query, s.gameFile, snap.Turn, body, snap.CreatedAt); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot возвращает последний снимок этой игры.
// sql.ErrNoRows — снимков еще нет.
func (s *PostgresStore) LatestSnapshot(ctx context.Context) (Snapshot, error) {
	query := `SELECT turn, body, created_at FROM game_snapshots
		WHERE game_file = $1 ORDER BY created_at DESC, id DESC LIMIT 1`
	var (
		snap Snapshot
		body string
	)
	err := s.db.QueryRowContext(ctx, query, s.gameFile).Scan(&snap.Turn, &body, &snap.CreatedAt)
	if err != nil {
		return Snapshot{}, err
	}
	snap.Lines = strings.Split(body, "\n")
	return snap, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
