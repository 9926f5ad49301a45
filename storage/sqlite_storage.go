package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const defaultSQLitePath = "data/coverart.sqlite"

type SQLiteCache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

func NewSQLiteCache(dbPath string, ttl time.Duration) (*SQLiteCache, error) {
	if dbPath == "" {
		dbPath = defaultSQLitePath
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), os.ModePerm); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	cache := &SQLiteCache{db: db, ttl: ttl, now: time.Now}
	if err := cache.initSQLite(); err != nil {
		db.Close()
		return nil, err
	}
	return cache, nil
}

func (s *SQLiteCache) initSQLite() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS coverart (
		key TEXT PRIMARY KEY,
		url TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`)
	return err
}

func (s *SQLiteCache) Get(ctx context.Context, key string) (string, bool, error) {
	var (
		url       string
		updatedAt int64
	)
	err := s.db.QueryRowContext(ctx, `SELECT url, updated_at FROM coverart WHERE key = ?`, key).Scan(&url, &updatedAt)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if s.ttl > 0 && s.now().Sub(time.Unix(updatedAt, 0)) > s.ttl {
		return "", false, nil
	}
	return url, true, nil
}

func (s *SQLiteCache) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO coverart (key, url, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET url = excluded.url, updated_at = excluded.updated_at`,
		key, value, s.now().Unix())
	return err
}

func (s *SQLiteCache) Close() error {
	return s.db.Close()
}
