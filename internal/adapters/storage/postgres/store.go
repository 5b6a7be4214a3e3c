package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"horse-control/internal/ports/store"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Store persiste cada colección como un documento JSONB.
// Pensado para despliegues donde el archivo sqlite local no alcanza.
type Store struct {
	db *sql.DB
}

// Open abre una conexión pool a Postgres usando pgx (database/sql)
// y crea la tabla de documentos si no existe.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables (ajustable luego)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS documents (
		key TEXT PRIMARY KEY,
		doc JSONB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create documents table: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Load(ctx context.Context, key string, v any) error {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM documents WHERE key = $1`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return store.ErrNoDocument
	}
	if err != nil {
		return fmt.Errorf("select document %q: %w", key, err)
	}
	return json.Unmarshal(raw, v)
}

func (s *Store) Save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (key, doc) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc
	`, key, raw)
	if err != nil {
		return fmt.Errorf("save document %q: %w", key, err)
	}
	return nil
}
