// Package postgres backs the document store with a single JSONB documents
// table, keeping the loosely-linked collection model of the upstream store.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agora/backend/internal/docstore"
)

type Store struct {
	pool *pgxpool.Pool
}

// NewStore returns a Postgres-backed docstore.Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	const query = `SELECT fields FROM documents WHERE collection = $1 AND id = $2`

	var raw []byte
	if err := s.pool.QueryRow(ctx, query, collection, id).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return docstore.Document{}, docstore.ErrNotFound
		}
		return docstore.Document{}, err
	}
	return decodeDocument(id, raw)
}

func (s *Store) List(ctx context.Context, collection string, q docstore.Query) ([]docstore.Document, error) {
	query := `SELECT id, fields FROM documents WHERE collection = $1`
	args := []interface{}{collection}

	if q.Field != "" {
		encoded, err := json.Marshal(encodeValue(q.Equals))
		if err != nil {
			return nil, err
		}
		query += ` AND fields -> $2 = $3::jsonb`
		args = append(args, q.Field, encoded)
	}
	query += ` ORDER BY id`
	if q.Limit > 0 {
		query += ` LIMIT ` + strconv.Itoa(q.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []docstore.Document
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		doc, err := decodeDocument(id, raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (s *Store) Put(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	const query = `
	INSERT INTO documents (collection, id, fields)
	VALUES ($1, $2, $3)
	ON CONFLICT (collection, id) DO UPDATE SET fields = EXCLUDED.fields, updated_at = NOW()
	`

	raw, err := encodeFields(fields)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, query, collection, id, raw)
	return err
}

var _ docstore.Store = (*Store)(nil)
