package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"maps"
	"slices"
	"time"

	"github.com/fwojciec/phylotext"
)

// Compile-time interface verification.
var _ phylotext.EmbeddingCache = (*EmbeddingCache)(nil)

// EmbeddingCache implements phylotext.EmbeddingCache using SQLite.
type EmbeddingCache struct {
	db *DB
}

// NewEmbeddingCache creates a new EmbeddingCache.
func NewEmbeddingCache(db *DB) *EmbeddingCache {
	return &EmbeddingCache{db: db}
}

// FindEmbeddings returns the vectors stored under key.
func (c *EmbeddingCache) FindEmbeddings(ctx context.Context, key string) (map[int][]float32, error) {
	var count int
	err := c.db.QueryRowContext(ctx, `
		SELECT count FROM embedding_sets WHERE fingerprint = ?
	`, key).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, phylotext.Errorf(phylotext.ENOTFOUND, "no embeddings cached for %s", key)
	}
	if err != nil {
		return nil, err
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT idx, vector FROM embeddings WHERE fingerprint = ?
	`, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vectors := make(map[int][]float32, count)
	for rows.Next() {
		var idx int
		var blob []byte
		if err := rows.Scan(&idx, &blob); err != nil {
			return nil, err
		}
		v, err := decodeVector(blob)
		if err != nil {
			return nil, err
		}
		vectors[idx] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(vectors) != count {
		return nil, phylotext.Errorf(phylotext.EINTERNAL, "embedding set %s holds %d of %d vectors", key, len(vectors), count)
	}
	return vectors, nil
}

// SaveEmbeddings replaces the vectors stored under key in one transaction.
func (c *EmbeddingCache) SaveEmbeddings(ctx context.Context, key string, vectors map[int][]float32) error {
	if key == "" {
		return phylotext.Errorf(phylotext.EINVALID, "fingerprint required")
	}

	indices := slices.Sorted(maps.Keys(vectors))
	dims := 0
	if len(indices) > 0 {
		dims = len(vectors[indices[0]])
	}

	tx, err := c.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM embedding_sets WHERE fingerprint = ?`, key); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO embedding_sets (fingerprint, count, dimensions, created_at)
		VALUES (?, ?, ?, ?)
	`, key, len(indices), dims, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO embeddings (fingerprint, idx, vector) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, idx := range indices {
		if _, err := stmt.ExecContext(ctx, key, idx, encodeVector(vectors[idx])); err != nil {
			return err
		}
	}
	return tx.Commit()
}
