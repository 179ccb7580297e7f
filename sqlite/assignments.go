package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"maps"
	"slices"
	"time"

	"github.com/fwojciec/phylotext"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ phylotext.AssignmentCache = (*AssignmentCache)(nil)

// ClusterRun describes one stored clustering result.
type ClusterRun struct {
	ID          string
	Fingerprint string
	K           int
	Silhouette  *float64
	CreatedAt   time.Time
}

// AssignmentCache implements phylotext.AssignmentCache using SQLite.
type AssignmentCache struct {
	db *DB
}

// NewAssignmentCache creates a new AssignmentCache.
func NewAssignmentCache(db *DB) *AssignmentCache {
	return &AssignmentCache{db: db}
}

// FindAssignment returns the assignment stored under key.
func (c *AssignmentCache) FindAssignment(ctx context.Context, key string) (*phylotext.ClusterAssignment, error) {
	run, err := c.FindRun(ctx, key)
	if err != nil {
		return nil, err
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT idx, cluster FROM cluster_assignments WHERE run_id = ?
	`, run.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	a := &phylotext.ClusterAssignment{K: run.K, Clusters: make(map[int]int), Silhouette: run.Silhouette}
	for rows.Next() {
		var idx, cluster int
		if err := rows.Scan(&idx, &cluster); err != nil {
			return nil, err
		}
		a.Clusters[idx] = cluster
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return a, nil
}

// FindRun returns the metadata of the run stored under key.
func (c *AssignmentCache) FindRun(ctx context.Context, key string) (*ClusterRun, error) {
	run := ClusterRun{Fingerprint: key}
	var silhouette sql.NullFloat64
	var createdAt string

	err := c.db.QueryRowContext(ctx, `
		SELECT id, k, silhouette, created_at FROM cluster_runs WHERE fingerprint = ?
	`, key).Scan(&run.ID, &run.K, &silhouette, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, phylotext.Errorf(phylotext.ENOTFOUND, "no assignment cached for %s", key)
	}
	if err != nil {
		return nil, err
	}

	if silhouette.Valid {
		run.Silhouette = &silhouette.Float64
	}
	if run.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &run, nil
}

// SaveAssignment replaces the assignment stored under key in one
// transaction. Every save gets a new run id.
func (c *AssignmentCache) SaveAssignment(ctx context.Context, key string, a *phylotext.ClusterAssignment) error {
	if key == "" {
		return phylotext.Errorf(phylotext.EINVALID, "fingerprint required")
	}

	var silhouette sql.NullFloat64
	if a.Silhouette != nil {
		silhouette = sql.NullFloat64{Float64: *a.Silhouette, Valid: true}
	}
	runID := uuid.New().String()

	tx, err := c.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cluster_runs WHERE fingerprint = ?`, key); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO cluster_runs (id, fingerprint, k, silhouette, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, runID, key, a.K, silhouette, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO cluster_assignments (run_id, idx, cluster) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, idx := range slices.Sorted(maps.Keys(a.Clusters)) {
		if _, err := stmt.ExecContext(ctx, runID, idx, a.Clusters[idx]); err != nil {
			return err
		}
	}
	return tx.Commit()
}
