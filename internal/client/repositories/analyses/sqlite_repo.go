package analyses

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/testematch/cli/internal/client/models"
	"github.com/testematch/cli/internal/common"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, items []models.Analysis) error {
	now := time.Now().Unix()
	for _, a := range items {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO analyses (id, status, plan, credits_used, is_public, share_token, result, created_at, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				status = excluded.status,
				plan = excluded.plan,
				credits_used = excluded.credits_used,
				is_public = excluded.is_public,
				share_token = excluded.share_token,
				result = excluded.result,
				fetched_at = excluded.fetched_at
		`, a.ID, string(a.Status), a.Plan, a.CreditsUsed, a.IsPublic, a.ShareToken, []byte(a.Result), a.CreatedAt.Unix(), now)
		if err != nil {
			return fmt.Errorf("failed to cache analysis %s: %w", a.ID, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, limit int) ([]models.Analysis, error) {
	query := `SELECT id, status, plan, credits_used, is_public, share_token, result, created_at FROM analyses ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached analyses: %w", err)
	}
	defer rows.Close()

	var result []models.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cached analyses: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Analysis, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, status, plan, credits_used, is_public, share_token, result, created_at FROM analyses WHERE id = ?`, id)

	a, err := scanAnalysis(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached analysis %s: %w", id, err)
	}
	return a, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM analyses`); err != nil {
		return fmt.Errorf("failed to clear analyses cache: %w", err)
	}
	return nil
}

func scanAnalysis(scan func(dest ...any) error) (*models.Analysis, error) {
	var a models.Analysis
	var status string
	var result []byte
	var createdAt int64

	if err := scan(&a.ID, &status, &a.Plan, &a.CreditsUsed, &a.IsPublic, &a.ShareToken, &result, &createdAt); err != nil {
		return nil, err
	}
	a.Status = models.AnalysisStatus(status)
	a.Result = result
	a.CreatedAt = time.Unix(createdAt, 0)
	return &a, nil
}
