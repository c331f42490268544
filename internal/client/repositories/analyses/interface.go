// Package analyses caches fetched analyses in the local client database so
// history can still be rendered when the server is unreachable. The backend
// remains the source of truth; every successful fetch overwrites the cache.
package analyses

import (
	"context"

	"github.com/testematch/cli/internal/client/models"
)

type Repository interface {
	// Upsert stores or refreshes the given analyses.
	Upsert(ctx context.Context, items []models.Analysis) error

	// List returns cached analyses, newest first, up to limit (0 = all).
	List(ctx context.Context, limit int) ([]models.Analysis, error)

	// Get returns one cached analysis or common.ErrNotFound.
	Get(ctx context.Context, id string) (*models.Analysis, error)

	// Clear wipes the cache (on logout).
	Clear(ctx context.Context) error
}
