package services

import (
	"context"

	"github.com/testematch/cli/internal/client/models"
	"github.com/testematch/cli/internal/client/repositories/analyses"
)

type userAPI interface {
	Dashboard(ctx context.Context) (*models.Dashboard, error)
	Settings(ctx context.Context) (*models.Settings, error)
	UpdateSettings(ctx context.Context, s models.Settings) (*models.Settings, error)
	DeactivateAccount(ctx context.Context, password string) error
}

type UserService struct {
	api     userAPI
	session balancePatcher
	cache   analyses.Repository
}

func NewUserService(apiClient userAPI, session balancePatcher, cache analyses.Repository) *UserService {
	return &UserService{api: apiClient, session: session, cache: cache}
}

// Dashboard fetches the aggregate stats. Recent analyses ride along into the
// local cache, and the embedded credit balance from recent activity is NOT
// applied here: the user record fetched via the profile endpoint stays the
// single authority for credits.
func (s *UserService) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	dash, err := s.api.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Upsert(ctx, dash.RecentAnalyses)
	return dash, nil
}

func (s *UserService) Settings(ctx context.Context) (*models.Settings, error) {
	return s.api.Settings(ctx)
}

func (s *UserService) UpdateSettings(ctx context.Context, settings models.Settings) (*models.Settings, error) {
	return s.api.UpdateSettings(ctx, settings)
}

// Deactivate deactivates the account after password confirmation. The caller
// is responsible for logging the session out on success.
func (s *UserService) Deactivate(ctx context.Context, password string) error {
	return s.api.DeactivateAccount(ctx, password)
}
