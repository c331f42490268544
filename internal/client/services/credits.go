package services

import (
	"context"

	"github.com/testematch/cli/internal/client/models"
)

type creditsAPI interface {
	Plans(ctx context.Context) ([]models.Plan, error)
	Credits(ctx context.Context) (int, error)
	PurchaseCredits(ctx context.Context, planID string) error
	CreditsHistory(ctx context.Context, page, limit int) (*models.CreditsHistoryResponse, error)
}

type balancePatcher interface {
	UpdateCredits(credits int)
	User() *models.User
}

type CreditsService struct {
	api     creditsAPI
	session balancePatcher
}

func NewCreditsService(apiClient creditsAPI, session balancePatcher) *CreditsService {
	return &CreditsService{api: apiClient, session: session}
}

func (s *CreditsService) Plans(ctx context.Context) ([]models.Plan, error) {
	return s.api.Plans(ctx)
}

// Balance fetches the authoritative credit balance and patches the session
// copy so the prompt reflects it immediately.
func (s *CreditsService) Balance(ctx context.Context) (int, error) {
	credits, err := s.api.Credits(ctx)
	if err != nil {
		return 0, err
	}
	if s.session.User() != nil {
		s.session.UpdateCredits(credits)
	}
	return credits, nil
}

// Purchase starts a plan purchase. The credited balance lands server-side;
// callers should re-fetch the balance afterwards.
func (s *CreditsService) Purchase(ctx context.Context, planID string) error {
	return s.api.PurchaseCredits(ctx, planID)
}

func (s *CreditsService) History(ctx context.Context, page, limit int) (*models.CreditsHistoryResponse, error) {
	return s.api.CreditsHistory(ctx, page, limit)
}
