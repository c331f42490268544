package services

import (
	"context"

	"github.com/testematch/cli/internal/client/models"
)

type activationAPI interface {
	SetupPasswordInfo(ctx context.Context, userID string) (*models.User, error)
	SetupPassword(ctx context.Context, userID string, req models.SetupPasswordRequest) (*models.AuthPayload, error)
}

type sessionAdopter interface {
	Adopt(ctx context.Context, payload *models.AuthPayload)
}

// ActivationService completes the out-of-band account activation used after
// an external purchase flow: the user received a link with their user id and
// sets a password (and email, when the purchase did not carry a valid one).
type ActivationService struct {
	api     activationAPI
	session sessionAdopter
}

func NewActivationService(apiClient activationAPI, session sessionAdopter) *ActivationService {
	return &ActivationService{api: apiClient, session: session}
}

// Info fetches the pending account behind an activation link. An expired or
// invalid link surfaces as an API error.
func (s *ActivationService) Info(ctx context.Context, userID string) (*models.User, error) {
	return s.api.SetupPasswordInfo(ctx, userID)
}

// Complete sets the password. When the backend returns a token the account
// is logged in on the spot, exactly like a successful login.
func (s *ActivationService) Complete(ctx context.Context, userID string, req models.SetupPasswordRequest) (*models.User, error) {
	payload, err := s.api.SetupPassword(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	if payload.Token != "" && payload.User != nil {
		s.session.Adopt(ctx, payload)
	}
	return payload.User, nil
}
