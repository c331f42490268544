package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/testematch/cli/internal/client/models"
)

// Auth.

func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthPayload, error) {
	var resp models.AuthPayload
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, models.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthPayload, error) {
	var resp models.AuthPayload
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var resp models.ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	var resp models.ProfileResponse
	if err := c.do(ctx, http.MethodPut, "/auth/profile", nil, update, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Refresh runs the refresh protocol explicitly and returns the new token.
// The persisted record and auth header updates happen through the same
// hooks as an interceptor-triggered refresh.
func (c *Client) Refresh(ctx context.Context) (string, error) {
	_, gen := c.authToken()
	return c.refresh(ctx, gen)
}

// SetupPasswordInfo fetches the activation record for an account created by
// an external purchase flow.
func (c *Client) SetupPasswordInfo(ctx context.Context, userID string) (*models.User, error) {
	var resp models.ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/auth/setup-password/"+url.PathEscape(userID), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// SetupPassword completes the out-of-band activation. The response carries a
// token when the backend logs the account in directly.
func (c *Client) SetupPassword(ctx context.Context, userID string, req models.SetupPasswordRequest) (*models.AuthPayload, error) {
	var resp models.AuthPayload
	if err := c.do(ctx, http.MethodPost, "/auth/setup-password/"+url.PathEscape(userID), nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Analyses.

func (c *Client) Upload(ctx context.Context, plan string) (*models.Analysis, error) {
	var resp models.AnalysisResponse
	if err := c.do(ctx, http.MethodPost, "/upload", nil, models.UploadRequest{Plan: plan}, &resp); err != nil {
		return nil, err
	}
	return resp.Analysis, nil
}

func (c *Client) UploadStatus(ctx context.Context, id string) (*models.UploadStatus, error) {
	var resp models.UploadStatus
	if err := c.do(ctx, http.MethodGet, "/upload/status/"+url.PathEscape(id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Analysis(ctx context.Context, id string) (*models.Analysis, error) {
	var resp models.AnalysisResponse
	if err := c.do(ctx, http.MethodGet, "/analysis/"+url.PathEscape(id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Analysis, nil
}

func (c *Client) AnalysisHistory(ctx context.Context, page, limit int) (*models.HistoryResponse, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	var resp models.HistoryResponse
	if err := c.do(ctx, http.MethodGet, "/analysis", params, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SetAnalysisPublic(ctx context.Context, id string, isPublic bool) error {
	body := struct {
		IsPublic bool `json:"isPublic"`
	}{IsPublic: isPublic}
	return c.do(ctx, http.MethodPut, "/analysis/"+url.PathEscape(id)+"/public", nil, body, nil)
}

// SharedAnalysis fetches a publicly shared analysis by its share token.
// Works without authentication.
func (c *Client) SharedAnalysis(ctx context.Context, shareToken string) (*models.Analysis, error) {
	var resp models.AnalysisResponse
	if err := c.do(ctx, http.MethodGet, "/analysis/share/"+url.PathEscape(shareToken), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Analysis, nil
}

// User.

func (c *Client) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var resp models.Dashboard
	if err := c.do(ctx, http.MethodGet, "/user/dashboard", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Settings(ctx context.Context) (*models.Settings, error) {
	var resp models.Settings
	if err := c.do(ctx, http.MethodGet, "/user/settings", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateSettings(ctx context.Context, s models.Settings) (*models.Settings, error) {
	var resp models.Settings
	if err := c.do(ctx, http.MethodPut, "/user/settings", nil, s, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeactivateAccount requires the current password as confirmation.
func (c *Client) DeactivateAccount(ctx context.Context, password string) error {
	body := struct {
		Password string `json:"password"`
	}{Password: password}
	return c.do(ctx, http.MethodDelete, "/user/account", nil, body, nil)
}

// Credits.

func (c *Client) Plans(ctx context.Context) ([]models.Plan, error) {
	var resp models.PlansResponse
	if err := c.do(ctx, http.MethodGet, "/credits/plans", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Plans, nil
}

func (c *Client) Credits(ctx context.Context) (int, error) {
	var resp models.CreditsBalance
	if err := c.do(ctx, http.MethodGet, "/credits", nil, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Credits, nil
}

func (c *Client) PurchaseCredits(ctx context.Context, planID string) error {
	body := struct {
		PlanID string `json:"planId"`
	}{PlanID: planID}
	return c.do(ctx, http.MethodPost, "/credits/purchase", nil, body, nil)
}

func (c *Client) CreditsHistory(ctx context.Context, page, limit int) (*models.CreditsHistoryResponse, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	var resp models.CreditsHistoryResponse
	if err := c.do(ctx, http.MethodGet, "/credits/history", params, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
