// Package services contains the application services of the TesteMatch
// client: thin orchestration between the API client, the session, and the
// local cache. The CLI talks to these, never to the API client directly.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/testematch/cli/internal/client/models"
	"github.com/testematch/cli/internal/client/repositories/analyses"
	"github.com/testematch/cli/internal/common"
)

// Analysis plans and their credit cost.
const (
	PlanBasic    = "basic"
	PlanComplete = "complete"
)

// PlanCost returns how many credits a plan consumes. Unknown plans cost the
// basic rate; the backend is the final arbiter.
func PlanCost(plan string) int {
	if plan == PlanComplete {
		return 3
	}
	return 1
}

type analysisAPI interface {
	Upload(ctx context.Context, plan string) (*models.Analysis, error)
	UploadStatus(ctx context.Context, id string) (*models.UploadStatus, error)
	Analysis(ctx context.Context, id string) (*models.Analysis, error)
	AnalysisHistory(ctx context.Context, page, limit int) (*models.HistoryResponse, error)
	SetAnalysisPublic(ctx context.Context, id string, isPublic bool) error
	SharedAnalysis(ctx context.Context, shareToken string) (*models.Analysis, error)
}

// creditsGate is the slice of the session the analysis service needs: the
// pre-submit credit check and the optimistic local patch afterwards.
type creditsGate interface {
	HasCredits(required int) bool
	User() *models.User
	UpdateCredits(credits int)
}

type AnalysisService struct {
	api     analysisAPI
	session creditsGate
	cache   analyses.Repository
}

func NewAnalysisService(apiClient analysisAPI, session creditsGate, cache analyses.Repository) *AnalysisService {
	return &AnalysisService{api: apiClient, session: session, cache: cache}
}

// Submit starts an analysis on the given plan. The credit balance is checked
// locally first so the user gets immediate feedback; on acceptance the local
// balance is patched down by the plan cost. The authoritative balance
// arrives with the next profile or dashboard fetch.
func (s *AnalysisService) Submit(ctx context.Context, plan string) (*models.Analysis, error) {
	cost := PlanCost(plan)
	if !s.session.HasCredits(cost) {
		return nil, common.ErrInsufficientCredits
	}

	analysis, err := s.api.Upload(ctx, plan)
	if err != nil {
		return nil, err
	}

	if user := s.session.User(); user != nil {
		s.session.UpdateCredits(user.Credits - cost)
	}

	if analysis != nil {
		_ = s.cache.Upsert(ctx, []models.Analysis{*analysis})
	}
	return analysis, nil
}

func (s *AnalysisService) Status(ctx context.Context, id string) (*models.UploadStatus, error) {
	return s.api.UploadStatus(ctx, id)
}

// Get fetches one analysis, falling back to the local cache when the server
// is unreachable.
func (s *AnalysisService) Get(ctx context.Context, id string) (*models.Analysis, error) {
	analysis, err := s.api.Analysis(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrUnavailable) {
			return s.cache.Get(ctx, id)
		}
		return nil, err
	}

	_ = s.cache.Upsert(ctx, []models.Analysis{*analysis})
	return analysis, nil
}

// History returns one page of analyses. When the server is unreachable the
// cached copy is returned instead and fromCache is true.
func (s *AnalysisService) History(ctx context.Context, page, limit int) (*models.HistoryResponse, bool, error) {
	resp, err := s.api.AnalysisHistory(ctx, page, limit)
	if err != nil {
		if errors.Is(err, common.ErrUnavailable) {
			cached, cacheErr := s.cache.List(ctx, limit)
			if cacheErr != nil {
				return nil, false, fmt.Errorf("history unavailable: %w", err)
			}
			return &models.HistoryResponse{Analyses: cached}, true, nil
		}
		return nil, false, err
	}

	_ = s.cache.Upsert(ctx, resp.Analyses)
	return resp, false, nil
}

// SetPublic toggles share visibility for one analysis.
func (s *AnalysisService) SetPublic(ctx context.Context, id string, isPublic bool) error {
	return s.api.SetAnalysisPublic(ctx, id, isPublic)
}

// Shared fetches a publicly shared analysis by share token; no auth needed.
func (s *AnalysisService) Shared(ctx context.Context, shareToken string) (*models.Analysis, error) {
	return s.api.SharedAnalysis(ctx, shareToken)
}

// ClearCache wipes locally cached analyses, e.g. on logout.
func (s *AnalysisService) ClearCache(ctx context.Context) error {
	return s.cache.Clear(ctx)
}
