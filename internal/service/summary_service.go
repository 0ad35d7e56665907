package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/maheshrc27/approvals-api/internal/bridge"
)

// Summary is the social_resumo payload as the bridge returned it.
type Summary struct {
	Data        any       `json:"data"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

type SummaryService interface {
	Get(ctx context.Context) (Summary, error)
	Refresh(ctx context.Context) error
}

type summaryService struct {
	bc  bridge.Client
	now func() time.Time

	mu     sync.RWMutex
	cached *Summary
}

func NewSummaryService(bc bridge.Client, now func() time.Time) SummaryService {
	if now == nil {
		now = time.Now
	}
	return &summaryService{bc: bc, now: now}
}

// Get returns the cached summary, fetching it on first use.
func (s *summaryService) Get(ctx context.Context) (Summary, error) {
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()
	if cached != nil {
		return *cached, nil
	}

	if err := s.Refresh(ctx); err != nil {
		return Summary{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.cached, nil
}

func (s *summaryService) Refresh(ctx context.Context) error {
	data, err := s.bc.Call(ctx, bridge.GetSocialSummary, nil)
	if err != nil {
		slog.Info("unable to refresh social summary", "error", err)
		return fmt.Errorf("social summary: %w", err)
	}

	s.mu.Lock()
	s.cached = &Summary{Data: data, RefreshedAt: s.now()}
	s.mu.Unlock()
	return nil
}
