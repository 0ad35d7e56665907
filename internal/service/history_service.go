package service

import (
	"context"
	"log/slog"

	"github.com/maheshrc27/approvals-api/internal/bridge"
	"github.com/maheshrc27/approvals-api/internal/models"
	"github.com/maheshrc27/approvals-api/internal/repository"
)

type HistoryService interface {
	Record(ctx context.Context, actor models.Actor, op bridge.Operation, entityID string, err error)
	List(ctx context.Context, actor models.Actor, entityID string) ([]*models.ActionHistory, error)
}

type historyService struct {
	ah repository.ActionHistoryRepository
}

// NewHistoryService records into ah. A nil repository turns recording into
// a no-op and listing into an empty result.
func NewHistoryService(ah repository.ActionHistoryRepository) HistoryService {
	return &historyService{ah: ah}
}

func (s *historyService) Record(ctx context.Context, actor models.Actor, op bridge.Operation, entityID string, err error) {
	if s.ah == nil {
		return
	}

	entry := models.ActionHistory{
		ActorID:   actor.ID,
		ActorRole: string(actor.Role),
		Resource:  string(op.Resource),
		Action:    string(op.Action),
		EntityID:  entityID,
	}
	if err != nil {
		entry.ErrorMessage = err.Error()
	}

	if _, err := s.ah.Create(ctx, &entry); err != nil {
		slog.Info("unable to save action history", "op", op.String(), "entity_id", entityID, "error", err)
	}
}

func (s *historyService) List(ctx context.Context, actor models.Actor, entityID string) ([]*models.ActionHistory, error) {
	if !actor.IsStaff() {
		return nil, ErrForbidden
	}
	if entityID == "" {
		return nil, invalid("entity_id is required")
	}
	if s.ah == nil {
		return []*models.ActionHistory{}, nil
	}
	return s.ah.GetByEntityID(ctx, entityID)
}
