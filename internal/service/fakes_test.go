package service

import (
	"context"
	"sync"
	"time"

	"github.com/maheshrc27/approvals-api/internal/bridge"
	"github.com/maheshrc27/approvals-api/internal/models"
	"github.com/maheshrc27/approvals-api/internal/repository"
	"github.com/maheshrc27/approvals-api/internal/transfer"
)

var fixedNow = time.Date(2024, 5, 10, 14, 30, 5, 0, time.UTC)

type call struct {
	Op      bridge.Operation
	Payload any
}

// fakeBridge answers every call with the data or error registered for its
// operation, recording what was sent.
type fakeBridge struct {
	mu        sync.Mutex
	calls     []call
	responses map[bridge.Operation]any
	errors    map[bridge.Operation]error
}

func newFakeBridge() *fakeBridge {
	return &fakeBridge{
		responses: map[bridge.Operation]any{},
		errors:    map[bridge.Operation]error{},
	}
}

func (f *fakeBridge) Call(_ context.Context, op bridge.Operation, payload any) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{Op: op, Payload: payload})
	if err := f.errors[op]; err != nil {
		return nil, err
	}
	return f.responses[op], nil
}

func (f *fakeBridge) callsTo(op bridge.Operation) []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []call
	for _, c := range f.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func upstream(op bridge.Operation, msg string) error {
	return &bridge.Error{Kind: bridge.KindUpstream, Op: op, Message: msg}
}

type fixture struct {
	bridge *fakeBridge
	ideas  *repository.EntityStore[models.Idea]
	pubs   *repository.EntityStore[models.Publication]
	norm   *transfer.Normalizer
	pb     *transfer.PayloadBuilder
}

func newFixture() *fixture {
	return &fixture{
		bridge: newFakeBridge(),
		ideas:  repository.NewEntityStore(func(i models.Idea) string { return i.ID }),
		pubs:   repository.NewEntityStore(func(p models.Publication) string { return p.ID }),
		norm:   transfer.NewNormalizer(time.UTC),
		pb:     transfer.NewPayloadBuilder(time.UTC, func() time.Time { return fixedNow }),
	}
}

func (f *fixture) ideaService() IdeaService {
	return NewIdeaService(f.bridge, f.norm, f.pb, f.ideas, f.pubs, NewHistoryService(nil))
}

func (f *fixture) publicationService(storage StorageService, scheduler DueScheduler) PublicationService {
	return NewPublicationService(f.bridge, f.norm, f.pb, f.pubs, storage, scheduler, NewHistoryService(nil))
}

var (
	admin  = models.Actor{ID: "u-admin", Role: models.RoleAdmin, Name: "Ana"}
	staff  = models.Actor{ID: "u-staff", Role: models.RoleStaff, Name: "Bruno"}
	client = models.Actor{ID: "u-client", Role: models.RoleClient, ClientID: "c-1"}
	other  = models.Actor{ID: "u-other", Role: models.RoleClient, ClientID: "c-2"}
)
