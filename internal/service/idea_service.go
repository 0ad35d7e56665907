package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/maheshrc27/approvals-api/internal/bridge"
	"github.com/maheshrc27/approvals-api/internal/models"
	"github.com/maheshrc27/approvals-api/internal/repository"
	"github.com/maheshrc27/approvals-api/internal/transfer"
)

// SystemActor is used for background work such as refreshing the store
// and following up on scheduled publications.
var SystemActor = models.Actor{ID: "system", Role: models.RoleAdmin, Name: "Sistema"}

type IdeaService interface {
	List(ctx context.Context, actor models.Actor) ([]models.Idea, error)
	Create(ctx context.Context, actor models.Actor, idea models.Idea) (models.Idea, error)
	Update(ctx context.Context, actor models.Actor, id string, changes models.Idea) (models.Idea, error)
	SubmitForApproval(ctx context.Context, actor models.Actor, id string) (models.Idea, error)
	ClientApprove(ctx context.Context, actor models.Actor, id, comment string) (models.Idea, error)
	ClientRequestAdjustment(ctx context.Context, actor models.Actor, id, comment string) (models.Idea, error)
	ClientReject(ctx context.Context, actor models.Actor, id, comment string) (models.Idea, error)
	Delete(ctx context.Context, actor models.Actor, id, confirmTitle string) error
	CreatePublication(ctx context.Context, actor models.Actor, id string) (models.Publication, error)
}

type ideaService struct {
	bc      bridge.Client
	norm    *transfer.Normalizer
	pb      *transfer.PayloadBuilder
	ideas   *repository.EntityStore[models.Idea]
	pubs    *repository.EntityStore[models.Publication]
	history HistoryService
}

func NewIdeaService(
	bc bridge.Client,
	norm *transfer.Normalizer,
	pb *transfer.PayloadBuilder,
	ideas *repository.EntityStore[models.Idea],
	pubs *repository.EntityStore[models.Publication],
	history HistoryService) IdeaService {
	return &ideaService{
		bc:      bc,
		norm:    norm,
		pb:      pb,
		ideas:   ideas,
		pubs:    pubs,
		history: history,
	}
}

func (s *ideaService) List(ctx context.Context, actor models.Actor) ([]models.Idea, error) {
	payload, err := listPayload(actor)
	if err != nil {
		return nil, err
	}

	data, err := s.bc.Call(ctx, bridge.ListIdeas, payload)
	if err != nil {
		slog.Info("unable to list ideas", "error", err)
		return nil, fmt.Errorf("list ideas: %w", err)
	}

	merged := s.ideas.Merge(s.norm.IdeaList(data, models.IdeaStatusDraft))

	ideas := make([]models.Idea, 0, len(merged))
	for _, idea := range merged {
		if actor.CanView(idea.ClientID) {
			ideas = append(ideas, idea)
		}
	}
	return ideas, nil
}

func (s *ideaService) Create(ctx context.Context, actor models.Actor, idea models.Idea) (models.Idea, error) {
	if strings.TrimSpace(idea.Title) == "" {
		return models.Idea{}, invalid("title is required")
	}
	if !actor.IsStaff() {
		if actor.ClientID == "" {
			return models.Idea{}, ErrForbidden
		}
		idea.ClientID = actor.ClientID
	}
	if idea.ClientID == "" {
		return models.Idea{}, invalid("cliente_id is required")
	}

	idea.ID = ""
	idea.Title = strings.TrimSpace(idea.Title)
	idea.Platform = models.ParsePlatform(string(idea.Platform))
	idea.Format = models.ParseFormat(string(idea.Format))
	idea.Status = models.IdeaStatusDraft
	idea.NeedsReapproval = false
	idea.Comments = []models.Comment{}
	idea.CreatedAt = s.pb.Now().Format(time.RFC3339)

	payload := s.pb.IdeaUpdate(idea, transfer.IdeaExtra{})
	data, err := s.bc.Call(ctx, bridge.CreateIdea, payload)
	s.history.Record(ctx, actor, bridge.CreateIdea, "", err)
	if err != nil {
		slog.Info("unable to create idea", "error", err)
		return models.Idea{}, fmt.Errorf("create idea: %w", err)
	}

	created := s.norm.Idea(data, models.IdeaStatusDraft)
	if created.ID == "" {
		return idea, nil
	}
	created = mergeCreatedIdea(idea, created)
	s.ideas.Add(created)
	return created, nil
}

// Update applies a staff content edit. Editing an idea the client has
// already been shown flags it for re-approval.
func (s *ideaService) Update(ctx context.Context, actor models.Actor, id string, changes models.Idea) (models.Idea, error) {
	if !actor.IsStaff() {
		return models.Idea{}, ErrForbidden
	}
	if strings.TrimSpace(changes.Title) == "" {
		return models.Idea{}, invalid("title is required")
	}
	if err := s.load(ctx, id); err != nil {
		return models.Idea{}, err
	}

	changes.Title = strings.TrimSpace(changes.Title)
	changes.Platform = models.ParsePlatform(string(changes.Platform))
	changes.Format = models.ParseFormat(string(changes.Format))

	return runMutation(ctx, s.history, mutation[models.Idea]{
		store: s.ideas,
		id:    id,
		op:    bridge.UpdateIdea,
		actor: actor,
		apply: func(cur models.Idea) (models.Idea, error) {
			next := cur.WithContent(changes)
			if cur.SeenByClient() {
				next.NeedsReapproval = true
			}
			return next, nil
		},
		commit: s.send(bridge.UpdateIdea, ""),
	})
}

func (s *ideaService) SubmitForApproval(ctx context.Context, actor models.Actor, id string) (models.Idea, error) {
	if !actor.IsStaff() {
		return models.Idea{}, ErrForbidden
	}
	if err := s.load(ctx, id); err != nil {
		return models.Idea{}, err
	}

	return runMutation(ctx, s.history, mutation[models.Idea]{
		store: s.ideas,
		id:    id,
		op:    bridge.UpdateIdea,
		actor: actor,
		apply: func(cur models.Idea) (models.Idea, error) {
			if !cur.Status.CanTransitionTo(models.IdeaStatusPendingApproval) {
				return cur, ErrInvalidTransition
			}
			cur.Status = models.IdeaStatusPendingApproval
			return cur, nil
		},
		commit: s.send(bridge.UpdateIdea, ""),
	})
}

// ClientApprove moves the idea into design and then creates its
// publication. A failure creating the publication is logged; the approval
// itself stands.
func (s *ideaService) ClientApprove(ctx context.Context, actor models.Actor, id, comment string) (models.Idea, error) {
	idea, err := s.decide(ctx, actor, id, comment, bridge.ApproveIdea, models.OnClientApprove, false)
	if err != nil {
		return idea, err
	}

	if _, err := s.createPublication(ctx, actor, idea); err != nil {
		slog.Info("unable to create publication for approved idea", "idea_id", id, "error", err)
	}
	return idea, nil
}

func (s *ideaService) ClientRequestAdjustment(ctx context.Context, actor models.Actor, id, comment string) (models.Idea, error) {
	return s.decide(ctx, actor, id, comment, bridge.AdjustIdea, models.OnClientRequestAdjustment, true)
}

func (s *ideaService) ClientReject(ctx context.Context, actor models.Actor, id, comment string) (models.Idea, error) {
	return s.decide(ctx, actor, id, comment, bridge.RejectIdea, models.OnClientReject, true)
}

func (s *ideaService) decide(
	ctx context.Context,
	actor models.Actor,
	id, comment string,
	op bridge.Operation,
	target func(models.IdeaStatus) models.IdeaStatus,
	commentRequired bool) (models.Idea, error) {
	comment = strings.TrimSpace(comment)
	if commentRequired && comment == "" {
		return models.Idea{}, invalid("a comment is required")
	}
	if err := s.load(ctx, id); err != nil {
		return models.Idea{}, err
	}

	return runMutation(ctx, s.history, mutation[models.Idea]{
		store: s.ideas,
		id:    id,
		op:    op,
		actor: actor,
		apply: func(cur models.Idea) (models.Idea, error) {
			if !actor.CanView(cur.ClientID) {
				return cur, ErrNotFound
			}
			if !actor.CanDecide(cur.ClientID) {
				return cur, ErrForbidden
			}
			if cur.Status != models.IdeaStatusPendingApproval {
				return cur, ErrInvalidTransition
			}
			next := cur
			next.Status = target(cur.Status)
			next.NeedsReapproval = false
			if comment != "" {
				next = next.AppendComment(newComment(actor, comment, s.pb.Now()))
			}
			return next, nil
		},
		commit: s.send(op, comment),
	})
}

func (s *ideaService) Delete(ctx context.Context, actor models.Actor, id, confirmTitle string) error {
	if !actor.IsStaff() {
		return ErrForbidden
	}
	if err := s.load(ctx, id); err != nil {
		return err
	}

	_, err := runMutation(ctx, s.history, mutation[models.Idea]{
		store:  s.ideas,
		id:     id,
		op:     bridge.DeleteIdea,
		actor:  actor,
		remove: true,
		apply: func(cur models.Idea) (models.Idea, error) {
			if !titleConfirmed(cur.Title, confirmTitle) {
				return cur, invalid("the typed title does not match")
			}
			return cur, nil
		},
		commit: func(ctx context.Context, _, next models.Idea) (models.Idea, error) {
			_, err := s.bc.Call(ctx, bridge.DeleteIdea, transfer.Payload{"id": next.ID})
			return next, err
		},
	})
	return err
}

func (s *ideaService) CreatePublication(ctx context.Context, actor models.Actor, id string) (models.Publication, error) {
	if !actor.IsStaff() {
		return models.Publication{}, ErrForbidden
	}
	if err := s.load(ctx, id); err != nil {
		return models.Publication{}, err
	}

	idea, ok := s.ideas.Get(id)
	if !ok {
		return models.Publication{}, ErrNotFound
	}
	if idea.Status != models.IdeaStatusInDesign && idea.Status != models.IdeaStatusApproved {
		return models.Publication{}, ErrInvalidTransition
	}
	return s.createPublication(ctx, actor, idea)
}

func (s *ideaService) createPublication(ctx context.Context, actor models.Actor, idea models.Idea) (models.Publication, error) {
	// The local cache may not hold a publication created in an earlier
	// session, so look upstream before creating another one.
	listed, err := s.bc.Call(ctx, bridge.ListPublications, nil)
	if err != nil {
		slog.Info("unable to list publications", "error", err)
		return models.Publication{}, fmt.Errorf("list publications for idea %s: %w", idea.ID, err)
	}
	s.pubs.Merge(s.norm.PublicationList(listed, models.PublicationStatusInDesign))

	for _, p := range s.pubs.All() {
		if p.IdeaID == idea.ID {
			return p, nil
		}
	}

	payload := s.pb.PublicationFromIdea(idea)
	data, err := s.bc.Call(ctx, bridge.CreateFromIdea, payload)
	s.history.Record(ctx, actor, bridge.CreateFromIdea, idea.ID, err)
	if err != nil {
		return models.Publication{}, fmt.Errorf("create publication from idea %s: %w", idea.ID, err)
	}

	pub := s.norm.Publication(data, models.PublicationStatusInDesign)
	if pub.ID == "" {
		pub = s.norm.Publication(map[string]any(payload), models.PublicationStatusInDesign)
		return pub, nil
	}
	if pub.IdeaID == "" {
		pub.IdeaID = idea.ID
	}
	s.pubs.Add(pub)
	return pub, nil
}

// send builds the update payload for the idea's current status and posts
// it under op. A freshly stamped approval date is kept on the entity.
func (s *ideaService) send(op bridge.Operation, comment string) func(context.Context, models.Idea, models.Idea) (models.Idea, error) {
	return func(ctx context.Context, _, next models.Idea) (models.Idea, error) {
		payload := s.pb.IdeaUpdate(next, transfer.IdeaExtra{Status: next.Status, Comment: comment})
		if _, err := s.bc.Call(ctx, op, payload); err != nil {
			return next, err
		}
		if day, ok := payload["data_aprovacao"].(string); ok {
			next.ApprovalDate = day
		}
		return next, nil
	}
}

// load makes sure id is in the store, refreshing it once if not.
func (s *ideaService) load(ctx context.Context, id string) error {
	if _, ok := s.ideas.Get(id); ok {
		return nil
	}
	if _, err := s.List(ctx, SystemActor); err != nil {
		return err
	}
	if _, ok := s.ideas.Get(id); !ok {
		return ErrNotFound
	}
	return nil
}

func mergeCreatedIdea(sent, created models.Idea) models.Idea {
	if created.ClientID == "" {
		created.ClientID = sent.ClientID
	}
	if created.Title == "" {
		created = created.WithContent(sent)
	}
	if created.CreatedAt == "" {
		created.CreatedAt = sent.CreatedAt
	}
	return created
}
