package service

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/maheshrc27/approvals-api/internal/bridge"
	"github.com/maheshrc27/approvals-api/internal/models"
	"github.com/maheshrc27/approvals-api/internal/repository"
	"github.com/maheshrc27/approvals-api/internal/transfer"
)

// DueScheduler arranges for CheckDue to run once a publication's
// scheduled time has passed.
type DueScheduler interface {
	ScheduleDue(ctx context.Context, publicationID string, at time.Time) error
}

type PublicationService interface {
	List(ctx context.Context, actor models.Actor) ([]models.Publication, error)
	Update(ctx context.Context, actor models.Actor, id string, changes models.Publication) (models.Publication, error)
	SubmitForApproval(ctx context.Context, actor models.Actor, id string) (models.Publication, error)
	Approve(ctx context.Context, actor models.Actor, id, comment string, rating *int) (models.Publication, error)
	Reject(ctx context.Context, actor models.Actor, id, comment string) (models.Publication, error)
	Schedule(ctx context.Context, actor models.Actor, id, scheduledAt string, checklist models.ScheduleChecklist) (models.Publication, error)
	Publish(ctx context.Context, actor models.Actor, id, link string) (models.Publication, error)
	Delete(ctx context.Context, actor models.Actor, id, confirmTitle string) error
	AttachMedia(ctx context.Context, actor models.Actor, id string, files []*multipart.FileHeader) (models.Publication, error)
	RemoveMedia(ctx context.Context, actor models.Actor, id, path string) (models.Publication, error)
	CheckDue(ctx context.Context, id string) (models.Publication, error)
}

type publicationService struct {
	bc        bridge.Client
	norm      *transfer.Normalizer
	pb        *transfer.PayloadBuilder
	pubs      *repository.EntityStore[models.Publication]
	storage   StorageService
	scheduler DueScheduler
	history   HistoryService
}

func NewPublicationService(
	bc bridge.Client,
	norm *transfer.Normalizer,
	pb *transfer.PayloadBuilder,
	pubs *repository.EntityStore[models.Publication],
	storage StorageService,
	scheduler DueScheduler,
	history HistoryService) PublicationService {
	return &publicationService{
		bc:        bc,
		norm:      norm,
		pb:        pb,
		pubs:      pubs,
		storage:   storage,
		scheduler: scheduler,
		history:   history,
	}
}

func (s *publicationService) List(ctx context.Context, actor models.Actor) ([]models.Publication, error) {
	payload, err := listPayload(actor)
	if err != nil {
		return nil, err
	}

	data, err := s.bc.Call(ctx, bridge.ListPublications, payload)
	if err != nil {
		slog.Info("unable to list publications", "error", err)
		return nil, fmt.Errorf("list publications: %w", err)
	}

	merged := s.pubs.Merge(s.norm.PublicationList(data, models.PublicationStatusInDesign))

	pubs := make([]models.Publication, 0, len(merged))
	for _, p := range merged {
		if actor.CanView(p.ClientID) {
			pubs = append(pubs, p)
		}
	}
	return pubs, nil
}

func (s *publicationService) Update(ctx context.Context, actor models.Actor, id string, changes models.Publication) (models.Publication, error) {
	if !actor.IsStaff() {
		return models.Publication{}, ErrForbidden
	}
	if strings.TrimSpace(changes.Title) == "" {
		return models.Publication{}, invalid("title is required")
	}
	if len(changes.MediaPaths) > models.MaxMediaPaths {
		return models.Publication{}, invalid(fmt.Sprintf("a publication holds at most %d media files", models.MaxMediaPaths))
	}
	if err := s.load(ctx, id); err != nil {
		return models.Publication{}, err
	}

	changes.Title = strings.TrimSpace(changes.Title)
	changes.Platform = models.ParsePlatform(string(changes.Platform))
	changes.Format = models.ParseFormat(string(changes.Format))

	return runMutation(ctx, s.history, mutation[models.Publication]{
		store: s.pubs,
		id:    id,
		op:    bridge.UpdatePublication,
		actor: actor,
		apply: func(cur models.Publication) (models.Publication, error) {
			next := cur.WithContent(changes)
			if changes.MediaPaths != nil {
				next = next.SetMedia(changes.MediaPaths, changes.CoverPath)
			} else if changes.CoverPath != "" {
				next = next.SetMedia(next.MediaPaths, changes.CoverPath)
			}
			return next, nil
		},
		commit: s.send(bridge.UpdatePublication, transfer.PublicationExtra{}),
	})
}

func (s *publicationService) SubmitForApproval(ctx context.Context, actor models.Actor, id string) (models.Publication, error) {
	return s.transition(ctx, actor, id, models.PublicationStatusPendingApproval)
}

func (s *publicationService) transition(ctx context.Context, actor models.Actor, id string, target models.PublicationStatus) (models.Publication, error) {
	if !actor.IsStaff() {
		return models.Publication{}, ErrForbidden
	}
	if err := s.load(ctx, id); err != nil {
		return models.Publication{}, err
	}

	return runMutation(ctx, s.history, mutation[models.Publication]{
		store: s.pubs,
		id:    id,
		op:    bridge.UpdatePublication,
		actor: actor,
		apply: func(cur models.Publication) (models.Publication, error) {
			if !cur.Status.CanTransitionTo(target) {
				return cur, ErrInvalidTransition
			}
			cur.Status = target
			return cur, nil
		},
		commit: s.send(bridge.UpdatePublication, transfer.PublicationExtra{}),
	})
}

func (s *publicationService) Approve(ctx context.Context, actor models.Actor, id, comment string, rating *int) (models.Publication, error) {
	if rating != nil && (*rating < 1 || *rating > 10) {
		return models.Publication{}, invalid("rating must be between 1 and 10")
	}
	return s.decide(ctx, actor, id, comment, rating, bridge.ApprovePublication, models.OnApprove)
}

func (s *publicationService) Reject(ctx context.Context, actor models.Actor, id, comment string) (models.Publication, error) {
	if strings.TrimSpace(comment) == "" {
		return models.Publication{}, invalid("a comment is required")
	}
	return s.decide(ctx, actor, id, comment, nil, bridge.RejectPublication, models.OnReject)
}

func (s *publicationService) decide(
	ctx context.Context,
	actor models.Actor,
	id, comment string,
	rating *int,
	op bridge.Operation,
	target func(models.PublicationStatus) models.PublicationStatus) (models.Publication, error) {
	comment = strings.TrimSpace(comment)
	if err := s.load(ctx, id); err != nil {
		return models.Publication{}, err
	}

	return runMutation(ctx, s.history, mutation[models.Publication]{
		store: s.pubs,
		id:    id,
		op:    op,
		actor: actor,
		apply: func(cur models.Publication) (models.Publication, error) {
			if !actor.CanView(cur.ClientID) {
				return cur, ErrNotFound
			}
			if !actor.CanDecide(cur.ClientID) {
				return cur, ErrForbidden
			}
			if cur.Status != models.PublicationStatusPendingApproval {
				return cur, ErrInvalidTransition
			}
			next := cur
			next.Status = target(cur.Status)
			if rating != nil {
				r := *rating
				next.Rating = &r
			}
			if comment != "" {
				next = next.AppendComment(newComment(actor, comment, s.pb.Now()))
			}
			return next, nil
		},
		commit: s.send(op, transfer.PublicationExtra{Comment: comment, Rating: rating}),
	})
}

func (s *publicationService) Schedule(ctx context.Context, actor models.Actor, id, scheduledAt string, checklist models.ScheduleChecklist) (models.Publication, error) {
	if !actor.IsStaff() {
		return models.Publication{}, ErrForbidden
	}
	if !checklist.Complete() {
		return models.Publication{}, invalid("confirm media, caption and date before scheduling")
	}
	at, err := dateparse.ParseIn(strings.TrimSpace(scheduledAt), s.norm.Location())
	if err != nil {
		return models.Publication{}, invalid("data_agendada is not a valid date")
	}
	if err := s.load(ctx, id); err != nil {
		return models.Publication{}, err
	}

	pub, err := runMutation(ctx, s.history, mutation[models.Publication]{
		store: s.pubs,
		id:    id,
		op:    bridge.UpdatePublication,
		actor: actor,
		apply: func(cur models.Publication) (models.Publication, error) {
			if !cur.Status.CanTransitionTo(models.PublicationStatusScheduled) {
				return cur, ErrInvalidTransition
			}
			if len(cur.MediaPaths) == 0 {
				return cur, invalid("attach media before scheduling")
			}
			status, ok := models.OnSchedule(cur.Status, checklist)
			if !ok {
				return cur, invalid("confirm media, caption and date before scheduling")
			}
			cur.Status = status
			cur.ScheduledAt = at.In(s.norm.Location()).Format(time.RFC3339)
			return cur, nil
		},
		commit: s.send(bridge.UpdatePublication, transfer.PublicationExtra{
			Fields: map[string]any{"checklist": checklist},
		}),
	})
	if err != nil {
		return pub, err
	}

	if s.scheduler != nil {
		if err := s.scheduler.ScheduleDue(ctx, pub.ID, at); err != nil {
			slog.Info("unable to schedule due check", "publication_id", pub.ID, "error", err)
		}
	}
	return pub, nil
}

// Publish marks the publication as posted, stamping the posted time when
// none is known yet.
func (s *publicationService) Publish(ctx context.Context, actor models.Actor, id, link string) (models.Publication, error) {
	if !actor.IsStaff() {
		return models.Publication{}, ErrForbidden
	}
	link = strings.TrimSpace(link)
	if err := s.load(ctx, id); err != nil {
		return models.Publication{}, err
	}

	return runMutation(ctx, s.history, mutation[models.Publication]{
		store: s.pubs,
		id:    id,
		op:    bridge.UpdatePublication,
		actor: actor,
		apply: func(cur models.Publication) (models.Publication, error) {
			if !cur.Status.CanTransitionTo(models.PublicationStatusPublished) {
				return cur, ErrInvalidTransition
			}
			cur.Status = models.OnPublish(cur.Status)
			if cur.PostedAt == "" {
				cur.PostedAt = s.pb.Now().Format(time.RFC3339)
			}
			if link != "" {
				cur.PublishedLink = link
			}
			return cur, nil
		},
		commit: s.send(bridge.UpdatePublication, transfer.PublicationExtra{}),
	})
}

func (s *publicationService) Delete(ctx context.Context, actor models.Actor, id, confirmTitle string) error {
	if !actor.IsStaff() {
		return ErrForbidden
	}
	if err := s.load(ctx, id); err != nil {
		return err
	}

	_, err := runMutation(ctx, s.history, mutation[models.Publication]{
		store:  s.pubs,
		id:     id,
		op:     bridge.DeletePublication,
		actor:  actor,
		remove: true,
		apply: func(cur models.Publication) (models.Publication, error) {
			if !titleConfirmed(cur.Title, confirmTitle) {
				return cur, invalid("the typed title does not match")
			}
			return cur, nil
		},
		commit: func(ctx context.Context, _, next models.Publication) (models.Publication, error) {
			_, err := s.bc.Call(ctx, bridge.DeletePublication, transfer.Payload{"id": next.ID})
			return next, err
		},
	})
	return err
}

// AttachMedia uploads files under publicacoes/{id} and appends the
// returned paths to the publication.
func (s *publicationService) AttachMedia(ctx context.Context, actor models.Actor, id string, files []*multipart.FileHeader) (models.Publication, error) {
	if !actor.IsStaff() {
		return models.Publication{}, ErrForbidden
	}
	if len(files) == 0 {
		return models.Publication{}, invalid("no files were sent")
	}
	if err := s.load(ctx, id); err != nil {
		return models.Publication{}, err
	}

	return runMutation(ctx, s.history, mutation[models.Publication]{
		store: s.pubs,
		id:    id,
		op:    bridge.UpdatePublication,
		actor: actor,
		apply: func(cur models.Publication) (models.Publication, error) {
			if len(cur.MediaPaths)+len(files) > models.MaxMediaPaths {
				return cur, invalid(fmt.Sprintf("a publication holds at most %d media files", models.MaxMediaPaths))
			}
			return cur, nil
		},
		commit: func(ctx context.Context, current, next models.Publication) (models.Publication, error) {
			uploaded, err := s.storage.Upload(ctx, "publicacoes/"+next.ID, files)
			if err != nil {
				return next, err
			}
			added := make([]string, 0, len(uploaded))
			for _, f := range uploaded {
				added = append(added, f.Path)
			}
			next = next.SetMedia(models.MergeMediaPaths(next.MediaPaths, added), next.CoverPath)
			confirmed, err := s.send(bridge.UpdatePublication, transfer.PublicationExtra{})(ctx, current, next)
			if err != nil {
				if rmErr := s.storage.Remove(ctx, added); rmErr != nil {
					slog.Info("orphaned media objects",
						"publication_id", next.ID,
						"paths", added,
						"error", rmErr)
				}
				return next, err
			}
			return confirmed, nil
		},
	})
}

func (s *publicationService) RemoveMedia(ctx context.Context, actor models.Actor, id, path string) (models.Publication, error) {
	if !actor.IsStaff() {
		return models.Publication{}, ErrForbidden
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return models.Publication{}, invalid("path is required")
	}
	if err := s.load(ctx, id); err != nil {
		return models.Publication{}, err
	}

	return runMutation(ctx, s.history, mutation[models.Publication]{
		store: s.pubs,
		id:    id,
		op:    bridge.DeletePublicationMedia,
		actor: actor,
		apply: func(cur models.Publication) (models.Publication, error) {
			if !cur.HasMedia(path) {
				return cur, invalid("the publication has no such media")
			}
			kept := make([]string, 0, len(cur.MediaPaths))
			for _, p := range cur.MediaPaths {
				if p != path {
					kept = append(kept, p)
				}
			}
			return cur.SetMedia(kept, cur.CoverPath), nil
		},
		commit: s.send(bridge.DeletePublicationMedia, transfer.PublicationExtra{
			Fields: map[string]any{"midia_removida": path},
		}),
	})
}

// CheckDue refreshes a scheduled publication once its time has passed and
// reports it when the backend has not marked it as published yet.
func (s *publicationService) CheckDue(ctx context.Context, id string) (models.Publication, error) {
	if _, err := s.List(ctx, SystemActor); err != nil {
		return models.Publication{}, err
	}

	pub, ok := s.pubs.Get(id)
	if !ok {
		return models.Publication{}, ErrNotFound
	}
	if pub.Status == models.PublicationStatusScheduled {
		slog.Warn("scheduled publication is past due",
			"publication_id", pub.ID,
			"scheduled_at", pub.ScheduledAt)
	}
	return pub, nil
}

func (s *publicationService) send(op bridge.Operation, extra transfer.PublicationExtra) func(context.Context, models.Publication, models.Publication) (models.Publication, error) {
	return func(ctx context.Context, current, next models.Publication) (models.Publication, error) {
		// The builder sees the stored status so it can tell a transition
		// from an edit.
		base := next
		base.Status = current.Status
		extra.Status = next.Status
		payload := s.pb.PublicationUpdate(base, extra)
		if _, err := s.bc.Call(ctx, op, payload); err != nil {
			return next, err
		}
		return next, nil
	}
}

func (s *publicationService) load(ctx context.Context, id string) error {
	if _, ok := s.pubs.Get(id); ok {
		return nil
	}
	if _, err := s.List(ctx, SystemActor); err != nil {
		return err
	}
	if _, ok := s.pubs.Get(id); !ok {
		return ErrNotFound
	}
	return nil
}
