package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Scheduler enqueues a due check for the moment a publication is scheduled.
type Scheduler struct {
	client enqueuer
}

func NewScheduler(client *asynq.Client) *Scheduler {
	return &Scheduler{client: client}
}

func (s *Scheduler) ScheduleDue(ctx context.Context, publicationID string, at time.Time) error {
	return EnqueuePublicationDue(ctx, s.client, PublicationDuePayload{PublicationID: publicationID}, at)
}

func EnqueuePublicationDue(ctx context.Context, client enqueuer, payload PublicationDuePayload, at time.Time) error {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypePublicationDue, taskPayload)

	_, err = client.EnqueueContext(ctx, task, asynq.ProcessAt(at), asynq.TaskID("due:"+payload.PublicationID+":"+at.UTC().Format(time.RFC3339)))
	if err != nil {
		return err
	}

	log.Printf("Task scheduled: %+v at %s", payload, at.Format(time.RFC3339))
	return nil
}
