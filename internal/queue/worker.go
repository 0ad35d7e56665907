package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
)

func (j *Queue) HandlePublicationDueTask(ctx context.Context, task *asynq.Task) error {
	var payload PublicationDuePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode %s payload: %w", TaskTypePublicationDue, asynq.SkipRetry)
	}

	pub, err := j.ps.CheckDue(ctx, payload.PublicationID)
	if err != nil {
		log.Printf("Error checking due publication %s: %v", payload.PublicationID, err)
		return err
	}

	log.Printf("Publication %s is %s", pub.ID, pub.Status)
	return nil
}
