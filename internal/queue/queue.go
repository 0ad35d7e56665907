package queue

import (
	"github.com/maheshrc27/approvals-api/internal/service"
)

type Queue struct {
	ps service.PublicationService
}

func NewQueue(ps service.PublicationService) *Queue {
	return &Queue{ps: ps}
}

const TaskTypePublicationDue = "publication:due"

type PublicationDuePayload struct {
	PublicationID string `json:"publication_id"`
}
