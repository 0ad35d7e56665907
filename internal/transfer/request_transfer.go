package transfer

import "github.com/maheshrc27/approvals-api/internal/models"

type DecisionRequest struct {
	Comment string `json:"comentario"`
	Rating  *int   `json:"nota"`
}

type DeleteRequest struct {
	ConfirmTitle string `json:"confirm_title"`
}

type ScheduleRequest struct {
	ScheduledAt string                   `json:"data_agendada"`
	Checklist   models.ScheduleChecklist `json:"checklist"`
}

type PublishRequest struct {
	Link string `json:"link_publicado"`
}

type RemoveMediaRequest struct {
	Path string `json:"path"`
}

// UploadedFile is what the storage upload returns per file: a path
// relative to the bucket, never a full URL.
type UploadedFile struct {
	Path string `json:"path"`
}
