package service

import (
	"strings"
	"time"

	"github.com/maheshrc27/approvals-api/internal/models"
)

// listPayload scopes a list call to the client's own entities.
func listPayload(actor models.Actor) (any, error) {
	if actor.IsStaff() {
		return nil, nil
	}
	if actor.ClientID == "" {
		return nil, ErrForbidden
	}
	return map[string]any{"cliente_id": actor.ClientID}, nil
}

func newComment(actor models.Actor, text string, now time.Time) models.Comment {
	return models.Comment{
		Author:    actor.CommentAuthor(),
		Text:      text,
		Timestamp: now.Format(time.RFC3339),
	}
}

// titleConfirmed compares the typed confirmation to the entity title,
// ignoring surrounding whitespace only.
func titleConfirmed(title, typed string) bool {
	title = strings.TrimSpace(title)
	return title != "" && title == strings.TrimSpace(typed)
}
