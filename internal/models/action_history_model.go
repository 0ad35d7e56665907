package models

import "time"

// ActionHistory records every mutation sent to the bridge and its outcome.
type ActionHistory struct {
	ID           int64     `db:"id" json:"id"`
	ActorID      string    `db:"actor_id" json:"actor_id"`
	ActorRole    string    `db:"actor_role" json:"actor_role"`
	Resource     string    `db:"resource" json:"resource"`
	Action       string    `db:"action" json:"action"`
	EntityID     string    `db:"entity_id" json:"entity_id"`
	ErrorMessage string    `db:"error_message" json:"error_message"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
