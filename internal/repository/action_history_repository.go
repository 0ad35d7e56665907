package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/approvals-api/internal/models"
)

type ActionHistoryRepository interface {
	EnsureSchema(ctx context.Context) error
	Create(ctx context.Context, ah *models.ActionHistory) (int64, error)
	GetByEntityID(ctx context.Context, entityID string) ([]*models.ActionHistory, error)
}

type actionHistoryRepository struct {
	db *sql.DB
}

func NewActionHistoryRepository(db *sql.DB) ActionHistoryRepository {
	return &actionHistoryRepository{db: db}
}

func (r *actionHistoryRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS action_history (
			id            BIGSERIAL PRIMARY KEY,
			actor_id      TEXT NOT NULL,
			actor_role    TEXT NOT NULL,
			resource      TEXT NOT NULL,
			action        TEXT NOT NULL,
			entity_id     TEXT NOT NULL,
			error_message TEXT NOT NULL DEFAULT '',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS action_history_entity_idx ON action_history (entity_id);
	`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *actionHistoryRepository) Create(ctx context.Context, ah *models.ActionHistory) (int64, error) {
	query := `
		INSERT INTO action_history (actor_id, actor_role, resource, action, entity_id, error_message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, ah.ActorID, ah.ActorRole, ah.Resource, ah.Action, ah.EntityID, ah.ErrorMessage).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *actionHistoryRepository) GetByEntityID(ctx context.Context, entityID string) ([]*models.ActionHistory, error) {
	query := `
		SELECT id, actor_id, actor_role, resource, action, entity_id, error_message, created_at
		FROM action_history
		WHERE entity_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, entityID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var history []*models.ActionHistory
	for rows.Next() {
		var ah models.ActionHistory
		err := rows.Scan(&ah.ID, &ah.ActorID, &ah.ActorRole, &ah.Resource, &ah.Action, &ah.EntityID, &ah.ErrorMessage, &ah.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		history = append(history, &ah)
	}
	return history, rows.Err()
}
