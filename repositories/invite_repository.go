package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/hockey-club-system/models"
)

var ErrInviteNotFound = errors.New("invite not found")

type InviteRepository interface {
	Create(ctx context.Context, invite *models.Invite) error
	GetByToken(ctx context.Context, token string) (*models.Invite, error)
	Delete(ctx context.Context, id int) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type postgresInviteRepository struct {
	db *sql.DB
}

func NewPostgresInviteRepository(db *sql.DB) InviteRepository {
	return &postgresInviteRepository{db: db}
}

func (r *postgresInviteRepository) Create(ctx context.Context, invite *models.Invite) error {
	query := `
		INSERT INTO invites (team_id, token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query,
		invite.TeamID, invite.Token, invite.ExpiresAt).Scan(&invite.ID, &invite.CreatedAt)
}

func (r *postgresInviteRepository) GetByToken(ctx context.Context, token string) (*models.Invite, error) {
	query := `SELECT id, team_id, token, expires_at, created_at FROM invites WHERE token = $1`
	var i models.Invite
	err := r.db.QueryRowContext(ctx, query, token).
		Scan(&i.ID, &i.TeamID, &i.Token, &i.ExpiresAt, &i.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}
	return &i, nil
}

func (r *postgresInviteRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM invites WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrInviteNotFound)
}

func (r *postgresInviteRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM invites WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
