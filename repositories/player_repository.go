package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/hockey-club-system/models"
	"github.com/lib/pq"
)

var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrPlayerTeamInvalid = errors.New("player team conflict or invalid")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	Delete(ctx context.Context, id int) error
	ListByTeamID(ctx context.Context, teamID int) ([]*models.Player, error)
	CountByClubID(ctx context.Context, clubID int) (int, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (team_id, user_id, first_name, last_name, position, shirt_no, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		player.TeamID, player.UserID, player.FirstName, player.LastName,
		player.Position, player.ShirtNo, player.IsActive,
	).Scan(&player.ID, &player.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrPlayerTeamInvalid
		}
		return err
	}
	return nil
}

func (r *postgresPlayerRepository) scanPlayer(row interface{ Scan(...interface{}) error }) (*models.Player, error) {
	var p models.Player
	err := row.Scan(&p.ID, &p.TeamID, &p.UserID, &p.FirstName, &p.LastName,
		&p.Position, &p.ShirtNo, &p.IsActive, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `
		SELECT id, team_id, user_id, first_name, last_name, position, shirt_no, is_active, created_at
		FROM players WHERE id = $1`
	return r.scanPlayer(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPlayerRepository) Update(ctx context.Context, player *models.Player) error {
	query := `
		UPDATE players SET team_id = $1, first_name = $2, last_name = $3,
			position = $4, shirt_no = $5, is_active = $6
		WHERE id = $7`
	result, err := r.db.ExecContext(ctx, query,
		player.TeamID, player.FirstName, player.LastName,
		player.Position, player.ShirtNo, player.IsActive, player.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrPlayerTeamInvalid
		}
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) ListByTeamID(ctx context.Context, teamID int) ([]*models.Player, error) {
	query := `
		SELECT id, team_id, user_id, first_name, last_name, position, shirt_no, is_active, created_at
		FROM players WHERE team_id = $1 ORDER BY last_name, first_name`
	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		p, errScan := r.scanPlayer(rows)
		if errScan != nil {
			return nil, errScan
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *postgresPlayerRepository) CountByClubID(ctx context.Context, clubID int) (int, error) {
	query := `
		SELECT COUNT(*) FROM players p
		JOIN teams t ON p.team_id = t.id
		WHERE t.club_id = $1 AND p.is_active`
	var count int
	err := r.db.QueryRowContext(ctx, query, clubID).Scan(&count)
	return count, err
}
