package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/hockey-club-system/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound       = errors.New("team not found")
	ErrTeamNameConflict   = errors.New("team name conflict")
	ErrTeamClubInvalid    = errors.New("team club conflict or invalid")
	ErrTeamProfileInvalid = errors.New("team rules profile conflict or invalid")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	UpdateLogoKey(ctx context.Context, id int, logoKey *string) error
	SetDefaultRulesProfile(ctx context.Context, teamID int, profileID *int) error
	Delete(ctx context.Context, id int) error
	ListByClubID(ctx context.Context, clubID int) ([]*models.Team, error)
	CountByProfileID(ctx context.Context, exec SQLExecutor, profileID int) (int, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (club_id, name, season_id, default_rules_profile_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		team.ClubID, team.Name, team.SeasonID, team.DefaultRulesProfileID,
	).Scan(&team.ID, &team.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return ErrTeamNameConflict
			case "23503":
				return ErrTeamClubInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresTeamRepository) scanTeam(row interface{ Scan(...interface{}) error }) (*models.Team, error) {
	var t models.Team
	err := row.Scan(&t.ID, &t.ClubID, &t.Name, &t.SeasonID, &t.DefaultRulesProfileID, &t.LogoKey, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT id, club_id, name, season_id, default_rules_profile_id, logo_key, created_at
		FROM teams WHERE id = $1`
	return r.scanTeam(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `
		UPDATE teams SET name = $1, season_id = $2, default_rules_profile_id = $3
		WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query,
		team.Name, team.SeasonID, team.DefaultRulesProfileID, team.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return ErrTeamNameConflict
			case "23503":
				return ErrTeamProfileInvalid
			}
		}
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET logo_key = $1 WHERE id = $2`, logoKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) SetDefaultRulesProfile(ctx context.Context, teamID int, profileID *int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE teams SET default_rules_profile_id = $1 WHERE id = $2`, profileID, teamID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrTeamProfileInvalid
		}
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) ListByClubID(ctx context.Context, clubID int) ([]*models.Team, error) {
	query := `
		SELECT id, club_id, name, season_id, default_rules_profile_id, logo_key, created_at
		FROM teams WHERE club_id = $1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		t, errScan := r.scanTeam(rows)
		if errScan != nil {
			return nil, errScan
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) CountByProfileID(ctx context.Context, exec SQLExecutor, profileID int) (int, error) {
	executor := r.getExecutor(exec)
	var count int
	err := executor.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM teams WHERE default_rules_profile_id = $1`, profileID).Scan(&count)
	return count, err
}
