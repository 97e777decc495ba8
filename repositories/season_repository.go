package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/hockey-club-system/models"
	"github.com/lib/pq"
)

var (
	ErrLeagueNotFound = errors.New("league not found")
	ErrSeasonNotFound = errors.New("season not found")
	ErrSeasonConflict = errors.New("season conflict or invalid")
)

type SeasonRepository interface {
	CreateLeague(ctx context.Context, league *models.League) error
	ListLeagues(ctx context.Context) ([]*models.League, error)
	CreateSeason(ctx context.Context, season *models.Season) error
	GetSeasonByID(ctx context.Context, id int) (*models.Season, error)
	ListSeasonsByLeague(ctx context.Context, leagueID int) ([]*models.Season, error)
	UpdateSeason(ctx context.Context, season *models.Season) error
	DeleteSeason(ctx context.Context, id int) error
}

type postgresSeasonRepository struct {
	db *sql.DB
}

func NewPostgresSeasonRepository(db *sql.DB) SeasonRepository {
	return &postgresSeasonRepository{db: db}
}

func (r *postgresSeasonRepository) CreateLeague(ctx context.Context, league *models.League) error {
	query := `INSERT INTO leagues (name, country) VALUES ($1, $2) RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query, league.Name, league.Country).
		Scan(&league.ID, &league.CreatedAt)
}

func (r *postgresSeasonRepository) ListLeagues(ctx context.Context) ([]*models.League, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, country, created_at FROM leagues ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leagues := make([]*models.League, 0)
	for rows.Next() {
		var l models.League
		if err := rows.Scan(&l.ID, &l.Name, &l.Country, &l.CreatedAt); err != nil {
			return nil, err
		}
		leagues = append(leagues, &l)
	}
	return leagues, rows.Err()
}

func (r *postgresSeasonRepository) CreateSeason(ctx context.Context, season *models.Season) error {
	query := `
		INSERT INTO seasons (league_id, name, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		season.LeagueID, season.Name, season.StartDate, season.EndDate, season.IsActive,
	).Scan(&season.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && (pqErr.Code == "23505" || pqErr.Code == "23503") {
			return ErrSeasonConflict
		}
		return err
	}
	return nil
}

func (r *postgresSeasonRepository) scanSeason(row interface{ Scan(...interface{}) error }) (*models.Season, error) {
	var s models.Season
	err := row.Scan(&s.ID, &s.LeagueID, &s.Name, &s.StartDate, &s.EndDate, &s.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeasonNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresSeasonRepository) GetSeasonByID(ctx context.Context, id int) (*models.Season, error) {
	query := `SELECT id, league_id, name, start_date, end_date, is_active FROM seasons WHERE id = $1`
	return r.scanSeason(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresSeasonRepository) ListSeasonsByLeague(ctx context.Context, leagueID int) ([]*models.Season, error) {
	query := `
		SELECT id, league_id, name, start_date, end_date, is_active
		FROM seasons WHERE league_id = $1 ORDER BY start_date DESC`
	rows, err := r.db.QueryContext(ctx, query, leagueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seasons := make([]*models.Season, 0)
	for rows.Next() {
		s, errScan := r.scanSeason(rows)
		if errScan != nil {
			return nil, errScan
		}
		seasons = append(seasons, s)
	}
	return seasons, rows.Err()
}

func (r *postgresSeasonRepository) UpdateSeason(ctx context.Context, season *models.Season) error {
	query := `
		UPDATE seasons SET name = $1, start_date = $2, end_date = $3, is_active = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query,
		season.Name, season.StartDate, season.EndDate, season.IsActive, season.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSeasonNotFound)
}

func (r *postgresSeasonRepository) DeleteSeason(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM seasons WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSeasonNotFound)
}
