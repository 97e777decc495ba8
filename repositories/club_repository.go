package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/hockey-club-system/models"
	"github.com/lib/pq"
)

var (
	ErrClubNotFound     = errors.New("club not found")
	ErrClubNameConflict = errors.New("club name conflict")
)

type ClubRepository interface {
	Create(ctx context.Context, club *models.Club) error
	GetByID(ctx context.Context, id int) (*models.Club, error)
	Update(ctx context.Context, club *models.Club) error
	UpdateLogoKey(ctx context.Context, id int, logoKey *string) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]*models.Club, error)
}

type postgresClubRepository struct {
	db *sql.DB
}

func NewPostgresClubRepository(db *sql.DB) ClubRepository {
	return &postgresClubRepository{db: db}
}

func (r *postgresClubRepository) Create(ctx context.Context, club *models.Club) error {
	query := `
		INSERT INTO clubs (name, city)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, club.Name, club.City).Scan(&club.ID, &club.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrClubNameConflict
		}
		return err
	}
	return nil
}

func (r *postgresClubRepository) scanClub(row interface{ Scan(...interface{}) error }) (*models.Club, error) {
	var c models.Club
	err := row.Scan(&c.ID, &c.Name, &c.City, &c.LogoKey, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresClubRepository) GetByID(ctx context.Context, id int) (*models.Club, error) {
	query := `SELECT id, name, city, logo_key, created_at FROM clubs WHERE id = $1`
	return r.scanClub(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresClubRepository) Update(ctx context.Context, club *models.Club) error {
	query := `UPDATE clubs SET name = $1, city = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, club.Name, club.City, club.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrClubNameConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrClubNotFound)
}

func (r *postgresClubRepository) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE clubs SET logo_key = $1 WHERE id = $2`, logoKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrClubNotFound)
}

func (r *postgresClubRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clubs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrClubNotFound)
}

func (r *postgresClubRepository) List(ctx context.Context) ([]*models.Club, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, city, logo_key, created_at FROM clubs ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clubs := make([]*models.Club, 0)
	for rows.Next() {
		c, errScan := r.scanClub(rows)
		if errScan != nil {
			return nil, errScan
		}
		clubs = append(clubs, c)
	}
	return clubs, rows.Err()
}
