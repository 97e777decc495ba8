package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/hockey-club-system/models"
	"github.com/lib/pq"
)

var (
	ErrProfileNotFound     = errors.New("rules profile not found")
	ErrProfileNameConflict = errors.New("rules profile name conflict")
	ErrProfileRuleNotFound = errors.New("rules profile rule not found")
	ErrProfileClubInvalid  = errors.New("rules profile club conflict or invalid")
)

type ProfileRepository interface {
	Create(ctx context.Context, exec SQLExecutor, profile *models.RulesProfile) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.RulesProfile, error)
	GetClubDefault(ctx context.Context, exec SQLExecutor, clubID int) (*models.RulesProfile, error)
	Update(ctx context.Context, exec SQLExecutor, profile *models.RulesProfile) error
	UnsetClubDefault(ctx context.Context, exec SQLExecutor, clubID int) error
	SetClubDefault(ctx context.Context, exec SQLExecutor, profileID int) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
	ListByClubID(ctx context.Context, clubID int) ([]*models.RulesProfile, error)

	ListProfileRules(ctx context.Context, exec SQLExecutor, profileID int) ([]models.RulesProfileRule, error)
	AttachRule(ctx context.Context, exec SQLExecutor, pr *models.RulesProfileRule) error
	UpdateProfileRule(ctx context.Context, exec SQLExecutor, pr *models.RulesProfileRule) error
	DetachRule(ctx context.Context, exec SQLExecutor, profileID, ruleID int) error
}

type postgresProfileRepository struct {
	db *sql.DB
}

func NewPostgresProfileRepository(db *sql.DB) ProfileRepository {
	return &postgresProfileRepository{db: db}
}

func (r *postgresProfileRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresProfileRepository) Create(ctx context.Context, exec SQLExecutor, profile *models.RulesProfile) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO rules_profiles (club_id, name, description, is_club_default, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		profile.ClubID, profile.Name, profile.Description,
		profile.IsClubDefault, profile.IsActive,
	).Scan(&profile.ID, &profile.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return ErrProfileNameConflict
			case "23503":
				return ErrProfileClubInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresProfileRepository) scanProfile(row interface{ Scan(...interface{}) error }) (*models.RulesProfile, error) {
	var p models.RulesProfile
	err := row.Scan(&p.ID, &p.ClubID, &p.Name, &p.Description, &p.IsClubDefault, &p.IsActive, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresProfileRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.RulesProfile, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, club_id, name, description, is_club_default, is_active, created_at
		FROM rules_profiles WHERE id = $1`
	return r.scanProfile(executor.QueryRowContext(ctx, query, id))
}

func (r *postgresProfileRepository) GetClubDefault(ctx context.Context, exec SQLExecutor, clubID int) (*models.RulesProfile, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, club_id, name, description, is_club_default, is_active, created_at
		FROM rules_profiles WHERE club_id = $1 AND is_club_default AND is_active`
	return r.scanProfile(executor.QueryRowContext(ctx, query, clubID))
}

func (r *postgresProfileRepository) Update(ctx context.Context, exec SQLExecutor, profile *models.RulesProfile) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE rules_profiles SET name = $1, description = $2, is_club_default = $3, is_active = $4
		WHERE id = $5`
	result, err := executor.ExecContext(ctx, query,
		profile.Name, profile.Description, profile.IsClubDefault, profile.IsActive, profile.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrProfileNameConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrProfileNotFound)
}

func (r *postgresProfileRepository) UnsetClubDefault(ctx context.Context, exec SQLExecutor, clubID int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx,
		`UPDATE rules_profiles SET is_club_default = FALSE WHERE club_id = $1 AND is_club_default`, clubID)
	return err
}

func (r *postgresProfileRepository) SetClubDefault(ctx context.Context, exec SQLExecutor, profileID int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE rules_profiles SET is_club_default = TRUE WHERE id = $1`, profileID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrProfileNotFound)
}

func (r *postgresProfileRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM rules_profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrProfileNotFound)
}

func (r *postgresProfileRepository) ListByClubID(ctx context.Context, clubID int) ([]*models.RulesProfile, error) {
	query := `
		SELECT id, club_id, name, description, is_club_default, is_active, created_at
		FROM rules_profiles WHERE club_id = $1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]*models.RulesProfile, 0)
	for rows.Next() {
		p, errScan := r.scanProfile(rows)
		if errScan != nil {
			return nil, errScan
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *postgresProfileRepository) ListProfileRules(ctx context.Context, exec SQLExecutor, profileID int) ([]models.RulesProfileRule, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, profile_id, rule_id, custom_points, is_enabled
		FROM rules_profile_rules WHERE profile_id = $1 ORDER BY rule_id`
	rows, err := executor.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profileRules := make([]models.RulesProfileRule, 0)
	for rows.Next() {
		var pr models.RulesProfileRule
		if err := rows.Scan(&pr.ID, &pr.ProfileID, &pr.RuleID, &pr.CustomPoints, &pr.IsEnabled); err != nil {
			return nil, err
		}
		profileRules = append(profileRules, pr)
	}
	return profileRules, rows.Err()
}

func (r *postgresProfileRepository) AttachRule(ctx context.Context, exec SQLExecutor, pr *models.RulesProfileRule) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO rules_profile_rules (profile_id, rule_id, custom_points, is_enabled)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (profile_id, rule_id) DO UPDATE SET
			custom_points = EXCLUDED.custom_points,
			is_enabled = EXCLUDED.is_enabled
		RETURNING id`
	return executor.QueryRowContext(ctx, query,
		pr.ProfileID, pr.RuleID, pr.CustomPoints, pr.IsEnabled).Scan(&pr.ID)
}

func (r *postgresProfileRepository) UpdateProfileRule(ctx context.Context, exec SQLExecutor, pr *models.RulesProfileRule) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE rules_profile_rules SET custom_points = $1, is_enabled = $2
		WHERE profile_id = $3 AND rule_id = $4`
	result, err := executor.ExecContext(ctx, query, pr.CustomPoints, pr.IsEnabled, pr.ProfileID, pr.RuleID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrProfileRuleNotFound)
}

func (r *postgresProfileRepository) DetachRule(ctx context.Context, exec SQLExecutor, profileID, ruleID int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`DELETE FROM rules_profile_rules WHERE profile_id = $1 AND rule_id = $2`, profileID, ruleID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrProfileRuleNotFound)
}
