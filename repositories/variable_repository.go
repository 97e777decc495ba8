package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/hockey-club-system/models"
	"github.com/lib/pq"
)

var (
	ErrVariableNotFound    = errors.New("variable not found")
	ErrVariableKeyConflict = errors.New("variable key conflict")
)

type VariableRepository interface {
	Create(ctx context.Context, variable *models.Variable) error
	GetByKey(ctx context.Context, key string) (*models.Variable, error)
	Update(ctx context.Context, variable *models.Variable) error
	Delete(ctx context.Context, id int) error
	ListActive(ctx context.Context) ([]*models.Variable, error)
}

type postgresVariableRepository struct {
	db *sql.DB
}

func NewPostgresVariableRepository(db *sql.DB) VariableRepository {
	return &postgresVariableRepository{db: db}
}

func (r *postgresVariableRepository) Create(ctx context.Context, variable *models.Variable) error {
	query := `
		INSERT INTO variables (key, label, data_type, scope, default_value, is_builtin, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		variable.Key, variable.Label, variable.DataType, variable.Scope,
		variable.DefaultValue, variable.IsBuiltin, variable.IsActive,
	).Scan(&variable.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrVariableKeyConflict
		}
		return err
	}
	return nil
}

func (r *postgresVariableRepository) scanVariable(row interface{ Scan(...interface{}) error }) (*models.Variable, error) {
	var v models.Variable
	err := row.Scan(&v.ID, &v.Key, &v.Label, &v.DataType, &v.Scope, &v.DefaultValue, &v.IsBuiltin, &v.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVariableNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *postgresVariableRepository) GetByKey(ctx context.Context, key string) (*models.Variable, error) {
	query := `
		SELECT id, key, label, data_type, scope, default_value, is_builtin, is_active
		FROM variables WHERE key = $1`
	return r.scanVariable(r.db.QueryRowContext(ctx, query, key))
}

func (r *postgresVariableRepository) Update(ctx context.Context, variable *models.Variable) error {
	query := `
		UPDATE variables SET label = $1, data_type = $2, scope = $3, default_value = $4, is_active = $5
		WHERE id = $6`
	result, err := r.db.ExecContext(ctx, query,
		variable.Label, variable.DataType, variable.Scope,
		variable.DefaultValue, variable.IsActive, variable.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrVariableNotFound)
}

func (r *postgresVariableRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM variables WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrVariableNotFound)
}

func (r *postgresVariableRepository) ListActive(ctx context.Context) ([]*models.Variable, error) {
	query := `
		SELECT id, key, label, data_type, scope, default_value, is_builtin, is_active
		FROM variables WHERE is_active ORDER BY key`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	variables := make([]*models.Variable, 0)
	for rows.Next() {
		v, errScan := r.scanVariable(rows)
		if errScan != nil {
			return nil, errScan
		}
		variables = append(variables, v)
	}
	return variables, rows.Err()
}
