package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/hockey-club-system/models"
	"github.com/lib/pq"
)

var (
	ErrRuleNotFound     = errors.New("rule not found")
	ErrRuleNameConflict = errors.New("rule name conflict")
	ErrRuleInUse        = errors.New("rule is referenced by a rules profile")
)

type RuleRepository interface {
	Create(ctx context.Context, exec SQLExecutor, rule *models.Rule) error
	GetByID(ctx context.Context, id int) (*models.Rule, error)
	Update(ctx context.Context, exec SQLExecutor, rule *models.Rule) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
	ListActive(ctx context.Context) ([]*models.Rule, error)
	List(ctx context.Context) ([]*models.Rule, error)
	ReplaceConditions(ctx context.Context, exec SQLExecutor, ruleID int, conditions []models.RuleCondition) error
	CountProfileReferences(ctx context.Context, exec SQLExecutor, ruleID int) (int, error)
}

type postgresRuleRepository struct {
	db *sql.DB
}

func NewPostgresRuleRepository(db *sql.DB) RuleRepository {
	return &postgresRuleRepository{db: db}
}

func (r *postgresRuleRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresRuleRepository) Create(ctx context.Context, exec SQLExecutor, rule *models.Rule) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO rules (name, category, points_awarded, is_multiplier, target_scope, target_positions, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		rule.Name, rule.Category, rule.PointsAwarded, rule.IsMultiplier,
		rule.TargetScope, pq.Array(rule.TargetPositions), rule.IsActive,
	).Scan(&rule.ID, &rule.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrRuleNameConflict
		}
		return err
	}
	return nil
}

func (r *postgresRuleRepository) scanRule(row interface{ Scan(...interface{}) error }) (*models.Rule, error) {
	var rule models.Rule
	var positions pq.Int64Array
	err := row.Scan(&rule.ID, &rule.Name, &rule.Category, &rule.PointsAwarded,
		&rule.IsMultiplier, &rule.TargetScope, &positions, &rule.IsActive, &rule.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRuleNotFound
		}
		return nil, err
	}
	for _, p := range positions {
		rule.TargetPositions = append(rule.TargetPositions, int(p))
	}
	return &rule, nil
}

func (r *postgresRuleRepository) GetByID(ctx context.Context, id int) (*models.Rule, error) {
	query := `
		SELECT id, name, category, points_awarded, is_multiplier, target_scope, target_positions, is_active, created_at
		FROM rules WHERE id = $1`
	rule, err := r.scanRule(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	conditions, err := r.listConditions(ctx, []int{rule.ID})
	if err != nil {
		return nil, err
	}
	rule.Conditions = conditions[rule.ID]
	return rule, nil
}

func (r *postgresRuleRepository) Update(ctx context.Context, exec SQLExecutor, rule *models.Rule) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE rules SET name = $1, category = $2, points_awarded = $3, is_multiplier = $4,
			target_scope = $5, target_positions = $6, is_active = $7
		WHERE id = $8`
	result, err := executor.ExecContext(ctx, query,
		rule.Name, rule.Category, rule.PointsAwarded, rule.IsMultiplier,
		rule.TargetScope, pq.Array(rule.TargetPositions), rule.IsActive, rule.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrRuleNameConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrRuleNotFound)
}

func (r *postgresRuleRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM rules WHERE id = $1`, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrRuleInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrRuleNotFound)
}

func (r *postgresRuleRepository) list(ctx context.Context, activeOnly bool) ([]*models.Rule, error) {
	query := `
		SELECT id, name, category, points_awarded, is_multiplier, target_scope, target_positions, is_active, created_at
		FROM rules`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY category, name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := make([]*models.Rule, 0)
	ids := make([]int, 0)
	for rows.Next() {
		rule, errScan := r.scanRule(rows)
		if errScan != nil {
			return nil, errScan
		}
		rules = append(rules, rule)
		ids = append(ids, rule.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	conditions, err := r.listConditions(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, rule := range rules {
		rule.Conditions = conditions[rule.ID]
	}
	return rules, nil
}

func (r *postgresRuleRepository) ListActive(ctx context.Context) ([]*models.Rule, error) {
	return r.list(ctx, true)
}

func (r *postgresRuleRepository) List(ctx context.Context) ([]*models.Rule, error) {
	return r.list(ctx, false)
}

func (r *postgresRuleRepository) listConditions(ctx context.Context, ruleIDs []int) (map[int][]models.RuleCondition, error) {
	result := make(map[int][]models.RuleCondition)
	if len(ruleIDs) == 0 {
		return result, nil
	}

	ids := make(pq.Int64Array, len(ruleIDs))
	for i, id := range ruleIDs {
		ids[i] = int64(id)
	}

	query := `
		SELECT id, rule_id, variable, operator, value, compare_variable, scope, sort_order
		FROM rule_conditions WHERE rule_id = ANY($1) ORDER BY rule_id, sort_order`
	rows, err := r.db.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list rule conditions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.RuleCondition
		if err := rows.Scan(&c.ID, &c.RuleID, &c.Variable, &c.Operator,
			&c.Value, &c.CompareVariable, &c.Scope, &c.SortOrder); err != nil {
			return nil, err
		}
		result[c.RuleID] = append(result[c.RuleID], c)
	}
	return result, rows.Err()
}

func (r *postgresRuleRepository) ReplaceConditions(ctx context.Context, exec SQLExecutor, ruleID int, conditions []models.RuleCondition) error {
	executor := r.getExecutor(exec)
	if _, err := executor.ExecContext(ctx, `DELETE FROM rule_conditions WHERE rule_id = $1`, ruleID); err != nil {
		return err
	}
	for i, cond := range conditions {
		_, err := executor.ExecContext(ctx, `
			INSERT INTO rule_conditions (rule_id, variable, operator, value, compare_variable, scope, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			ruleID, cond.Variable, cond.Operator, cond.Value, cond.CompareVariable, cond.Scope, i)
		if err != nil {
			return fmt.Errorf("failed to insert condition %d for rule %d: %w", i, ruleID, err)
		}
	}
	return nil
}

func (r *postgresRuleRepository) CountProfileReferences(ctx context.Context, exec SQLExecutor, ruleID int) (int, error) {
	executor := r.getExecutor(exec)
	var count int
	err := executor.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM rules_profile_rules WHERE rule_id = $1`, ruleID).Scan(&count)
	return count, err
}
