package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/hockey-club-system/models"
	"github.com/Dosada05/hockey-club-system/repositories"
)

type CreateRuleInput struct {
	Name            string                 `json:"name"`
	Category        string                 `json:"category"`
	PointsAwarded   float64                `json:"points_awarded"`
	IsMultiplier    bool                   `json:"is_multiplier"`
	TargetScope     models.RuleTargetScope `json:"target_scope"`
	TargetPositions []int                  `json:"target_positions"`
	IsActive        bool                   `json:"is_active"`
	Conditions      []models.RuleCondition `json:"conditions"`
}

type RulesService interface {
	CreateRule(ctx context.Context, input CreateRuleInput) (*models.Rule, error)
	GetRuleByID(ctx context.Context, id int) (*models.Rule, error)
	UpdateRule(ctx context.Context, id int, input CreateRuleInput) (*models.Rule, error)
	DeleteRule(ctx context.Context, id int) error
	ListRules(ctx context.Context) ([]*models.Rule, error)
}

type rulesService struct {
	db           *sql.DB
	ruleRepo     repositories.RuleRepository
	variableRepo repositories.VariableRepository
	logger       *slog.Logger
}

func NewRulesService(db *sql.DB, ruleRepo repositories.RuleRepository, variableRepo repositories.VariableRepository, logger *slog.Logger) RulesService {
	return &rulesService{db: db, ruleRepo: ruleRepo, variableRepo: variableRepo, logger: logger}
}

func (s *rulesService) CreateRule(ctx context.Context, input CreateRuleInput) (*models.Rule, error) {
	if err := s.validateRuleInput(ctx, input); err != nil {
		return nil, err
	}

	rule := &models.Rule{
		Name:            strings.TrimSpace(input.Name),
		Category:        strings.TrimSpace(input.Category),
		PointsAwarded:   input.PointsAwarded,
		IsMultiplier:    input.IsMultiplier,
		TargetScope:     input.TargetScope,
		TargetPositions: input.TargetPositions,
		IsActive:        input.IsActive,
	}

	err := s.withTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.ruleRepo.Create(ctx, exec, rule); err != nil {
			return err
		}
		return s.ruleRepo.ReplaceConditions(ctx, exec, rule.ID, input.Conditions)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrRuleNameConflict) {
			return nil, ErrRuleNameConflict
		}
		return nil, err
	}
	rule.Conditions = input.Conditions
	return rule, nil
}

func (s *rulesService) GetRuleByID(ctx context.Context, id int) (*models.Rule, error) {
	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRuleNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, err
	}
	return rule, nil
}

func (s *rulesService) UpdateRule(ctx context.Context, id int, input CreateRuleInput) (*models.Rule, error) {
	if err := s.validateRuleInput(ctx, input); err != nil {
		return nil, err
	}

	rule, err := s.GetRuleByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rule.Name = strings.TrimSpace(input.Name)
	rule.Category = strings.TrimSpace(input.Category)
	rule.PointsAwarded = input.PointsAwarded
	rule.IsMultiplier = input.IsMultiplier
	rule.TargetScope = input.TargetScope
	rule.TargetPositions = input.TargetPositions
	rule.IsActive = input.IsActive

	err = s.withTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.ruleRepo.Update(ctx, exec, rule); err != nil {
			return err
		}
		return s.ruleRepo.ReplaceConditions(ctx, exec, rule.ID, input.Conditions)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrRuleNameConflict) {
			return nil, ErrRuleNameConflict
		}
		return nil, err
	}
	rule.Conditions = input.Conditions
	return rule, nil
}

// DeleteRule refuses to remove a rule that any profile still
// references; detach it from every profile first.
func (s *rulesService) DeleteRule(ctx context.Context, id int) error {
	refs, err := s.ruleRepo.CountProfileReferences(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("failed to count profile references of rule %d: %w", id, err)
	}
	if refs > 0 {
		return ErrRuleInUse
	}

	err = s.ruleRepo.Delete(ctx, nil, id)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrRuleNotFound):
			return ErrRuleNotFound
		case errors.Is(err, repositories.ErrRuleInUse):
			return ErrRuleInUse
		}
		return err
	}
	return nil
}

func (s *rulesService) ListRules(ctx context.Context) ([]*models.Rule, error) {
	return s.ruleRepo.List(ctx)
}

// validateRuleInput checks structure and condition typing at save time
// so evaluation can stay failure-soft.
func (s *rulesService) validateRuleInput(ctx context.Context, input CreateRuleInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrRuleNameRequired
	}
	if input.TargetScope != models.TargetAllPlayers && input.TargetScope != models.TargetSpecificPositions {
		return fmt.Errorf("%w: unknown target scope %q", ErrValidationFailed, input.TargetScope)
	}

	for _, cond := range input.Conditions {
		if !cond.Operator.Valid() {
			return fmt.Errorf("%w: %q", ErrRuleInvalidOperator, cond.Operator)
		}
		if err := s.validateConditionVariable(ctx, cond.Variable, cond); err != nil {
			return err
		}
		if cond.CompareVariable != nil && *cond.CompareVariable != "" {
			if err := s.validateConditionVariable(ctx, *cond.CompareVariable, cond); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *rulesService) validateConditionVariable(ctx context.Context, key string, cond models.RuleCondition) error {
	if isBuiltinKey(key) {
		return nil
	}
	variable, err := s.variableRepo.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, repositories.ErrVariableNotFound) {
			return fmt.Errorf("%w: %q", ErrRuleInvalidVariable, key)
		}
		return err
	}
	// Literal values are validated against the declared data type here,
	// not at evaluation time.
	if cond.CompareVariable == nil && !valueMatchesType(cond.Value, variable.DataType) {
		return fmt.Errorf("%w: variable %q expects %s", ErrRuleInvalidValueType, key, variable.DataType)
	}
	return nil
}

func isBuiltinKey(key string) bool {
	switch key {
	case "goalsScored", "assists", "yellowCards", "redCards", "position",
		"goalsFor", "goalsAgainst", "result", "totalGoals", "totalAssists":
		return true
	}
	return false
}

func valueMatchesType(v models.Value, dataType models.VariableDataType) bool {
	switch dataType {
	case models.VariableTypeNumber:
		_, ok := v.AsNumber()
		return ok
	case models.VariableTypeBoolean:
		return v.Kind == models.ValueKindBool
	default:
		return true
	}
}

func (s *rulesService) withTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	if s.db == nil {
		return fn(nil)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Error("rollback failed", slog.Any("error", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
