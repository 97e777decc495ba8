package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Dosada05/hockey-club-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRulesService(rules *fakeRuleRepo, vars *fakeVariableRepo) RulesService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRulesService(nil, rules, vars, logger)
}

func TestCreateRuleValidation(t *testing.T) {
	vars := newFakeVariableRepo()
	require.NoError(t, vars.Create(context.Background(), &models.Variable{
		Key:      "penaltyMinutes",
		Label:    "Penalty minutes",
		DataType: models.VariableTypeNumber,
		Scope:    models.ScopePlayer,
		IsActive: true,
	}))
	svc := newRulesService(newFakeRuleRepo(), vars)
	ctx := context.Background()

	valid := CreateRuleInput{
		Name:          "Hat Trick",
		Category:      "goals",
		PointsAwarded: 25,
		TargetScope:   models.TargetAllPlayers,
		IsActive:      true,
		Conditions: []models.RuleCondition{{
			Variable: "goalsScored",
			Operator: models.OperatorGreaterThanOrEqual,
			Value:    models.NumberValue(3),
			Scope:    models.ScopePlayer,
		}},
	}

	tests := []struct {
		name    string
		mutate  func(in *CreateRuleInput)
		wantErr error
	}{
		{
			name:   "valid input",
			mutate: func(in *CreateRuleInput) {},
		},
		{
			name:    "empty name",
			mutate:  func(in *CreateRuleInput) { in.Name = "  " },
			wantErr: ErrRuleNameRequired,
		},
		{
			name:    "unknown target scope",
			mutate:  func(in *CreateRuleInput) { in.TargetScope = "SOME_PLAYERS" },
			wantErr: ErrValidationFailed,
		},
		{
			name: "unknown operator",
			mutate: func(in *CreateRuleInput) {
				in.Conditions[0].Operator = "ALMOST_EQUAL"
			},
			wantErr: ErrRuleInvalidOperator,
		},
		{
			name: "unknown variable",
			mutate: func(in *CreateRuleInput) {
				in.Conditions[0].Variable = "slapShots"
			},
			wantErr: ErrRuleInvalidVariable,
		},
		{
			name: "custom variable accepts matching literal",
			mutate: func(in *CreateRuleInput) {
				in.Conditions[0].Variable = "penaltyMinutes"
				in.Conditions[0].Value = models.NumberValue(10)
			},
		},
		{
			name: "custom variable rejects mismatched literal",
			mutate: func(in *CreateRuleInput) {
				in.Conditions[0].Variable = "penaltyMinutes"
				in.Conditions[0].Value = models.StringValue("lots")
			},
			wantErr: ErrRuleInvalidValueType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			input.Conditions = []models.RuleCondition{valid.Conditions[0]}
			tt.mutate(&input)

			_, err := svc.CreateRule(ctx, input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestDeleteRuleBlockedWhileReferenced(t *testing.T) {
	rules := newFakeRuleRepo()
	svc := newRulesService(rules, newFakeVariableRepo())
	ctx := context.Background()

	rule, err := svc.CreateRule(ctx, CreateRuleInput{
		Name:          "Team Win",
		Category:      "results",
		PointsAwarded: 5,
		TargetScope:   models.TargetAllPlayers,
		IsActive:      true,
	})
	require.NoError(t, err)

	rules.refs[rule.ID] = 2
	assert.ErrorIs(t, svc.DeleteRule(ctx, rule.ID), ErrRuleInUse)

	rules.refs[rule.ID] = 0
	require.NoError(t, svc.DeleteRule(ctx, rule.ID))
	_, err = svc.GetRuleByID(ctx, rule.ID)
	assert.ErrorIs(t, err, ErrRuleNotFound)
}

func TestUpdateRuleReplacesConditions(t *testing.T) {
	rules := newFakeRuleRepo()
	svc := newRulesService(rules, newFakeVariableRepo())
	ctx := context.Background()

	rule, err := svc.CreateRule(ctx, CreateRuleInput{
		Name:          "Clean Game",
		Category:      "discipline",
		PointsAwarded: 2,
		TargetScope:   models.TargetAllPlayers,
		IsActive:      true,
		Conditions: []models.RuleCondition{{
			Variable: "yellowCards",
			Operator: models.OperatorEqual,
			Value:    models.NumberValue(0),
			Scope:    models.ScopePlayer,
		}},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateRule(ctx, rule.ID, CreateRuleInput{
		Name:          "Spotless Game",
		Category:      "discipline",
		PointsAwarded: 3,
		TargetScope:   models.TargetAllPlayers,
		IsActive:      true,
		Conditions: []models.RuleCondition{
			{
				Variable: "yellowCards",
				Operator: models.OperatorEqual,
				Value:    models.NumberValue(0),
				Scope:    models.ScopePlayer,
			},
			{
				Variable: "redCards",
				Operator: models.OperatorEqual,
				Value:    models.NumberValue(0),
				Scope:    models.ScopePlayer,
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Spotless Game", updated.Name)
	assert.Equal(t, 3.0, updated.PointsAwarded)

	reloaded, err := svc.GetRuleByID(ctx, rule.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Conditions, 2)
}
