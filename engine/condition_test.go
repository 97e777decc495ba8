package engine

import (
	"testing"

	"github.com/Dosada05/hockey-club-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() *Context {
	return &Context{
		Player: PlayerFacts{
			PlayerID:    7,
			GoalsScored: 2,
			Assists:     1,
			YellowCards: 1,
			RedCards:    0,
			Position:    models.PositionDefender,
		},
		Game: GameFacts{
			GoalsFor:     3,
			GoalsAgainst: 1,
			Result:       models.GameResultWin,
		},
		Team: TeamFacts{
			GoalsFor:     3,
			GoalsAgainst: 1,
			TotalGoals:   3,
			TotalAssists: 2,
		},
		Registry: map[string]models.Variable{},
	}
}

func TestEvaluateCondition_Operators(t *testing.T) {
	ctx := testContext()

	tests := []struct {
		name string
		cond models.RuleCondition
		want bool
	}{
		{
			name: "equal true",
			cond: models.RuleCondition{Variable: VarGoalsScored, Operator: models.OperatorEqual, Value: models.NumberValue(2), Scope: models.ScopePlayer},
			want: true,
		},
		{
			name: "equal false",
			cond: models.RuleCondition{Variable: VarGoalsScored, Operator: models.OperatorEqual, Value: models.NumberValue(3), Scope: models.ScopePlayer},
			want: false,
		},
		{
			name: "not equal",
			cond: models.RuleCondition{Variable: VarAssists, Operator: models.OperatorNotEqual, Value: models.NumberValue(0), Scope: models.ScopePlayer},
			want: true,
		},
		{
			name: "greater than",
			cond: models.RuleCondition{Variable: VarGoalsScored, Operator: models.OperatorGreaterThan, Value: models.NumberValue(1), Scope: models.ScopePlayer},
			want: true,
		},
		{
			name: "greater than or equal boundary",
			cond: models.RuleCondition{Variable: VarGoalsScored, Operator: models.OperatorGreaterThanOrEqual, Value: models.NumberValue(2), Scope: models.ScopePlayer},
			want: true,
		},
		{
			name: "less than",
			cond: models.RuleCondition{Variable: VarRedCards, Operator: models.OperatorLessThan, Value: models.NumberValue(1), Scope: models.ScopePlayer},
			want: true,
		},
		{
			name: "less than or equal false",
			cond: models.RuleCondition{Variable: VarGoalsScored, Operator: models.OperatorLessThanOrEqual, Value: models.NumberValue(1), Scope: models.ScopePlayer},
			want: false,
		},
		{
			name: "string equal on game result",
			cond: models.RuleCondition{Variable: VarResult, Operator: models.OperatorEqual, Value: models.StringValue("win"), Scope: models.ScopeGame},
			want: true,
		},
		{
			name: "ordering on non-numeric operands is false",
			cond: models.RuleCondition{Variable: VarResult, Operator: models.OperatorGreaterThan, Value: models.StringValue("loss"), Scope: models.ScopeGame},
			want: false,
		},
		{
			name: "numeric string literal compares numerically",
			cond: models.RuleCondition{Variable: VarGoalsScored, Operator: models.OperatorGreaterThan, Value: models.StringValue("1"), Scope: models.ScopePlayer},
			want: true,
		},
		{
			name: "unknown operator is false",
			cond: models.RuleCondition{Variable: VarGoalsScored, Operator: "LIKE", Value: models.NumberValue(2), Scope: models.ScopePlayer},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateCondition(tt.cond, ctx))
		})
	}
}

func TestEvaluateCondition_CompareVariablePrecedence(t *testing.T) {
	ctx := testContext()
	compare := VarGoalsAgainst

	// The literal value is deliberately set so the condition would flip
	// if it were consulted: compareVariable must win.
	cond := models.RuleCondition{
		Variable:        VarGoalsFor,
		Operator:        models.OperatorGreaterThan,
		Value:           models.NumberValue(100),
		CompareVariable: &compare,
		Scope:           models.ScopeGame,
	}

	assert.True(t, EvaluateCondition(cond, ctx), "goalsFor=3 > goalsAgainst=1")

	ctx.Game.GoalsFor = 1
	ctx.Game.GoalsAgainst = 3
	assert.False(t, EvaluateCondition(cond, ctx), "goalsFor=1 > goalsAgainst=3")
}

func TestEvaluateCondition_UnknownVariableIsFalse(t *testing.T) {
	ctx := testContext()

	cond := models.RuleCondition{
		Variable: "deletedCustomStat",
		Operator: models.OperatorEqual,
		Value:    models.NumberValue(1),
		Scope:    models.ScopePlayer,
	}
	assert.False(t, EvaluateCondition(cond, ctx))

	// Unknown compare variable fails the condition too.
	missing := "alsoMissing"
	cond = models.RuleCondition{
		Variable:        VarGoalsScored,
		Operator:        models.OperatorEqual,
		CompareVariable: &missing,
		Scope:           models.ScopePlayer,
	}
	assert.False(t, EvaluateCondition(cond, ctx))
}

func TestEvaluateCondition_CustomVariable(t *testing.T) {
	ctx := testContext()
	def := "0"
	ctx.Registry["saves"] = models.Variable{
		Key:          "saves",
		DataType:     models.VariableTypeNumber,
		Scope:        models.ScopePlayer,
		DefaultValue: &def,
		IsActive:     true,
	}

	cond := models.RuleCondition{
		Variable: "saves",
		Operator: models.OperatorGreaterThanOrEqual,
		Value:    models.NumberValue(5),
		Scope:    models.ScopePlayer,
	}

	// No recorded value: declared default (0) applies.
	assert.False(t, EvaluateCondition(cond, ctx))

	ctx.Player.Custom = map[string]models.Value{"saves": models.NumberValue(8)}
	assert.True(t, EvaluateCondition(cond, ctx))

	// Deactivated variables no longer resolve.
	v := ctx.Registry["saves"]
	v.IsActive = false
	ctx.Registry["saves"] = v
	ctx.Player.Custom = nil
	assert.False(t, EvaluateCondition(cond, ctx))
}

func TestEvaluateAllConditions_AndSemantics(t *testing.T) {
	ctx := testContext()

	passing := models.RuleCondition{Variable: VarGoalsScored, Operator: models.OperatorGreaterThan, Value: models.NumberValue(0), Scope: models.ScopePlayer}
	failing := models.RuleCondition{Variable: VarRedCards, Operator: models.OperatorGreaterThan, Value: models.NumberValue(0), Scope: models.ScopePlayer}

	require.True(t, EvaluateAllConditions(nil, ctx), "empty condition list is vacuously true")
	assert.True(t, EvaluateAllConditions([]models.RuleCondition{passing, passing}, ctx))
	assert.False(t, EvaluateAllConditions([]models.RuleCondition{passing, failing}, ctx))
	assert.False(t, EvaluateAllConditions([]models.RuleCondition{failing, passing}, ctx))
}
