package engine

import (
	"testing"

	"github.com/Dosada05/hockey-club-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defenderGoalBonus() *models.Rule {
	return &models.Rule{
		ID:            10,
		Name:          "Defender Goal Bonus",
		Category:      "goals",
		PointsAwarded: 5,
		TargetScope:   models.TargetAllPlayers,
		IsActive:      true,
		Conditions: []models.RuleCondition{
			{Variable: VarPosition, Operator: models.OperatorEqual, Value: models.NumberValue(models.PositionDefender), Scope: models.ScopePlayer},
			{Variable: VarGoalsScored, Operator: models.OperatorGreaterThan, Value: models.NumberValue(0), Scope: models.ScopePlayer},
		},
	}
}

func TestEvaluateRule_DefenderGoalBonus(t *testing.T) {
	rule := defenderGoalBonus()

	ctx := testContext()
	ctx.Player.Position = models.PositionDefender
	ctx.Player.GoalsScored = 1

	award, fired := EvaluateRule(rule, rule.PointsAwarded, ctx)
	require.True(t, fired)
	assert.Equal(t, rule.ID, award.RuleID)
	assert.Equal(t, 5.0, award.Points)

	// A forward with two goals does not satisfy the position condition.
	ctx.Player.Position = models.PositionForward
	ctx.Player.GoalsScored = 2
	_, fired = EvaluateRule(rule, rule.PointsAwarded, ctx)
	assert.False(t, fired)
}

func TestEvaluateRule_InactiveRuleNeverFires(t *testing.T) {
	rule := defenderGoalBonus()
	rule.IsActive = false

	ctx := testContext()
	ctx.Player.GoalsScored = 3

	_, fired := EvaluateRule(rule, rule.PointsAwarded, ctx)
	assert.False(t, fired)
}

func TestEvaluateRule_PositionTargeting(t *testing.T) {
	rule := &models.Rule{
		ID:              11,
		Name:            "Goalkeeper Clean Sheet",
		Category:        "defense",
		PointsAwarded:   4,
		TargetScope:     models.TargetSpecificPositions,
		TargetPositions: []int{models.PositionGoalkeeper},
		IsActive:        true,
		Conditions: []models.RuleCondition{
			{Variable: VarGoalsAgainst, Operator: models.OperatorEqual, Value: models.NumberValue(0), Scope: models.ScopeGame},
		},
	}

	ctx := testContext()
	ctx.Game.GoalsAgainst = 0

	for position := models.PositionGoalkeeper; position <= models.PositionForward; position++ {
		ctx.Player.Position = position
		_, fired := EvaluateRule(rule, rule.PointsAwarded, ctx)
		assert.Equal(t, position == models.PositionGoalkeeper, fired, "position %d", position)
	}
}

func TestEvaluateRule_EmptyTargetPositionsNeverFires(t *testing.T) {
	rule := defenderGoalBonus()
	rule.TargetScope = models.TargetSpecificPositions
	rule.TargetPositions = nil
	rule.Conditions = nil

	ctx := testContext()
	_, fired := EvaluateRule(rule, rule.PointsAwarded, ctx)
	assert.False(t, fired)
}

func TestEvaluateRule_Multiplier(t *testing.T) {
	rule := &models.Rule{
		ID:            12,
		Name:          "Per Goal",
		Category:      "goals",
		PointsAwarded: 3,
		IsMultiplier:  true,
		TargetScope:   models.TargetAllPlayers,
		IsActive:      true,
		Conditions: []models.RuleCondition{
			{Variable: VarGoalsScored, Operator: models.OperatorGreaterThan, Value: models.NumberValue(0), Scope: models.ScopePlayer},
		},
	}

	ctx := testContext()
	ctx.Player.GoalsScored = 2

	award, fired := EvaluateRule(rule, rule.PointsAwarded, ctx)
	require.True(t, fired)
	assert.Equal(t, 6.0, award.Points, "3 points scaled by 2 goals")

	// Assist category scales by assists instead.
	rule.Category = "assists"
	rule.Conditions[0].Variable = VarAssists
	ctx.Player.Assists = 3
	award, fired = EvaluateRule(rule, rule.PointsAwarded, ctx)
	require.True(t, fired)
	assert.Equal(t, 9.0, award.Points)
}

func TestEvaluateRule_MultiplierUsesEffectivePoints(t *testing.T) {
	rule := &models.Rule{
		ID:            13,
		Name:          "Per Goal Override",
		Category:      "goals",
		PointsAwarded: 3,
		IsMultiplier:  true,
		TargetScope:   models.TargetAllPlayers,
		IsActive:      true,
	}

	ctx := testContext()
	ctx.Player.GoalsScored = 2

	award, fired := EvaluateRule(rule, 10, ctx)
	require.True(t, fired)
	assert.Equal(t, 20.0, award.Points, "profile override scales, not the base points")
}

func TestEvaluateRule_BadConditionDoesNotAffectOtherRules(t *testing.T) {
	broken := &models.Rule{
		ID:            14,
		Name:          "Broken Custom Rule",
		Category:      "custom",
		PointsAwarded: 2,
		TargetScope:   models.TargetAllPlayers,
		IsActive:      true,
		Conditions: []models.RuleCondition{
			{Variable: "noSuchVariable", Operator: models.OperatorEqual, Value: models.NumberValue(1), Scope: models.ScopePlayer},
		},
	}
	healthy := defenderGoalBonus()

	ctx := testContext()
	ctx.Player.Position = models.PositionDefender
	ctx.Player.GoalsScored = 1

	_, fired := EvaluateRule(broken, broken.PointsAwarded, ctx)
	assert.False(t, fired)

	award, fired := EvaluateRule(healthy, healthy.PointsAwarded, ctx)
	require.True(t, fired)
	assert.Equal(t, 5.0, award.Points)
}
