package engine

import (
	"testing"

	"github.com/Dosada05/hockey-club-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Builtins(t *testing.T) {
	ctx := testContext()

	tests := []struct {
		key   string
		scope models.VariableScope
		want  models.Value
	}{
		{VarGoalsScored, models.ScopePlayer, models.NumberValue(2)},
		{VarAssists, models.ScopePlayer, models.NumberValue(1)},
		{VarYellowCards, models.ScopePlayer, models.NumberValue(1)},
		{VarRedCards, models.ScopePlayer, models.NumberValue(0)},
		{VarPosition, models.ScopePlayer, models.NumberValue(float64(models.PositionDefender))},
		{VarGoalsFor, models.ScopeGame, models.NumberValue(3)},
		{VarGoalsAgainst, models.ScopeGame, models.NumberValue(1)},
		{VarResult, models.ScopeGame, models.StringValue("win")},
		{VarGoalsFor, models.ScopeTeam, models.NumberValue(3)},
		{VarTotalAssists, models.ScopeTeam, models.NumberValue(2)},
	}

	for _, tt := range tests {
		t.Run(string(tt.scope)+"/"+tt.key, func(t *testing.T) {
			got, err := Resolve(tt.key, tt.scope, ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_BuiltinKeyInWrongScope(t *testing.T) {
	ctx := testContext()

	// goalsScored is a PLAYER builtin; resolving it at GAME scope falls
	// through to the registry and fails there.
	_, err := Resolve(VarGoalsScored, models.ScopeGame, ctx)
	assert.ErrorIs(t, err, ErrUnknownVariable)
}

func TestResolve_CustomDefaults(t *testing.T) {
	ctx := testContext()
	numDef := "1.5"
	boolDef := "true"
	badDef := "not-a-number"
	ctx.Registry = map[string]models.Variable{
		"bonusFactor": {Key: "bonusFactor", DataType: models.VariableTypeNumber, Scope: models.ScopePlayer, DefaultValue: &numDef, IsActive: true},
		"isCaptain":   {Key: "isCaptain", DataType: models.VariableTypeBoolean, Scope: models.ScopePlayer, DefaultValue: &boolDef, IsActive: true},
		"brokenStat":  {Key: "brokenStat", DataType: models.VariableTypeNumber, Scope: models.ScopePlayer, DefaultValue: &badDef, IsActive: true},
		"noDefault":   {Key: "noDefault", DataType: models.VariableTypeNumber, Scope: models.ScopePlayer, IsActive: true},
	}

	got, err := Resolve("bonusFactor", models.ScopePlayer, ctx)
	require.NoError(t, err)
	assert.Equal(t, models.NumberValue(1.5), got)

	got, err = Resolve("isCaptain", models.ScopePlayer, ctx)
	require.NoError(t, err)
	assert.Equal(t, models.BoolValue(true), got)

	got, err = Resolve("brokenStat", models.ScopePlayer, ctx)
	require.NoError(t, err)
	assert.Equal(t, models.NumberValue(0), got, "unparseable default degrades to zero")

	_, err = Resolve("noDefault", models.ScopePlayer, ctx)
	assert.ErrorIs(t, err, ErrUnknownVariable)

	// Recorded value beats the default.
	ctx.Player.Custom = map[string]models.Value{"bonusFactor": models.NumberValue(3)}
	got, err = Resolve("bonusFactor", models.ScopePlayer, ctx)
	require.NoError(t, err)
	assert.Equal(t, models.NumberValue(3), got)
}
