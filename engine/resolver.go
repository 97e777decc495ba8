package engine

import (
	"errors"
	"strconv"

	"github.com/Dosada05/hockey-club-system/models"
)

// ErrUnknownVariable means a condition referenced a key that is neither
// builtin nor present in the variable registry. Callers treat it as
// "condition not met" rather than a fatal error, so one misconfigured
// variable cannot zero out a whole game's scoring run.
var ErrUnknownVariable = errors.New("unknown variable")

// Builtin variable keys. These resolve directly from the context
// without a registry lookup.
const (
	VarGoalsScored  = "goalsScored"
	VarAssists      = "assists"
	VarYellowCards  = "yellowCards"
	VarRedCards     = "redCards"
	VarPosition     = "position"
	VarGoalsFor     = "goalsFor"
	VarGoalsAgainst = "goalsAgainst"
	VarResult       = "result"
	VarTotalGoals   = "totalGoals"
	VarTotalAssists = "totalAssists"
)

// Resolve resolves a variable key against the context for the given
// scope. Builtins are checked first; any other key is looked up in the
// registry and resolved from the scope's custom values, falling back to
// the variable's declared default.
func Resolve(key string, scope models.VariableScope, ctx *Context) (models.Value, error) {
	if v, ok := resolveBuiltin(key, scope, ctx); ok {
		return v, nil
	}
	return resolveCustom(key, scope, ctx)
}

func resolveBuiltin(key string, scope models.VariableScope, ctx *Context) (models.Value, bool) {
	switch scope {
	case models.ScopePlayer:
		switch key {
		case VarGoalsScored:
			return models.NumberValue(float64(ctx.Player.GoalsScored)), true
		case VarAssists:
			return models.NumberValue(float64(ctx.Player.Assists)), true
		case VarYellowCards:
			return models.NumberValue(float64(ctx.Player.YellowCards)), true
		case VarRedCards:
			return models.NumberValue(float64(ctx.Player.RedCards)), true
		case VarPosition:
			return models.NumberValue(float64(ctx.Player.Position)), true
		}
	case models.ScopeGame:
		switch key {
		case VarGoalsFor:
			return models.NumberValue(float64(ctx.Game.GoalsFor)), true
		case VarGoalsAgainst:
			return models.NumberValue(float64(ctx.Game.GoalsAgainst)), true
		case VarResult:
			return models.StringValue(string(ctx.Game.Result)), true
		}
	case models.ScopeTeam:
		switch key {
		case VarGoalsFor:
			return models.NumberValue(float64(ctx.Team.GoalsFor)), true
		case VarGoalsAgainst:
			return models.NumberValue(float64(ctx.Team.GoalsAgainst)), true
		case VarTotalGoals:
			return models.NumberValue(float64(ctx.Team.TotalGoals)), true
		case VarTotalAssists:
			return models.NumberValue(float64(ctx.Team.TotalAssists)), true
		}
	}
	return models.Value{}, false
}

func resolveCustom(key string, scope models.VariableScope, ctx *Context) (models.Value, error) {
	variable, ok := ctx.Registry[key]
	if !ok || !variable.IsActive {
		return models.Value{}, ErrUnknownVariable
	}

	var custom map[string]models.Value
	switch scope {
	case models.ScopePlayer:
		custom = ctx.Player.Custom
	case models.ScopeGame:
		custom = ctx.Game.Custom
	case models.ScopeTeam:
		custom = ctx.Team.Custom
	default:
		return models.Value{}, ErrUnknownVariable
	}

	if v, ok := custom[key]; ok {
		return v, nil
	}
	if variable.DefaultValue != nil {
		return parseDefault(*variable.DefaultValue, variable.DataType), nil
	}
	return models.Value{}, ErrUnknownVariable
}

// parseDefault interprets the stored default according to the declared
// data type. An unparseable default degrades to the type's zero value.
func parseDefault(raw string, dataType models.VariableDataType) models.Value {
	switch dataType {
	case models.VariableTypeNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.NumberValue(0)
		}
		return models.NumberValue(n)
	case models.VariableTypeBoolean:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return models.BoolValue(false)
		}
		return models.BoolValue(b)
	default:
		return models.StringValue(raw)
	}
}
