package engine

import "github.com/Dosada05/hockey-club-system/models"

// PointAward is one rule's award candidate for one player in one game.
type PointAward struct {
	RuleID int
	Points float64
}

// multiplierVariables maps a rule category to the PLAYER-scope variable
// that scales a multiplier rule's award. The source system inferred the
// magnitude variable from the category by convention rather than a
// declared field; categories not listed here scale by goals scored.
var multiplierVariables = map[string]string{
	"goals":      VarGoalsScored,
	"assists":    VarAssists,
	"discipline": VarYellowCards,
}

// EvaluateRule evaluates a rule against one player's context using the
// effective (possibly overridden) point value. It returns the award and
// true when the rule fires, or a zero award and false otherwise.
func EvaluateRule(rule *models.Rule, effectivePoints float64, ctx *Context) (PointAward, bool) {
	if !rule.IsActive {
		return PointAward{}, false
	}
	if !rule.AppliesToPosition(ctx.Player.Position) {
		return PointAward{}, false
	}
	if !EvaluateAllConditions(rule.Conditions, ctx) {
		return PointAward{}, false
	}

	points := effectivePoints
	if rule.IsMultiplier {
		magnitude, ok := multiplierValue(rule.Category, ctx)
		if !ok {
			// Multiplier rule without a resolvable magnitude fails
			// soft, same as an unresolvable condition.
			return PointAward{}, false
		}
		points = effectivePoints * magnitude
	}

	return PointAward{RuleID: rule.ID, Points: points}, true
}

func multiplierValue(category string, ctx *Context) (float64, bool) {
	key, ok := multiplierVariables[category]
	if !ok {
		key = VarGoalsScored
	}
	v, err := Resolve(key, models.ScopePlayer, ctx)
	if err != nil {
		return 0, false
	}
	return v.AsNumber()
}
