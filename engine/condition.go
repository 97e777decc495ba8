package engine

import "github.com/Dosada05/hockey-club-system/models"

// EvaluateCondition evaluates a single rule condition against the
// context. It never returns an error: an unresolvable operand, or an
// ordering operator applied to non-numeric operands, makes the
// condition evaluate false so that malformed configuration degrades
// scoring quietly instead of blocking the whole run.
func EvaluateCondition(cond models.RuleCondition, ctx *Context) bool {
	left, err := Resolve(cond.Variable, cond.Scope, ctx)
	if err != nil {
		return false
	}

	// CompareVariable, when present, always takes precedence over the
	// literal value.
	right := cond.Value
	if cond.CompareVariable != nil && *cond.CompareVariable != "" {
		right, err = Resolve(*cond.CompareVariable, cond.Scope, ctx)
		if err != nil {
			return false
		}
	}

	return compare(cond.Operator, left, right)
}

// EvaluateAllConditions reports whether every condition passes (AND
// semantics, short-circuit on the first false). An empty list is
// vacuously true.
func EvaluateAllConditions(conditions []models.RuleCondition, ctx *Context) bool {
	for _, cond := range conditions {
		if !EvaluateCondition(cond, ctx) {
			return false
		}
	}
	return true
}

func compare(op models.ConditionOperator, left, right models.Value) bool {
	ln, lok := left.AsNumber()
	rn, rok := right.AsNumber()
	numeric := lok && rok

	switch op {
	case models.OperatorEqual:
		if numeric {
			return ln == rn
		}
		return left.String() == right.String()
	case models.OperatorNotEqual:
		if numeric {
			return ln != rn
		}
		return left.String() != right.String()
	case models.OperatorGreaterThan:
		return numeric && ln > rn
	case models.OperatorGreaterThanOrEqual:
		return numeric && ln >= rn
	case models.OperatorLessThan:
		return numeric && ln < rn
	case models.OperatorLessThanOrEqual:
		return numeric && ln <= rn
	default:
		return false
	}
}
