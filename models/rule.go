package models

import "time"

type ConditionOperator string

const (
	OperatorEqual              ConditionOperator = "EQUAL"
	OperatorNotEqual           ConditionOperator = "NOT_EQUAL"
	OperatorGreaterThan        ConditionOperator = "GREATER_THAN"
	OperatorGreaterThanOrEqual ConditionOperator = "GREATER_THAN_OR_EQUAL"
	OperatorLessThan           ConditionOperator = "LESS_THAN"
	OperatorLessThanOrEqual    ConditionOperator = "LESS_THAN_OR_EQUAL"
)

func (o ConditionOperator) Valid() bool {
	switch o {
	case OperatorEqual, OperatorNotEqual,
		OperatorGreaterThan, OperatorGreaterThanOrEqual,
		OperatorLessThan, OperatorLessThanOrEqual:
		return true
	}
	return false
}

type RuleTargetScope string

const (
	TargetAllPlayers        RuleTargetScope = "ALL_PLAYERS"
	TargetSpecificPositions RuleTargetScope = "SPECIFIC_POSITIONS"
)

// RuleCondition belongs to exactly one rule. When CompareVariable is
// set it takes precedence over the literal Value: the condition
// compares two resolved variables instead of variable-vs-literal.
type RuleCondition struct {
	ID              int               `json:"id" db:"id"`
	RuleID          int               `json:"rule_id" db:"rule_id"`
	Variable        string            `json:"variable" db:"variable"`
	Operator        ConditionOperator `json:"operator" db:"operator"`
	Value           Value             `json:"value" db:"value"`
	CompareVariable *string           `json:"compare_variable,omitempty" db:"compare_variable"`
	Scope           VariableScope     `json:"scope" db:"scope"`
	SortOrder       int               `json:"sort_order" db:"sort_order"`
}

// Rule is a global (not club-owned) named condition set mapping to a
// point award. Conditions are AND-combined: the rule fires only if all
// of them evaluate true.
type Rule struct {
	ID              int             `json:"id" db:"id"`
	Name            string          `json:"name" db:"name"`
	Category        string          `json:"category" db:"category"`
	PointsAwarded   float64         `json:"points_awarded" db:"points_awarded"`
	IsMultiplier    bool            `json:"is_multiplier" db:"is_multiplier"`
	TargetScope     RuleTargetScope `json:"target_scope" db:"target_scope"`
	TargetPositions []int           `json:"target_positions,omitempty" db:"-"`
	IsActive        bool            `json:"is_active" db:"is_active"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`

	Conditions []RuleCondition `json:"conditions,omitempty" db:"-"`
}

// AppliesToPosition reports whether the rule targets the given position
// id. A SPECIFIC_POSITIONS rule with an empty position set never
// applies (configuration error, fails soft).
func (r *Rule) AppliesToPosition(position int) bool {
	if r.TargetScope != TargetSpecificPositions {
		return true
	}
	for _, p := range r.TargetPositions {
		if p == position {
			return true
		}
	}
	return false
}
