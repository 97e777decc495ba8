package models

type VariableDataType string

const (
	VariableTypeNumber  VariableDataType = "number"
	VariableTypeBoolean VariableDataType = "boolean"
	VariableTypeString  VariableDataType = "string"
)

type VariableScope string

const (
	ScopePlayer VariableScope = "PLAYER"
	ScopeGame   VariableScope = "GAME"
	ScopeTeam   VariableScope = "TEAM"
)

// Variable is a named, typed, scoped quantity a rule condition can
// reference. Built-in variables (goals, assists, cards, position,
// goalsFor/goalsAgainst) and admin-defined custom variables share this
// representation. Key is unique among active variables.
type Variable struct {
	ID           int              `json:"id" db:"id"`
	Key          string           `json:"key" db:"key"`
	Label        string           `json:"label" db:"label"`
	DataType     VariableDataType `json:"data_type" db:"data_type"`
	Scope        VariableScope    `json:"scope" db:"scope"`
	DefaultValue *string          `json:"default_value,omitempty" db:"default_value"`
	IsBuiltin    bool             `json:"is_builtin" db:"is_builtin"`
	IsActive     bool             `json:"is_active" db:"is_active"`
}
