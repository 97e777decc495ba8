package services

import "errors"

// Shared errors used across services and the HTTP mapping layer.
var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrValidationFailed = errors.New("validation failed")

	// Authentication and authorization
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password is too short")
	ErrAuthEmailTaken       = errors.New("email address is already in use")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")
	ErrAdminActionForbidden = errors.New("only an admin can perform this action")

	// Entity-specific not-found (more context than the generic ErrNotFound)
	ErrClubNotFound     = errors.New("club not found")
	ErrTeamNotFound     = errors.New("team not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrGameNotFound     = errors.New("game not found")
	ErrSeasonNotFound   = errors.New("season not found")
	ErrRuleNotFound     = errors.New("rule not found")
	ErrProfileNotFound  = errors.New("rules profile not found")
	ErrVariableNotFound = errors.New("variable not found")
	ErrInviteNotFound   = errors.New("invite not found")

	// Conflicts
	ErrClubNameConflict    = errors.New("club name is already in use")
	ErrTeamNameConflict    = errors.New("team name is already in use")
	ErrRuleNameConflict    = errors.New("rule name is already in use")
	ErrProfileNameConflict = errors.New("rules profile name is already in use")
	ErrVariableKeyConflict = errors.New("variable key is already in use")

	// Rules engine configuration
	ErrRuleNameRequired      = errors.New("rule name is required")
	ErrRuleInvalidOperator   = errors.New("rule condition operator is invalid")
	ErrRuleInvalidVariable   = errors.New("rule condition references an unknown variable")
	ErrRuleInvalidValueType  = errors.New("rule condition value does not match the variable data type")
	ErrRuleInUse             = errors.New("rule is referenced by a rules profile and cannot be deleted")
	ErrProfileInUse          = errors.New("rules profile is referenced by a team and cannot be deleted")
	ErrProfileIsDefault      = errors.New("a club default profile cannot be deleted")
	ErrProfileWrongClub      = errors.New("rules profile belongs to a different club")
	ErrVariableKeyRequired   = errors.New("variable key is required")
	ErrVariableBuiltinLocked = errors.New("builtin variables cannot be modified or deleted")

	// Scoring
	ErrGameNotCompleted = errors.New("game is not in a scorable status")
	ErrGameHasNoStats   = errors.New("game has no recorded player statistics")
	ErrGameTeamMissing  = errors.New("game references a team that no longer exists")
	ErrTeamClubMissing  = errors.New("team references a club that no longer exists")

	// Games
	ErrGameInvalidStatusTransition = errors.New("invalid game status transition")
	ErrGameStatsPlayerNotInSquad   = errors.New("player statistics recorded for a player outside the squad")

	// Invites
	ErrInviteExpired = errors.New("invite has expired")
)
