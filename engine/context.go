// Package engine contains the pure rule evaluation core: variable
// resolution, condition evaluation and per-rule point awards. It has no
// database dependency; the scoring service assembles evaluation
// contexts from repository reads and feeds them in.
package engine

import "github.com/Dosada05/hockey-club-system/models"

// PlayerFacts are one player's recorded statistics for a single game.
type PlayerFacts struct {
	PlayerID    int
	GoalsScored int
	Assists     int
	YellowCards int
	RedCards    int
	Position    int

	// Custom holds values for admin-defined PLAYER-scope variables,
	// keyed by Variable.Key.
	Custom map[string]models.Value
}

// GameFacts are game-level facts from the team's point of view.
type GameFacts struct {
	GoalsFor     int
	GoalsAgainst int
	Result       models.GameResult

	Custom map[string]models.Value
}

// TeamFacts are team aggregates over the game's squad.
type TeamFacts struct {
	GoalsFor     int
	GoalsAgainst int
	TotalGoals   int
	TotalAssists int

	Custom map[string]models.Value
}

// Context bundles everything a condition can be resolved against for
// one player in one game.
type Context struct {
	Player PlayerFacts
	Game   GameFacts
	Team   TeamFacts

	// Registry lists known non-builtin variables by key. A condition
	// referencing a key absent from both the builtins and the registry
	// fails resolution and evaluates false.
	Registry map[string]models.Variable
}
