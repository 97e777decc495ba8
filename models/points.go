package models

import "time"

type PointType string

const (
	PointTypeTeam PointType = "TEAM"
	PointTypeClub PointType = "CLUB"
)

// PlayerGameRulePoints is the scoring ledger. Every engine-computed
// TEAM award has a mirrored CLUB award of identical magnitude for the
// same player/game/rule, so team and club leaderboards can aggregate
// independently. Manual rows are created through the override flow and
// survive automatic re-scoring.
type PlayerGameRulePoints struct {
	ID        int       `json:"id" db:"id"`
	PlayerID  int       `json:"player_id" db:"player_id"`
	GameID    int       `json:"game_id" db:"game_id"`
	RuleID    *int      `json:"rule_id,omitempty" db:"rule_id"`
	PointType PointType `json:"point_type" db:"point_type"`
	Points    float64   `json:"points" db:"points"`
	IsManual  bool      `json:"is_manual" db:"is_manual"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// LeaderboardEntry is an aggregated SUM(points) row for dashboards.
type LeaderboardEntry struct {
	PlayerID    int     `json:"player_id" db:"player_id"`
	FirstName   string  `json:"first_name" db:"first_name"`
	LastName    string  `json:"last_name" db:"last_name"`
	TeamID      int     `json:"team_id" db:"team_id"`
	TotalPoints float64 `json:"total_points" db:"total_points"`
	GamesScored int     `json:"games_scored" db:"games_scored"`
}
