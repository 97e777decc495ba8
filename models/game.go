package models

import "time"

type GameStatus string

const (
	GameStatusScheduled GameStatus = "scheduled"
	GameStatusCompleted GameStatus = "completed"
	GameStatusScored    GameStatus = "scored"
	GameStatusCanceled  GameStatus = "canceled"
)

type GameResult string

const (
	GameResultWin  GameResult = "win"
	GameResultDraw GameResult = "draw"
	GameResultLoss GameResult = "loss"
)

type Game struct {
	ID           int        `json:"id" db:"id"`
	TeamID       int        `json:"team_id" db:"team_id"`
	SeasonID     *int       `json:"season_id,omitempty" db:"season_id"`
	Opponent     string     `json:"opponent" db:"opponent"`
	IsHome       bool       `json:"is_home" db:"is_home"`
	GoalsFor     int        `json:"goals_for" db:"goals_for"`
	GoalsAgainst int        `json:"goals_against" db:"goals_against"`
	Status       GameStatus `json:"status" db:"status"`
	DateTime     time.Time  `json:"date_time" db:"date_time"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`

	Team        *Team             `json:"team,omitempty" db:"-"`
	Squad       []GamePlayer      `json:"squad,omitempty" db:"-"`
	PlayerStats []GamePlayerStats `json:"player_stats,omitempty" db:"-"`
}

// Result derives the team's outcome from the final score.
func (g *Game) Result() GameResult {
	switch {
	case g.GoalsFor > g.GoalsAgainst:
		return GameResultWin
	case g.GoalsFor < g.GoalsAgainst:
		return GameResultLoss
	default:
		return GameResultDraw
	}
}

// GamePlayer is squad membership for a single game.
type GamePlayer struct {
	ID       int  `json:"id" db:"id"`
	GameID   int  `json:"game_id" db:"game_id"`
	PlayerID int  `json:"player_id" db:"player_id"`
	Started  bool `json:"started" db:"started"`

	Player *Player `json:"player,omitempty" db:"-"`
}

type GamePlayerStats struct {
	ID          int `json:"id" db:"id"`
	GameID      int `json:"game_id" db:"game_id"`
	PlayerID    int `json:"player_id" db:"player_id"`
	GoalsScored int `json:"goals_scored" db:"goals_scored"`
	Assists     int `json:"assists" db:"assists"`
	YellowCards int `json:"yellow_cards" db:"yellow_cards"`
	RedCards    int `json:"red_cards" db:"red_cards"`
	Position    int `json:"position" db:"position"`

	// Values for admin-defined custom variables, keyed by Variable.Key.
	CustomValues map[string]float64 `json:"custom_values,omitempty" db:"-"`
}
