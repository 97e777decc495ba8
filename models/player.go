package models

import "time"

// Position ids are club-wide and referenced by Rule.TargetPositions.
const (
	PositionGoalkeeper = 1
	PositionDefender   = 2
	PositionMidfielder = 3
	PositionForward    = 4
)

type Player struct {
	ID         int       `json:"id" db:"id"`
	TeamID     int       `json:"team_id" db:"team_id"`
	UserID     *int      `json:"user_id,omitempty" db:"user_id"`
	FirstName  string    `json:"first_name" db:"first_name"`
	LastName   string    `json:"last_name" db:"last_name"`
	Position   int       `json:"position" db:"position"`
	ShirtNo    *int      `json:"shirt_no,omitempty" db:"shirt_no"`
	IsActive   bool      `json:"is_active" db:"is_active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`

	Team *Team `json:"team,omitempty" db:"-"`
}
