package models

import "time"

type League struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Country   *string   `json:"country,omitempty" db:"country"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Season struct {
	ID        int       `json:"id" db:"id"`
	LeagueID  int       `json:"league_id" db:"league_id"`
	Name      string    `json:"name" db:"name"`
	StartDate time.Time `json:"start_date" db:"start_date"`
	EndDate   time.Time `json:"end_date" db:"end_date"`
	IsActive  bool      `json:"is_active" db:"is_active"`

	League *League `json:"league,omitempty" db:"-"`
}
