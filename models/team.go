package models

import "time"

type Team struct {
	ID                    int       `json:"id" db:"id"`
	ClubID                int       `json:"club_id" db:"club_id"`
	Name                  string    `json:"name" db:"name"`
	SeasonID              *int      `json:"season_id,omitempty" db:"season_id"`
	DefaultRulesProfileID *int      `json:"default_rules_profile_id,omitempty" db:"default_rules_profile_id"`
	CreatedAt             time.Time `json:"created_at" db:"created_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`

	Club    *Club    `json:"club,omitempty" db:"-"`
	Players []Player `json:"players,omitempty" db:"-"`
}
