package models

import "time"

// RulesProfile is a club-owned named bundle of rule overrides. A club
// may have many profiles but at most one flagged as the club default;
// setting a new default unsets the previous one.
type RulesProfile struct {
	ID            int       `json:"id" db:"id"`
	ClubID        int       `json:"club_id" db:"club_id"`
	Name          string    `json:"name" db:"name"`
	Description   *string   `json:"description,omitempty" db:"description"`
	IsClubDefault bool      `json:"is_club_default" db:"is_club_default"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`

	Rules []RulesProfileRule `json:"rules,omitempty" db:"-"`
}

// RulesProfileRule joins a profile to a rule. CustomPoints, when set,
// overrides Rule.PointsAwarded; disabled rules are excluded from
// evaluation even though they remain in the profile.
type RulesProfileRule struct {
	ID           int      `json:"id" db:"id"`
	ProfileID    int      `json:"profile_id" db:"profile_id"`
	RuleID       int      `json:"rule_id" db:"rule_id"`
	CustomPoints *float64 `json:"custom_points,omitempty" db:"custom_points"`
	IsEnabled    bool     `json:"is_enabled" db:"is_enabled"`

	Rule *Rule `json:"rule,omitempty" db:"-"`
}
