package models

type ClubDashboard struct {
	TeamsTotal     int                `json:"teams_total"`
	PlayersTotal   int                `json:"players_total"`
	GamesPlayed    int                `json:"games_played"`
	GamesScored    int                `json:"games_scored"`
	PointsAwarded  float64            `json:"points_awarded"`
	TopPlayers     []LeaderboardEntry `json:"top_players"`
}
