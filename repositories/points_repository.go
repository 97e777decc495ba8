package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/hockey-club-system/models"
	"github.com/lib/pq"
)

var ErrPointsPlayerInvalid = errors.New("point award player or game conflict or invalid")

type PointsRepository interface {
	BatchCreate(ctx context.Context, exec SQLExecutor, awards []*models.PlayerGameRulePoints) error
	CreateManual(ctx context.Context, award *models.PlayerGameRulePoints) error
	DeleteAutomaticByGame(ctx context.Context, exec SQLExecutor, gameID int) error
	ListByGame(ctx context.Context, gameID int) ([]*models.PlayerGameRulePoints, error)
	TeamLeaderboard(ctx context.Context, teamID int, limit int) ([]models.LeaderboardEntry, error)
	ClubLeaderboard(ctx context.Context, clubID int, limit int) ([]models.LeaderboardEntry, error)
	SumByClub(ctx context.Context, clubID int) (float64, error)
}

type postgresPointsRepository struct {
	db *sql.DB
}

func NewPostgresPointsRepository(db *sql.DB) PointsRepository {
	return &postgresPointsRepository{db: db}
}

func (r *postgresPointsRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPointsRepository) BatchCreate(ctx context.Context, exec SQLExecutor, awards []*models.PlayerGameRulePoints) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO player_game_rule_points (player_id, game_id, rule_id, point_type, points, is_manual, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	now := time.Now()
	for _, award := range awards {
		if award.CreatedAt.IsZero() {
			award.CreatedAt = now
		}
		err := executor.QueryRowContext(ctx, query,
			award.PlayerID, award.GameID, award.RuleID, award.PointType,
			award.Points, award.IsManual, award.CreatedAt,
		).Scan(&award.ID)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
				return ErrPointsPlayerInvalid
			}
			return fmt.Errorf("failed to insert award for player %d rule %v: %w", award.PlayerID, award.RuleID, err)
		}
	}
	return nil
}

func (r *postgresPointsRepository) CreateManual(ctx context.Context, award *models.PlayerGameRulePoints) error {
	award.IsManual = true
	return r.BatchCreate(ctx, nil, []*models.PlayerGameRulePoints{award})
}

// DeleteAutomaticByGame removes engine-computed rows only; manual
// override rows survive automatic re-scoring.
func (r *postgresPointsRepository) DeleteAutomaticByGame(ctx context.Context, exec SQLExecutor, gameID int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx,
		`DELETE FROM player_game_rule_points WHERE game_id = $1 AND NOT is_manual`, gameID)
	return err
}

func (r *postgresPointsRepository) ListByGame(ctx context.Context, gameID int) ([]*models.PlayerGameRulePoints, error) {
	query := `
		SELECT id, player_id, game_id, rule_id, point_type, points, is_manual, created_at
		FROM player_game_rule_points WHERE game_id = $1
		ORDER BY player_id, rule_id, point_type`
	rows, err := r.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	awards := make([]*models.PlayerGameRulePoints, 0)
	for rows.Next() {
		var a models.PlayerGameRulePoints
		if err := rows.Scan(&a.ID, &a.PlayerID, &a.GameID, &a.RuleID,
			&a.PointType, &a.Points, &a.IsManual, &a.CreatedAt); err != nil {
			return nil, err
		}
		awards = append(awards, &a)
	}
	return awards, rows.Err()
}

func (r *postgresPointsRepository) leaderboard(ctx context.Context, query string, id, limit int) ([]models.LeaderboardEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, id, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.LeaderboardEntry, 0)
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.PlayerID, &e.FirstName, &e.LastName, &e.TeamID,
			&e.TotalPoints, &e.GamesScored); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *postgresPointsRepository) TeamLeaderboard(ctx context.Context, teamID int, limit int) ([]models.LeaderboardEntry, error) {
	query := `
		SELECT p.id, p.first_name, p.last_name, p.team_id,
		       COALESCE(SUM(pts.points), 0) AS total_points,
		       COUNT(DISTINCT pts.game_id) AS games_scored
		FROM players p
		LEFT JOIN player_game_rule_points pts
		       ON pts.player_id = p.id AND pts.point_type = 'TEAM'
		WHERE p.team_id = $1
		GROUP BY p.id, p.first_name, p.last_name, p.team_id
		ORDER BY total_points DESC, p.last_name ASC
		LIMIT $2`
	return r.leaderboard(ctx, query, teamID, limit)
}

func (r *postgresPointsRepository) ClubLeaderboard(ctx context.Context, clubID int, limit int) ([]models.LeaderboardEntry, error) {
	query := `
		SELECT p.id, p.first_name, p.last_name, p.team_id,
		       COALESCE(SUM(pts.points), 0) AS total_points,
		       COUNT(DISTINCT pts.game_id) AS games_scored
		FROM players p
		JOIN teams t ON p.team_id = t.id
		LEFT JOIN player_game_rule_points pts
		       ON pts.player_id = p.id AND pts.point_type = 'CLUB'
		WHERE t.club_id = $1
		GROUP BY p.id, p.first_name, p.last_name, p.team_id
		ORDER BY total_points DESC, p.last_name ASC
		LIMIT $2`
	return r.leaderboard(ctx, query, clubID, limit)
}

func (r *postgresPointsRepository) SumByClub(ctx context.Context, clubID int) (float64, error) {
	query := `
		SELECT COALESCE(SUM(pts.points), 0)
		FROM player_game_rule_points pts
		JOIN players p ON pts.player_id = p.id
		JOIN teams t ON p.team_id = t.id
		WHERE t.club_id = $1 AND pts.point_type = 'CLUB'`
	var sum float64
	err := r.db.QueryRowContext(ctx, query, clubID).Scan(&sum)
	return sum, err
}
