package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/hockey-club-system/models"
	"github.com/lib/pq"
)

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrGameTeamInvalid   = errors.New("game team conflict or invalid")
	ErrGameStatsConflict = errors.New("game player stats conflict or invalid")
)

type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id int) (*models.Game, error)
	Update(ctx context.Context, game *models.Game) error
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.GameStatus) error
	Delete(ctx context.Context, id int) error
	ListByTeamID(ctx context.Context, teamID int, status *models.GameStatus) ([]*models.Game, error)
	CountByClubID(ctx context.Context, clubID int, status *models.GameStatus) (int, error)

	UpsertPlayerStats(ctx context.Context, exec SQLExecutor, stats *models.GamePlayerStats) error
	ListStatsByGame(ctx context.Context, gameID int) ([]*models.GamePlayerStats, error)
	ListSquadByGame(ctx context.Context, gameID int) ([]*models.GamePlayer, error)
	AddSquadPlayer(ctx context.Context, exec SQLExecutor, gp *models.GamePlayer) error
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

func (r *postgresGameRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresGameRepository) Create(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (team_id, season_id, opponent, is_home, goals_for, goals_against, status, date_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		game.TeamID, game.SeasonID, game.Opponent, game.IsHome,
		game.GoalsFor, game.GoalsAgainst, game.Status, game.DateTime,
	).Scan(&game.ID, &game.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrGameTeamInvalid
		}
		return err
	}
	return nil
}

func (r *postgresGameRepository) scanGame(row interface{ Scan(...interface{}) error }) (*models.Game, error) {
	var g models.Game
	err := row.Scan(&g.ID, &g.TeamID, &g.SeasonID, &g.Opponent, &g.IsHome,
		&g.GoalsFor, &g.GoalsAgainst, &g.Status, &g.DateTime, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *postgresGameRepository) GetByID(ctx context.Context, id int) (*models.Game, error) {
	query := `
		SELECT id, team_id, season_id, opponent, is_home, goals_for, goals_against, status, date_time, created_at
		FROM games WHERE id = $1`
	return r.scanGame(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresGameRepository) Update(ctx context.Context, game *models.Game) error {
	query := `
		UPDATE games SET opponent = $1, is_home = $2, goals_for = $3, goals_against = $4,
			status = $5, date_time = $6, season_id = $7
		WHERE id = $8`
	result, err := r.db.ExecContext(ctx, query,
		game.Opponent, game.IsHome, game.GoalsFor, game.GoalsAgainst,
		game.Status, game.DateTime, game.SeasonID, game.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.GameStatus) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `UPDATE games SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) ListByTeamID(ctx context.Context, teamID int, status *models.GameStatus) ([]*models.Game, error) {
	query := `
		SELECT id, team_id, season_id, opponent, is_home, goals_for, goals_against, status, date_time, created_at
		FROM games WHERE team_id = $1`
	args := []interface{}{teamID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY date_time DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]*models.Game, 0)
	for rows.Next() {
		g, errScan := r.scanGame(rows)
		if errScan != nil {
			return nil, errScan
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (r *postgresGameRepository) CountByClubID(ctx context.Context, clubID int, status *models.GameStatus) (int, error) {
	query := `
		SELECT COUNT(*) FROM games g
		JOIN teams t ON g.team_id = t.id
		WHERE t.club_id = $1`
	args := []interface{}{clubID}
	if status != nil {
		query += ` AND g.status = $2`
		args = append(args, *status)
	}
	var count int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

func (r *postgresGameRepository) UpsertPlayerStats(ctx context.Context, exec SQLExecutor, stats *models.GamePlayerStats) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO game_player_stats (game_id, player_id, goals_scored, assists, yellow_cards, red_cards, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (game_id, player_id) DO UPDATE SET
			goals_scored = EXCLUDED.goals_scored,
			assists = EXCLUDED.assists,
			yellow_cards = EXCLUDED.yellow_cards,
			red_cards = EXCLUDED.red_cards,
			position = EXCLUDED.position
		RETURNING id`

	err := executor.QueryRowContext(ctx, query,
		stats.GameID, stats.PlayerID, stats.GoalsScored, stats.Assists,
		stats.YellowCards, stats.RedCards, stats.Position,
	).Scan(&stats.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrGameStatsConflict
		}
		return err
	}

	// Custom variable values live in their own table keyed by variable key.
	if len(stats.CustomValues) > 0 {
		for key, value := range stats.CustomValues {
			_, err = executor.ExecContext(ctx, `
				INSERT INTO game_player_custom_values (game_id, player_id, variable_key, value)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (game_id, player_id, variable_key) DO UPDATE SET value = EXCLUDED.value`,
				stats.GameID, stats.PlayerID, key, value)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *postgresGameRepository) ListStatsByGame(ctx context.Context, gameID int) ([]*models.GamePlayerStats, error) {
	query := `
		SELECT id, game_id, player_id, goals_scored, assists, yellow_cards, red_cards, position
		FROM game_player_stats WHERE game_id = $1 ORDER BY player_id`
	rows, err := r.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]*models.GamePlayerStats, 0)
	byPlayer := make(map[int]*models.GamePlayerStats)
	for rows.Next() {
		var s models.GamePlayerStats
		if err := rows.Scan(&s.ID, &s.GameID, &s.PlayerID, &s.GoalsScored,
			&s.Assists, &s.YellowCards, &s.RedCards, &s.Position); err != nil {
			return nil, err
		}
		stats = append(stats, &s)
		byPlayer[s.PlayerID] = &s
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	customRows, err := r.db.QueryContext(ctx, `
		SELECT player_id, variable_key, value
		FROM game_player_custom_values WHERE game_id = $1`, gameID)
	if err != nil {
		return nil, err
	}
	defer customRows.Close()

	for customRows.Next() {
		var playerID int
		var key string
		var value float64
		if err := customRows.Scan(&playerID, &key, &value); err != nil {
			return nil, err
		}
		if s, ok := byPlayer[playerID]; ok {
			if s.CustomValues == nil {
				s.CustomValues = make(map[string]float64)
			}
			s.CustomValues[key] = value
		}
	}
	return stats, customRows.Err()
}

func (r *postgresGameRepository) ListSquadByGame(ctx context.Context, gameID int) ([]*models.GamePlayer, error) {
	query := `
		SELECT id, game_id, player_id, started
		FROM game_players WHERE game_id = $1 ORDER BY player_id`
	rows, err := r.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	squad := make([]*models.GamePlayer, 0)
	for rows.Next() {
		var gp models.GamePlayer
		if err := rows.Scan(&gp.ID, &gp.GameID, &gp.PlayerID, &gp.Started); err != nil {
			return nil, err
		}
		squad = append(squad, &gp)
	}
	return squad, rows.Err()
}

func (r *postgresGameRepository) AddSquadPlayer(ctx context.Context, exec SQLExecutor, gp *models.GamePlayer) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO game_players (game_id, player_id, started)
		VALUES ($1, $2, $3)
		ON CONFLICT (game_id, player_id) DO UPDATE SET started = EXCLUDED.started
		RETURNING id`
	err := executor.QueryRowContext(ctx, query, gp.GameID, gp.PlayerID, gp.Started).Scan(&gp.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrGameStatsConflict
		}
		return err
	}
	return nil
}
