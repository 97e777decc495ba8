package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/hockey-club-system/models"
	"github.com/Dosada05/hockey-club-system/repositories"
)

type ScheduleGameInput struct {
	TeamID   int       `json:"team_id"`
	SeasonID *int      `json:"season_id"`
	Opponent string    `json:"opponent"`
	IsHome   bool      `json:"is_home"`
	DateTime time.Time `json:"date_time"`
}

type PlayerStatsInput struct {
	PlayerID     int                `json:"player_id"`
	GoalsScored  int                `json:"goals_scored"`
	Assists      int                `json:"assists"`
	YellowCards  int                `json:"yellow_cards"`
	RedCards     int                `json:"red_cards"`
	CustomValues map[string]float64 `json:"custom_values"`
}

type CompleteGameInput struct {
	GoalsFor     int                `json:"goals_for"`
	GoalsAgainst int                `json:"goals_against"`
	PlayerStats  []PlayerStatsInput `json:"player_stats"`
}

type GameService interface {
	ScheduleGame(ctx context.Context, input ScheduleGameInput) (*models.Game, error)
	GetGameByID(ctx context.Context, id int) (*models.Game, error)
	SetSquad(ctx context.Context, gameID int, playerIDs []int) error
	CompleteGame(ctx context.Context, gameID int, input CompleteGameInput) (*models.Game, error)
	CancelGame(ctx context.Context, gameID int) error
	ListGamesByTeam(ctx context.Context, teamID int, status *models.GameStatus) ([]*models.Game, error)
}

type gameService struct {
	db         *sql.DB
	gameRepo   repositories.GameRepository
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	logger     *slog.Logger
}

func NewGameService(
	db *sql.DB,
	gameRepo repositories.GameRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	logger *slog.Logger,
) GameService {
	return &gameService{
		db:         db,
		gameRepo:   gameRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		logger:     logger,
	}
}

func (s *gameService) ScheduleGame(ctx context.Context, input ScheduleGameInput) (*models.Game, error) {
	if strings.TrimSpace(input.Opponent) == "" {
		return nil, fmt.Errorf("%w: opponent name is required", ErrValidationFailed)
	}
	if _, err := s.teamRepo.GetByID(ctx, input.TeamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	game := &models.Game{
		TeamID:   input.TeamID,
		SeasonID: input.SeasonID,
		Opponent: strings.TrimSpace(input.Opponent),
		IsHome:   input.IsHome,
		Status:   models.GameStatusScheduled,
		DateTime: input.DateTime,
	}
	if err := s.gameRepo.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to schedule game: %w", err)
	}
	return game, nil
}

func (s *gameService) GetGameByID(ctx context.Context, id int) (*models.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	squad, err := s.gameRepo.ListSquadByGame(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list squad of game %d: %w", id, err)
	}
	game.Squad = make([]models.GamePlayer, 0, len(squad))
	for _, gp := range squad {
		game.Squad = append(game.Squad, *gp)
	}

	stats, err := s.gameRepo.ListStatsByGame(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list stats of game %d: %w", id, err)
	}
	game.PlayerStats = make([]models.GamePlayerStats, 0, len(stats))
	for _, st := range stats {
		game.PlayerStats = append(game.PlayerStats, *st)
	}
	return game, nil
}

// SetSquad registers the matchday squad for a scheduled game. Only
// active players of the game's own team can be selected.
func (s *gameService) SetSquad(ctx context.Context, gameID int, playerIDs []int) error {
	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return ErrGameNotFound
		}
		return err
	}
	if game.Status != models.GameStatusScheduled {
		return ErrGameInvalidStatusTransition
	}

	eligible, err := s.playerRepo.ListByTeamID(ctx, game.TeamID)
	if err != nil {
		return err
	}
	byID := make(map[int]*models.Player, len(eligible))
	for _, p := range eligible {
		byID[p.ID] = p
	}
	for _, id := range playerIDs {
		p, ok := byID[id]
		if !ok || !p.IsActive {
			return fmt.Errorf("%w: player %d is not an active member of team %d", ErrValidationFailed, id, game.TeamID)
		}
	}

	return s.withTx(ctx, func(exec repositories.SQLExecutor) error {
		for _, id := range playerIDs {
			gp := &models.GamePlayer{GameID: gameID, PlayerID: id}
			if err := s.gameRepo.AddSquadPlayer(ctx, exec, gp); err != nil {
				return err
			}
		}
		return nil
	})
}

// CompleteGame records the final score and per-player statistics in a
// single transaction and moves the game to completed. Statistics may
// only reference players in the registered squad.
func (s *gameService) CompleteGame(ctx context.Context, gameID int, input CompleteGameInput) (*models.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	if game.Status != models.GameStatusScheduled && game.Status != models.GameStatusCompleted {
		return nil, ErrGameInvalidStatusTransition
	}
	if input.GoalsFor < 0 || input.GoalsAgainst < 0 {
		return nil, fmt.Errorf("%w: goals cannot be negative", ErrValidationFailed)
	}

	squad, err := s.gameRepo.ListSquadByGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	inSquad := make(map[int]*models.GamePlayer, len(squad))
	for _, gp := range squad {
		inSquad[gp.PlayerID] = gp
	}
	for _, st := range input.PlayerStats {
		if len(inSquad) > 0 {
			if _, ok := inSquad[st.PlayerID]; !ok {
				return nil, fmt.Errorf("%w: player %d", ErrGameStatsPlayerNotInSquad, st.PlayerID)
			}
		}
		if st.GoalsScored < 0 || st.Assists < 0 || st.YellowCards < 0 || st.RedCards < 0 {
			return nil, fmt.Errorf("%w: player %d statistics cannot be negative", ErrValidationFailed, st.PlayerID)
		}
	}

	game.GoalsFor = input.GoalsFor
	game.GoalsAgainst = input.GoalsAgainst

	err = s.withTx(ctx, func(exec repositories.SQLExecutor) error {
		for _, st := range input.PlayerStats {
			player, err := s.playerRepo.GetByID(ctx, st.PlayerID)
			if err != nil {
				if errors.Is(err, repositories.ErrPlayerNotFound) {
					return fmt.Errorf("%w: player %d", ErrPlayerNotFound, st.PlayerID)
				}
				return err
			}
			stats := &models.GamePlayerStats{
				GameID:       gameID,
				PlayerID:     st.PlayerID,
				GoalsScored:  st.GoalsScored,
				Assists:      st.Assists,
				YellowCards:  st.YellowCards,
				RedCards:     st.RedCards,
				Position:     player.Position,
				CustomValues: st.CustomValues,
			}
			if err := s.gameRepo.UpsertPlayerStats(ctx, exec, stats); err != nil {
				return err
			}
		}
		if err := s.gameRepo.Update(ctx, game); err != nil {
			return err
		}
		return s.gameRepo.UpdateStatus(ctx, exec, gameID, models.GameStatusCompleted)
	})
	if err != nil {
		return nil, err
	}

	game.Status = models.GameStatusCompleted
	s.logger.InfoContext(ctx, "game completed",
		slog.Int("game_id", gameID),
		slog.Int("goals_for", game.GoalsFor),
		slog.Int("goals_against", game.GoalsAgainst),
		slog.Int("stat_rows", len(input.PlayerStats)),
	)
	return game, nil
}

func (s *gameService) CancelGame(ctx context.Context, gameID int) error {
	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return ErrGameNotFound
		}
		return err
	}
	if game.Status != models.GameStatusScheduled {
		return ErrGameInvalidStatusTransition
	}
	return s.gameRepo.UpdateStatus(ctx, nil, gameID, models.GameStatusCanceled)
}

func (s *gameService) ListGamesByTeam(ctx context.Context, teamID int, status *models.GameStatus) ([]*models.Game, error) {
	return s.gameRepo.ListByTeamID(ctx, teamID, status)
}

func (s *gameService) withTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	if s.db == nil {
		return fn(nil)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Error("rollback failed", slog.Any("error", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
