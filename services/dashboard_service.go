package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/hockey-club-system/models"
	"github.com/Dosada05/hockey-club-system/repositories"
	"golang.org/x/sync/errgroup"
)

const dashboardTopPlayers = 10

type DashboardService interface {
	GetClubDashboard(ctx context.Context, clubID int) (*models.ClubDashboard, error)
	TeamLeaderboard(ctx context.Context, teamID, limit int) ([]models.LeaderboardEntry, error)
	ClubLeaderboard(ctx context.Context, clubID, limit int) ([]models.LeaderboardEntry, error)
}

type dashboardService struct {
	clubRepo   repositories.ClubRepository
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	gameRepo   repositories.GameRepository
	pointsRepo repositories.PointsRepository
}

func NewDashboardService(
	clubRepo repositories.ClubRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	gameRepo repositories.GameRepository,
	pointsRepo repositories.PointsRepository,
) DashboardService {
	return &dashboardService{
		clubRepo:   clubRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		pointsRepo: pointsRepo,
	}
}

// GetClubDashboard gathers the aggregate counters in parallel. Each
// aggregate is an independent query, so a failed one cancels the rest.
func (s *dashboardService) GetClubDashboard(ctx context.Context, clubID int) (*models.ClubDashboard, error) {
	if _, err := s.clubRepo.GetByID(ctx, clubID); err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}

	var dashboard models.ClubDashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		teams, err := s.teamRepo.ListByClubID(gctx, clubID)
		if err != nil {
			return fmt.Errorf("failed to count teams: %w", err)
		}
		dashboard.TeamsTotal = len(teams)
		return nil
	})
	g.Go(func() error {
		total, err := s.playerRepo.CountByClubID(gctx, clubID)
		if err != nil {
			return fmt.Errorf("failed to count players: %w", err)
		}
		dashboard.PlayersTotal = total
		return nil
	})
	g.Go(func() error {
		completed := models.GameStatusCompleted
		scored := models.GameStatusScored
		played, err := s.gameRepo.CountByClubID(gctx, clubID, &completed)
		if err != nil {
			return fmt.Errorf("failed to count completed games: %w", err)
		}
		scoredCount, err := s.gameRepo.CountByClubID(gctx, clubID, &scored)
		if err != nil {
			return fmt.Errorf("failed to count scored games: %w", err)
		}
		dashboard.GamesPlayed = played + scoredCount
		dashboard.GamesScored = scoredCount
		return nil
	})
	g.Go(func() error {
		sum, err := s.pointsRepo.SumByClub(gctx, clubID)
		if err != nil {
			return fmt.Errorf("failed to sum club points: %w", err)
		}
		dashboard.PointsAwarded = sum
		return nil
	})
	g.Go(func() error {
		top, err := s.pointsRepo.ClubLeaderboard(gctx, clubID, dashboardTopPlayers)
		if err != nil {
			return fmt.Errorf("failed to load club leaderboard: %w", err)
		}
		dashboard.TopPlayers = top
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

func (s *dashboardService) TeamLeaderboard(ctx context.Context, teamID, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = dashboardTopPlayers
	}
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return s.pointsRepo.TeamLeaderboard(ctx, teamID, limit)
}

func (s *dashboardService) ClubLeaderboard(ctx context.Context, clubID, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = dashboardTopPlayers
	}
	if _, err := s.clubRepo.GetByID(ctx, clubID); err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	return s.pointsRepo.ClubLeaderboard(ctx, clubID, limit)
}
