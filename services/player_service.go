package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/hockey-club-system/models"
	"github.com/Dosada05/hockey-club-system/repositories"
)

type CreatePlayerInput struct {
	TeamID    int    `json:"team_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  int    `json:"position"`
	ShirtNo   *int   `json:"shirt_no"`
}

type PlayerService interface {
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	GetPlayerByID(ctx context.Context, id int) (*models.Player, error)
	UpdatePlayer(ctx context.Context, id int, input CreatePlayerInput) (*models.Player, error)
	DeactivatePlayer(ctx context.Context, id int) error
	DeletePlayer(ctx context.Context, id int) error
	ListPlayersByTeam(ctx context.Context, teamID int) ([]*models.Player, error)
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
}

func NewPlayerService(playerRepo repositories.PlayerRepository, teamRepo repositories.TeamRepository) PlayerService {
	return &playerService{playerRepo: playerRepo, teamRepo: teamRepo}
}

func validPosition(position int) bool {
	return position >= models.PositionGoalkeeper && position <= models.PositionForward
}

func (s *playerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" {
		return nil, fmt.Errorf("%w: player first and last name are required", ErrValidationFailed)
	}
	if !validPosition(input.Position) {
		return nil, fmt.Errorf("%w: unknown position %d", ErrValidationFailed, input.Position)
	}
	if _, err := s.teamRepo.GetByID(ctx, input.TeamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	player := &models.Player{
		TeamID:    input.TeamID,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Position:  input.Position,
		ShirtNo:   input.ShirtNo,
		IsActive:  true,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

func (s *playerService) GetPlayerByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, id int, input CreatePlayerInput) (*models.Player, error) {
	if !validPosition(input.Position) {
		return nil, fmt.Errorf("%w: unknown position %d", ErrValidationFailed, input.Position)
	}

	player, err := s.GetPlayerByID(ctx, id)
	if err != nil {
		return nil, err
	}

	player.FirstName = strings.TrimSpace(input.FirstName)
	player.LastName = strings.TrimSpace(input.LastName)
	player.Position = input.Position
	player.ShirtNo = input.ShirtNo

	if err := s.playerRepo.Update(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

// DeactivatePlayer keeps the player row and its scoring history but
// removes the player from future squads.
func (s *playerService) DeactivatePlayer(ctx context.Context, id int) error {
	player, err := s.GetPlayerByID(ctx, id)
	if err != nil {
		return err
	}
	player.IsActive = false
	return s.playerRepo.Update(ctx, player)
}

func (s *playerService) DeletePlayer(ctx context.Context, id int) error {
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}
	return nil
}

func (s *playerService) ListPlayersByTeam(ctx context.Context, teamID int) ([]*models.Player, error) {
	return s.playerRepo.ListByTeamID(ctx, teamID)
}
