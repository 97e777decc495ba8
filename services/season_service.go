package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/hockey-club-system/models"
	"github.com/Dosada05/hockey-club-system/repositories"
)

type CreateSeasonInput struct {
	LeagueID  int       `json:"league_id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	IsActive  bool      `json:"is_active"`
}

type SeasonService interface {
	CreateLeague(ctx context.Context, name string, country *string) (*models.League, error)
	ListLeagues(ctx context.Context) ([]*models.League, error)
	CreateSeason(ctx context.Context, input CreateSeasonInput) (*models.Season, error)
	GetSeasonByID(ctx context.Context, id int) (*models.Season, error)
	UpdateSeason(ctx context.Context, id int, input CreateSeasonInput) (*models.Season, error)
	DeleteSeason(ctx context.Context, id int) error
	ListSeasonsByLeague(ctx context.Context, leagueID int) ([]*models.Season, error)
}

type seasonService struct {
	seasonRepo repositories.SeasonRepository
}

func NewSeasonService(seasonRepo repositories.SeasonRepository) SeasonService {
	return &seasonService{seasonRepo: seasonRepo}
}

func (s *seasonService) CreateLeague(ctx context.Context, name string, country *string) (*models.League, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: league name is required", ErrValidationFailed)
	}
	league := &models.League{Name: strings.TrimSpace(name), Country: country}
	if err := s.seasonRepo.CreateLeague(ctx, league); err != nil {
		return nil, fmt.Errorf("failed to create league: %w", err)
	}
	return league, nil
}

func (s *seasonService) ListLeagues(ctx context.Context) ([]*models.League, error) {
	return s.seasonRepo.ListLeagues(ctx)
}

func (s *seasonService) CreateSeason(ctx context.Context, input CreateSeasonInput) (*models.Season, error) {
	if err := validateSeasonInput(input); err != nil {
		return nil, err
	}

	season := &models.Season{
		LeagueID:  input.LeagueID,
		Name:      strings.TrimSpace(input.Name),
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		IsActive:  input.IsActive,
	}
	if err := s.seasonRepo.CreateSeason(ctx, season); err != nil {
		if errors.Is(err, repositories.ErrSeasonConflict) {
			return nil, fmt.Errorf("%w: season conflicts with an existing one", ErrValidationFailed)
		}
		return nil, fmt.Errorf("failed to create season: %w", err)
	}
	return season, nil
}

func (s *seasonService) GetSeasonByID(ctx context.Context, id int) (*models.Season, error) {
	season, err := s.seasonRepo.GetSeasonByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSeasonNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, err
	}
	return season, nil
}

func (s *seasonService) UpdateSeason(ctx context.Context, id int, input CreateSeasonInput) (*models.Season, error) {
	if err := validateSeasonInput(input); err != nil {
		return nil, err
	}

	season, err := s.GetSeasonByID(ctx, id)
	if err != nil {
		return nil, err
	}

	season.Name = strings.TrimSpace(input.Name)
	season.StartDate = input.StartDate
	season.EndDate = input.EndDate
	season.IsActive = input.IsActive

	if err := s.seasonRepo.UpdateSeason(ctx, season); err != nil {
		if errors.Is(err, repositories.ErrSeasonNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, err
	}
	return season, nil
}

func (s *seasonService) DeleteSeason(ctx context.Context, id int) error {
	if err := s.seasonRepo.DeleteSeason(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrSeasonNotFound) {
			return ErrSeasonNotFound
		}
		return err
	}
	return nil
}

func (s *seasonService) ListSeasonsByLeague(ctx context.Context, leagueID int) ([]*models.Season, error) {
	return s.seasonRepo.ListSeasonsByLeague(ctx, leagueID)
}

func validateSeasonInput(input CreateSeasonInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: season name is required", ErrValidationFailed)
	}
	if !input.EndDate.After(input.StartDate) {
		return fmt.Errorf("%w: season end date must be after start date", ErrValidationFailed)
	}
	return nil
}
