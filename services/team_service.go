package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Dosada05/hockey-club-system/models"
	"github.com/Dosada05/hockey-club-system/repositories"
	"github.com/Dosada05/hockey-club-system/storage"
)

type CreateTeamInput struct {
	ClubID   int    `json:"club_id"`
	Name     string `json:"name"`
	SeasonID *int   `json:"season_id"`
}

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	UpdateTeam(ctx context.Context, id int, input CreateTeamInput) (*models.Team, error)
	SetDefaultRulesProfile(ctx context.Context, teamID int, profileID *int) error
	DeleteTeam(ctx context.Context, id int) error
	ListTeamsByClub(ctx context.Context, clubID int) ([]*models.Team, error)
	UploadLogo(ctx context.Context, teamID int, contentType string, reader io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo    repositories.TeamRepository
	clubRepo    repositories.ClubRepository
	playerRepo  repositories.PlayerRepository
	profileRepo repositories.ProfileRepository
	uploader    storage.FileUploader
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	clubRepo repositories.ClubRepository,
	playerRepo repositories.PlayerRepository,
	profileRepo repositories.ProfileRepository,
	uploader storage.FileUploader,
) TeamService {
	return &teamService{
		teamRepo:    teamRepo,
		clubRepo:    clubRepo,
		playerRepo:  playerRepo,
		profileRepo: profileRepo,
		uploader:    uploader,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrValidationFailed)
	}
	if _, err := s.clubRepo.GetByID(ctx, input.ClubID); err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}

	team := &models.Team{
		ClubID:   input.ClubID,
		Name:     strings.TrimSpace(input.Name),
		SeasonID: input.SeasonID,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	players, err := s.playerRepo.ListByTeamID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list players of team %d: %w", id, err)
	}
	team.Players = make([]models.Player, 0, len(players))
	for _, p := range players {
		team.Players = append(team.Players, *p)
	}

	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, id int, input CreateTeamInput) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	team.Name = strings.TrimSpace(input.Name)
	team.SeasonID = input.SeasonID
	if err := s.teamRepo.Update(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, err
	}
	s.populateLogoURL(team)
	return team, nil
}

// SetDefaultRulesProfile points the team at a profile of its own club,
// or clears the override when profileID is nil so scoring falls back to
// the club default.
func (s *teamService) SetDefaultRulesProfile(ctx context.Context, teamID int, profileID *int) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return err
	}

	if profileID != nil {
		profile, err := s.profileRepo.GetByID(ctx, nil, *profileID)
		if err != nil {
			if errors.Is(err, repositories.ErrProfileNotFound) {
				return ErrProfileNotFound
			}
			return err
		}
		if profile.ClubID != team.ClubID {
			return ErrProfileWrongClub
		}
	}

	if err := s.teamRepo.SetDefaultRulesProfile(ctx, teamID, profileID); err != nil {
		if errors.Is(err, repositories.ErrTeamProfileInvalid) {
			return ErrProfileNotFound
		}
		return err
	}
	return nil
}

func (s *teamService) DeleteTeam(ctx context.Context, id int) error {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return err
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return err
	}
	if team.LogoKey != nil && s.uploader != nil {
		_ = s.uploader.Delete(ctx, *team.LogoKey)
	}
	return nil
}

func (s *teamService) ListTeamsByClub(ctx context.Context, clubID int) ([]*models.Team, error) {
	teams, err := s.teamRepo.ListByClubID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	for _, team := range teams {
		s.populateLogoURL(team)
	}
	return teams, nil
}

func (s *teamService) UploadLogo(ctx context.Context, teamID int, contentType string, reader io.Reader) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if s.uploader == nil {
		return nil, fmt.Errorf("%w: file storage is not configured", ErrValidationFailed)
	}

	key := fmt.Sprintf("teams/%d/logo", teamID)
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload team logo: %w", err)
	}

	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, &result.Key); err != nil {
		return nil, err
	}
	team.LogoKey = &result.Key
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) populateLogoURL(team *models.Team) {
	if team.LogoKey != nil && s.uploader != nil {
		url := s.uploader.GetPublicURL(*team.LogoKey)
		team.LogoURL = &url
	}
}
