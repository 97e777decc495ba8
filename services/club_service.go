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

type CreateClubInput struct {
	Name string  `json:"name"`
	City *string `json:"city"`
}

type ClubService interface {
	CreateClub(ctx context.Context, input CreateClubInput) (*models.Club, error)
	GetClubByID(ctx context.Context, id int) (*models.Club, error)
	UpdateClub(ctx context.Context, id int, input CreateClubInput) (*models.Club, error)
	DeleteClub(ctx context.Context, id int) error
	ListClubs(ctx context.Context) ([]*models.Club, error)
	UploadLogo(ctx context.Context, clubID int, contentType string, reader io.Reader) (*models.Club, error)
}

type clubService struct {
	clubRepo repositories.ClubRepository
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader
}

func NewClubService(clubRepo repositories.ClubRepository, teamRepo repositories.TeamRepository, uploader storage.FileUploader) ClubService {
	return &clubService{clubRepo: clubRepo, teamRepo: teamRepo, uploader: uploader}
}

func (s *clubService) CreateClub(ctx context.Context, input CreateClubInput) (*models.Club, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: club name is required", ErrValidationFailed)
	}

	club := &models.Club{
		Name: strings.TrimSpace(input.Name),
		City: input.City,
	}
	if err := s.clubRepo.Create(ctx, club); err != nil {
		if errors.Is(err, repositories.ErrClubNameConflict) {
			return nil, ErrClubNameConflict
		}
		return nil, fmt.Errorf("failed to create club: %w", err)
	}
	return club, nil
}

func (s *clubService) GetClubByID(ctx context.Context, id int) (*models.Club, error) {
	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}

	teams, err := s.teamRepo.ListByClubID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams of club %d: %w", id, err)
	}
	club.Teams = make([]models.Team, 0, len(teams))
	for _, team := range teams {
		s.populateTeamLogoURL(team)
		club.Teams = append(club.Teams, *team)
	}

	s.populateLogoURL(club)
	return club, nil
}

func (s *clubService) UpdateClub(ctx context.Context, id int, input CreateClubInput) (*models.Club, error) {
	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}

	club.Name = strings.TrimSpace(input.Name)
	club.City = input.City
	if err := s.clubRepo.Update(ctx, club); err != nil {
		if errors.Is(err, repositories.ErrClubNameConflict) {
			return nil, ErrClubNameConflict
		}
		return nil, err
	}
	s.populateLogoURL(club)
	return club, nil
}

func (s *clubService) DeleteClub(ctx context.Context, id int) error {
	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return ErrClubNotFound
		}
		return err
	}

	if err := s.clubRepo.Delete(ctx, id); err != nil {
		return err
	}
	if club.LogoKey != nil && s.uploader != nil {
		// Logo cleanup is best effort, the club row is already gone.
		_ = s.uploader.Delete(ctx, *club.LogoKey)
	}
	return nil
}

func (s *clubService) ListClubs(ctx context.Context) ([]*models.Club, error) {
	clubs, err := s.clubRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, club := range clubs {
		s.populateLogoURL(club)
	}
	return clubs, nil
}

func (s *clubService) UploadLogo(ctx context.Context, clubID int, contentType string, reader io.Reader) (*models.Club, error) {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	if s.uploader == nil {
		return nil, fmt.Errorf("%w: file storage is not configured", ErrValidationFailed)
	}

	key := fmt.Sprintf("clubs/%d/logo", clubID)
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload club logo: %w", err)
	}

	if err := s.clubRepo.UpdateLogoKey(ctx, clubID, &result.Key); err != nil {
		return nil, err
	}
	club.LogoKey = &result.Key
	s.populateLogoURL(club)
	return club, nil
}

func (s *clubService) populateLogoURL(club *models.Club) {
	if club.LogoKey != nil && s.uploader != nil {
		url := s.uploader.GetPublicURL(*club.LogoKey)
		club.LogoURL = &url
	}
}

func (s *clubService) populateTeamLogoURL(team *models.Team) {
	if team.LogoKey != nil && s.uploader != nil {
		url := s.uploader.GetPublicURL(*team.LogoKey)
		team.LogoURL = &url
	}
}
