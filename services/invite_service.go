package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/hockey-club-system/models"
	"github.com/Dosada05/hockey-club-system/repositories"
	"github.com/google/uuid"
)

const inviteDuration = 7 * 24 * time.Hour

type InviteService interface {
	CreateInvite(ctx context.Context, teamID int) (*models.Invite, error)
	AcceptInvite(ctx context.Context, token string, userID int) (*models.Player, error)
	DeleteInvite(ctx context.Context, inviteID int) error
	CleanupExpired(ctx context.Context) (int64, error)
}

type inviteService struct {
	inviteRepo repositories.InviteRepository
	teamRepo   repositories.TeamRepository
	userRepo   repositories.UserRepository
	playerRepo repositories.PlayerRepository
}

func NewInviteService(
	inviteRepo repositories.InviteRepository,
	teamRepo repositories.TeamRepository,
	userRepo repositories.UserRepository,
	playerRepo repositories.PlayerRepository,
) InviteService {
	return &inviteService{
		inviteRepo: inviteRepo,
		teamRepo:   teamRepo,
		userRepo:   userRepo,
		playerRepo: playerRepo,
	}
}

func (s *inviteService) CreateInvite(ctx context.Context, teamID int) (*models.Invite, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	invite := &models.Invite{
		TeamID:    teamID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(inviteDuration),
	}
	if err := s.inviteRepo.Create(ctx, invite); err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}
	return invite, nil
}

// AcceptInvite links the accepting user to the invited team as a new
// player. The invite is single use and removed on success.
func (s *inviteService) AcceptInvite(ctx context.Context, token string, userID int) (*models.Player, error) {
	invite, err := s.inviteRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrInviteNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}
	if time.Now().After(invite.ExpiresAt) {
		return nil, ErrInviteExpired
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	player := &models.Player{
		TeamID:    invite.TeamID,
		UserID:    &user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Position:  models.PositionForward,
		IsActive:  true,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player from invite: %w", err)
	}

	if err := s.inviteRepo.Delete(ctx, invite.ID); err != nil {
		return nil, fmt.Errorf("failed to consume invite: %w", err)
	}
	return player, nil
}

func (s *inviteService) DeleteInvite(ctx context.Context, inviteID int) error {
	if err := s.inviteRepo.Delete(ctx, inviteID); err != nil {
		if errors.Is(err, repositories.ErrInviteNotFound) {
			return ErrInviteNotFound
		}
		return err
	}
	return nil
}

func (s *inviteService) CleanupExpired(ctx context.Context) (int64, error) {
	return s.inviteRepo.DeleteExpired(ctx)
}
