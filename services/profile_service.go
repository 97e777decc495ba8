package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/hockey-club-system/models"
	"github.com/Dosada05/hockey-club-system/repositories"
)

type CreateProfileInput struct {
	ClubID        int     `json:"club_id"`
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	IsClubDefault bool    `json:"is_club_default"`
	IsActive      bool    `json:"is_active"`
}

type ProfileRuleInput struct {
	RuleID       int      `json:"rule_id"`
	CustomPoints *float64 `json:"custom_points"`
	IsEnabled    bool     `json:"is_enabled"`
}

type ProfileService interface {
	CreateProfile(ctx context.Context, input CreateProfileInput) (*models.RulesProfile, error)
	GetProfileByID(ctx context.Context, id int) (*models.RulesProfile, error)
	UpdateProfile(ctx context.Context, id int, input CreateProfileInput) (*models.RulesProfile, error)
	SetClubDefault(ctx context.Context, clubID, profileID int) error
	DeleteProfile(ctx context.Context, id int) error
	ListProfilesByClub(ctx context.Context, clubID int) ([]*models.RulesProfile, error)
	AttachRule(ctx context.Context, profileID int, input ProfileRuleInput) error
	UpdateProfileRule(ctx context.Context, profileID int, input ProfileRuleInput) error
	DetachRule(ctx context.Context, profileID, ruleID int) error
}

type profileService struct {
	db          *sql.DB
	profileRepo repositories.ProfileRepository
	ruleRepo    repositories.RuleRepository
	teamRepo    repositories.TeamRepository
	logger      *slog.Logger
}

func NewProfileService(
	db *sql.DB,
	profileRepo repositories.ProfileRepository,
	ruleRepo repositories.RuleRepository,
	teamRepo repositories.TeamRepository,
	logger *slog.Logger,
) ProfileService {
	return &profileService{db: db, profileRepo: profileRepo, ruleRepo: ruleRepo, teamRepo: teamRepo, logger: logger}
}

func (s *profileService) CreateProfile(ctx context.Context, input CreateProfileInput) (*models.RulesProfile, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: profile name is required", ErrValidationFailed)
	}

	profile := &models.RulesProfile{
		ClubID:        input.ClubID,
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		IsClubDefault: input.IsClubDefault,
		IsActive:      input.IsActive,
	}

	err := s.withTx(ctx, func(exec repositories.SQLExecutor) error {
		// At most one default per club: a new default unsets the old one.
		if profile.IsClubDefault {
			if err := s.profileRepo.UnsetClubDefault(ctx, exec, profile.ClubID); err != nil {
				return err
			}
		}
		return s.profileRepo.Create(ctx, exec, profile)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNameConflict) {
			return nil, ErrProfileNameConflict
		}
		return nil, err
	}
	return profile, nil
}

func (s *profileService) GetProfileByID(ctx context.Context, id int) (*models.RulesProfile, error) {
	profile, err := s.profileRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	rules, err := s.profileRepo.ListProfileRules(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules of profile %d: %w", id, err)
	}
	profile.Rules = rules
	return profile, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, id int, input CreateProfileInput) (*models.RulesProfile, error) {
	profile, err := s.GetProfileByID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile.Name = strings.TrimSpace(input.Name)
	profile.Description = input.Description
	profile.IsActive = input.IsActive

	err = s.withTx(ctx, func(exec repositories.SQLExecutor) error {
		if input.IsClubDefault && !profile.IsClubDefault {
			if err := s.profileRepo.UnsetClubDefault(ctx, exec, profile.ClubID); err != nil {
				return err
			}
		}
		profile.IsClubDefault = input.IsClubDefault
		return s.profileRepo.Update(ctx, exec, profile)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNameConflict) {
			return nil, ErrProfileNameConflict
		}
		return nil, err
	}
	return profile, nil
}

func (s *profileService) SetClubDefault(ctx context.Context, clubID, profileID int) error {
	profile, err := s.GetProfileByID(ctx, profileID)
	if err != nil {
		return err
	}
	if profile.ClubID != clubID {
		return ErrProfileWrongClub
	}

	return s.withTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.profileRepo.UnsetClubDefault(ctx, exec, clubID); err != nil {
			return err
		}
		return s.profileRepo.SetClubDefault(ctx, exec, profileID)
	})
}

// DeleteProfile enforces the two delete guards: a club default profile
// cannot be deleted at all, and a profile still referenced by a team's
// default_rules_profile_id cannot be deleted while referenced.
func (s *profileService) DeleteProfile(ctx context.Context, id int) error {
	profile, err := s.GetProfileByID(ctx, id)
	if err != nil {
		return err
	}
	if profile.IsClubDefault {
		return ErrProfileIsDefault
	}

	refs, err := s.teamRepo.CountByProfileID(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("failed to count team references of profile %d: %w", id, err)
	}
	if refs > 0 {
		return ErrProfileInUse
	}

	if err := s.profileRepo.Delete(ctx, nil, id); err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return ErrProfileNotFound
		}
		return err
	}
	return nil
}

func (s *profileService) ListProfilesByClub(ctx context.Context, clubID int) ([]*models.RulesProfile, error) {
	return s.profileRepo.ListByClubID(ctx, clubID)
}

func (s *profileService) AttachRule(ctx context.Context, profileID int, input ProfileRuleInput) error {
	if _, err := s.GetProfileByID(ctx, profileID); err != nil {
		return err
	}
	if _, err := s.ruleRepo.GetByID(ctx, input.RuleID); err != nil {
		if errors.Is(err, repositories.ErrRuleNotFound) {
			return ErrRuleNotFound
		}
		return err
	}
	return s.profileRepo.AttachRule(ctx, nil, &models.RulesProfileRule{
		ProfileID:    profileID,
		RuleID:       input.RuleID,
		CustomPoints: input.CustomPoints,
		IsEnabled:    input.IsEnabled,
	})
}

func (s *profileService) UpdateProfileRule(ctx context.Context, profileID int, input ProfileRuleInput) error {
	err := s.profileRepo.UpdateProfileRule(ctx, nil, &models.RulesProfileRule{
		ProfileID:    profileID,
		RuleID:       input.RuleID,
		CustomPoints: input.CustomPoints,
		IsEnabled:    input.IsEnabled,
	})
	if errors.Is(err, repositories.ErrProfileRuleNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *profileService) DetachRule(ctx context.Context, profileID, ruleID int) error {
	err := s.profileRepo.DetachRule(ctx, nil, profileID, ruleID)
	if errors.Is(err, repositories.ErrProfileRuleNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *profileService) withTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
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
