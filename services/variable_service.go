package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Dosada05/hockey-club-system/models"
	"github.com/Dosada05/hockey-club-system/repositories"
)

type VariableService interface {
	CreateVariable(ctx context.Context, variable *models.Variable) error
	UpdateVariable(ctx context.Context, variable *models.Variable) error
	DeleteVariable(ctx context.Context, id int) error
	ListVariables(ctx context.Context) ([]*models.Variable, error)
}

type variableService struct {
	variableRepo repositories.VariableRepository
}

func NewVariableService(variableRepo repositories.VariableRepository) VariableService {
	return &variableService{variableRepo: variableRepo}
}

func (s *variableService) CreateVariable(ctx context.Context, variable *models.Variable) error {
	variable.Key = strings.TrimSpace(variable.Key)
	if variable.Key == "" {
		return ErrVariableKeyRequired
	}
	if isBuiltinKey(variable.Key) {
		return ErrVariableKeyConflict
	}
	variable.IsBuiltin = false

	if err := s.variableRepo.Create(ctx, variable); err != nil {
		if errors.Is(err, repositories.ErrVariableKeyConflict) {
			return ErrVariableKeyConflict
		}
		return err
	}
	return nil
}

func (s *variableService) UpdateVariable(ctx context.Context, variable *models.Variable) error {
	existing, err := s.variableRepo.GetByKey(ctx, variable.Key)
	if err != nil {
		if errors.Is(err, repositories.ErrVariableNotFound) {
			return ErrVariableNotFound
		}
		return err
	}
	if existing.IsBuiltin {
		return ErrVariableBuiltinLocked
	}

	variable.ID = existing.ID
	if err := s.variableRepo.Update(ctx, variable); err != nil {
		if errors.Is(err, repositories.ErrVariableNotFound) {
			return ErrVariableNotFound
		}
		return err
	}
	return nil
}

func (s *variableService) DeleteVariable(ctx context.Context, id int) error {
	if err := s.variableRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrVariableNotFound) {
			return ErrVariableNotFound
		}
		return err
	}
	return nil
}

func (s *variableService) ListVariables(ctx context.Context) ([]*models.Variable, error) {
	return s.variableRepo.ListActive(ctx)
}
