package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/stepanovme/SupplyServiceApi/internal/dto"
	"github.com/stepanovme/SupplyServiceApi/internal/entities"
	"github.com/stepanovme/SupplyServiceApi/internal/repositories"
	"github.com/stepanovme/SupplyServiceApi/pkg/constants"
	apperrors "github.com/stepanovme/SupplyServiceApi/pkg/errors"
	"github.com/stepanovme/SupplyServiceApi/pkg/utils"
)

type ProjectUserRoleServiceInterface interface {
	GetAll(ctx context.Context) ([]dto.ProjectUserRoleDTO, error)
	Create(ctx context.Context, payload dto.CreateProjectUserRoleDTO) (dto.ProjectUserRoleDTO, error)
	Delete(ctx context.Context, id string) error
}

type projectUserRoleService struct {
	roleRepo repositories.ProjectUserRoleRepositoryInterface
	authRepo repositories.AuthUserRepositoryInterface
}

func NewProjectUserRoleService(
	roleRepo repositories.ProjectUserRoleRepositoryInterface,
	authRepo repositories.AuthUserRepositoryInterface,
) ProjectUserRoleServiceInterface {
	return &projectUserRoleService{roleRepo: roleRepo, authRepo: authRepo}
}

func (s *projectUserRoleService) GetAll(ctx context.Context) ([]dto.ProjectUserRoleDTO, error) {
	grants, err := s.roleRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(grants))
	for _, grant := range grants {
		userIDs = append(userIDs, grant.UserID)
	}
	users, err := s.authRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	userByID := make(map[string]entities.AuthUser, len(users))
	for _, user := range users {
		userByID[user.ID] = user
	}

	result := make([]dto.ProjectUserRoleDTO, 0, len(grants))
	for _, grant := range grants {
		view := dto.ProjectUserRoleDTO{
			ID:             grant.ID,
			ObjectLevelsID: grant.ObjectLevelsID,
			UserID:         grant.UserID,
			Role:           grant.Role,
		}
		if user, ok := userByID[grant.UserID]; ok {
			view.User = &dto.ShortUserDTO{
				ID:      user.ID,
				Name:    utils.SafeDeref(user.Name),
				Surname: utils.SafeDeref(user.Surname),
			}
		}
		result = append(result, view)
	}
	return result, nil
}

func (s *projectUserRoleService) Create(ctx context.Context, payload dto.CreateProjectUserRoleDTO) (dto.ProjectUserRoleDTO, error) {
	if !isKnownRole(payload.Role) {
		return dto.ProjectUserRoleDTO{}, apperrors.NewInvalidInputError("недопустимая роль %q", payload.Role)
	}

	grant := entities.ProjectUserRole{
		ID:             uuid.NewString(),
		ObjectLevelsID: payload.ObjectLevelsID,
		UserID:         payload.UserID,
		Role:           payload.Role,
	}
	if payload.ID != nil {
		grant.ID = *payload.ID
	}

	if err := s.roleRepo.Create(ctx, grant); err != nil {
		return dto.ProjectUserRoleDTO{}, err
	}
	return dto.ProjectUserRoleDTO{
		ID:             grant.ID,
		ObjectLevelsID: grant.ObjectLevelsID,
		UserID:         grant.UserID,
		Role:           grant.Role,
	}, nil
}

func (s *projectUserRoleService) Delete(ctx context.Context, id string) error {
	return s.roleRepo.Delete(ctx, id)
}

func isKnownRole(role string) bool {
	for _, known := range constants.ProjectUserRoles {
		if role == known {
			return true
		}
	}
	return false
}
