package services

import (
	"context"

	"github.com/aarondl/null/v8"

	"github.com/stepanovme/SupplyServiceApi/internal/dto"
	"github.com/stepanovme/SupplyServiceApi/internal/repositories"
	"github.com/stepanovme/SupplyServiceApi/pkg/constants"
)

// RequestObjectServiceInterface - список уровней, на которые можно
// заводить заявки, с собранными именами проектов.
type RequestObjectServiceInterface interface {
	GetAll(ctx context.Context) ([]dto.RequestObjectDTO, error)
	GetAvailableForUser(ctx context.Context, userID string) ([]dto.RequestObjectDTO, error)
}

type requestObjectService struct {
	refRepo     repositories.ReferenceRepositoryInterface
	roleRepo    repositories.ProjectUserRoleRepositoryInterface
	projectRepo repositories.ProjectRepositoryInterface
}

func NewRequestObjectService(
	refRepo repositories.ReferenceRepositoryInterface,
	roleRepo repositories.ProjectUserRoleRepositoryInterface,
	projectRepo repositories.ProjectRepositoryInterface,
) RequestObjectServiceInterface {
	return &requestObjectService{
		refRepo:     refRepo,
		roleRepo:    roleRepo,
		projectRepo: projectRepo,
	}
}

func (s *requestObjectService) GetAll(ctx context.Context) ([]dto.RequestObjectDTO, error) {
	levelIDs, err := s.refRepo.GetLevelIDsByType(ctx, constants.LevelTypeWorkType)
	if err != nil {
		return nil, err
	}
	return s.nameLevels(ctx, levelIDs)
}

// GetAvailableForUser показывает уровни, выданные пользователю под
// ролью "Requester". Порядок выдачи сохраняется.
func (s *requestObjectService) GetAvailableForUser(ctx context.Context, userID string) ([]dto.RequestObjectDTO, error) {
	levelIDs, err := s.roleRepo.GetObjectLevelIDsByUserAndRole(ctx, userID, constants.RoleRequester)
	if err != nil {
		return nil, err
	}
	return s.nameLevels(ctx, levelIDs)
}

// nameLevels отбрасывает дубликаты (первое вхождение остаётся),
// неизвестные уровни и уровни объектов без активного проекта, затем
// строит имя для каждого оставшегося.
func (s *requestObjectService) nameLevels(ctx context.Context, levelIDs []string) ([]dto.RequestObjectDTO, error) {
	ordered := uniqueOrdered(levelIDs)

	maps, err := LoadProjectReferenceMaps(ctx, s.refRepo, ordered)
	if err != nil {
		return nil, err
	}

	objectIDs := make([]string, 0, len(ordered))
	for _, id := range ordered {
		if level, ok := maps.Levels[id]; ok {
			objectIDs = append(objectIDs, level.ObjectID)
		}
	}
	activeObjects, err := s.projectRepo.GetActiveObjectIDs(ctx, objectIDs)
	if err != nil {
		return nil, err
	}

	result := make([]dto.RequestObjectDTO, 0, len(ordered))
	for _, id := range ordered {
		level, ok := maps.Levels[id]
		if !ok {
			continue
		}
		if _, active := activeObjects[level.ObjectID]; !active {
			continue
		}
		result = append(result, dto.RequestObjectDTO{
			ID:   id,
			Name: null.StringFromPtr(BuildProjectName(id, maps)),
		})
	}
	return result, nil
}

func uniqueOrdered(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	ordered := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ordered = append(ordered, id)
	}
	return ordered
}
