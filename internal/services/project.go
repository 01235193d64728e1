package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/stepanovme/SupplyServiceApi/internal/dto"
	"github.com/stepanovme/SupplyServiceApi/internal/entities"
	"github.com/stepanovme/SupplyServiceApi/internal/repositories"
)

type ProjectServiceInterface interface {
	GetAll(ctx context.Context) ([]dto.ProjectDTO, error)
	Create(ctx context.Context, payload dto.CreateProjectDTO) (dto.ProjectDTO, error)
	Update(ctx context.Context, id string, patch dto.UpdateProjectDTO) error
}

type projectService struct {
	projectRepo repositories.ProjectRepositoryInterface
}

func NewProjectService(projectRepo repositories.ProjectRepositoryInterface) ProjectServiceInterface {
	return &projectService{projectRepo: projectRepo}
}

func (s *projectService) GetAll(ctx context.Context) ([]dto.ProjectDTO, error) {
	projects, err := s.projectRepo.GetAllProjects(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ProjectDTO, 0, len(projects))
	for _, project := range projects {
		result = append(result, dto.ProjectDTO(project))
	}
	return result, nil
}

// Create заводит проект. Новый проект активен и не скрыт, если явно не
// указано иное.
func (s *projectService) Create(ctx context.Context, payload dto.CreateProjectDTO) (dto.ProjectDTO, error) {
	project := entities.Project{
		ID:       uuid.NewString(),
		ObjectID: payload.ObjectID,
		IsHide:   false,
		IsActive: true,
	}
	if payload.ID != nil {
		project.ID = *payload.ID
	}
	if payload.IsHide != nil {
		project.IsHide = *payload.IsHide
	}
	if payload.IsActive != nil {
		project.IsActive = *payload.IsActive
	}

	if err := s.projectRepo.CreateProject(ctx, project); err != nil {
		return dto.ProjectDTO{}, err
	}
	return dto.ProjectDTO(project), nil
}

func (s *projectService) Update(ctx context.Context, id string, patch dto.UpdateProjectDTO) error {
	updates := map[string]interface{}{}
	if patch.IsHide != nil {
		updates["is_hide"] = *patch.IsHide
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}
	return s.projectRepo.UpdateProject(ctx, id, updates)
}
