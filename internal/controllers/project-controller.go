package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/stepanovme/SupplyServiceApi/internal/dto"
	"github.com/stepanovme/SupplyServiceApi/internal/services"
	apperrors "github.com/stepanovme/SupplyServiceApi/pkg/errors"
	"github.com/stepanovme/SupplyServiceApi/pkg/utils"
)

type ProjectController struct {
	projectService services.ProjectServiceInterface
	logger         *zap.Logger
}

func NewProjectController(projectService services.ProjectServiceInterface, logger *zap.Logger) *ProjectController {
	return &ProjectController{projectService: projectService, logger: logger}
}

func (c *ProjectController) GetAll(ctx echo.Context) error {
	projects, err := c.projectService.GetAll(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, projects, "Проекты получены", http.StatusOK)
}

func (c *ProjectController) Create(ctx echo.Context) error {
	var payload dto.CreateProjectDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	project, err := c.projectService.Create(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, project, "Проект создан", http.StatusCreated)
}

func (c *ProjectController) Update(ctx echo.Context) error {
	var patch dto.UpdateProjectDTO
	if err := ctx.Bind(&patch); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}

	if err := c.projectService.Update(ctx.Request().Context(), ctx.Param("id"), patch); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Проект обновлён", http.StatusOK)
}
