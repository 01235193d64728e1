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

type ProjectUserRoleController struct {
	roleService services.ProjectUserRoleServiceInterface
	logger      *zap.Logger
}

func NewProjectUserRoleController(roleService services.ProjectUserRoleServiceInterface, logger *zap.Logger) *ProjectUserRoleController {
	return &ProjectUserRoleController{roleService: roleService, logger: logger}
}

func (c *ProjectUserRoleController) GetAll(ctx echo.Context) error {
	grants, err := c.roleService.GetAll(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, grants, "Роли получены", http.StatusOK)
}

func (c *ProjectUserRoleController) Create(ctx echo.Context) error {
	var payload dto.CreateProjectUserRoleDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	grant, err := c.roleService.Create(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, grant, "Роль выдана", http.StatusCreated)
}

func (c *ProjectUserRoleController) Delete(ctx echo.Context) error {
	if err := c.roleService.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Роль отозвана", http.StatusOK)
}
