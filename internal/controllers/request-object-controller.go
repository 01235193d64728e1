package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/stepanovme/SupplyServiceApi/internal/services"
	"github.com/stepanovme/SupplyServiceApi/pkg/utils"
)

type RequestObjectController struct {
	objectService services.RequestObjectServiceInterface
	logger        *zap.Logger
}

func NewRequestObjectController(objectService services.RequestObjectServiceInterface, logger *zap.Logger) *RequestObjectController {
	return &RequestObjectController{objectService: objectService, logger: logger}
}

func (c *RequestObjectController) GetAll(ctx echo.Context) error {
	objects, err := c.objectService.GetAll(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, objects, "Объекты заявок получены", http.StatusOK)
}

func (c *RequestObjectController) GetMy(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	objects, err := c.objectService.GetAvailableForUser(ctx.Request().Context(), userID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, objects, "Объекты заявок получены", http.StatusOK)
}
