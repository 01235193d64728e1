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

type RequestItemController struct {
	itemService services.RequestItemServiceInterface
	logger      *zap.Logger
}

func NewRequestItemController(itemService services.RequestItemServiceInterface, logger *zap.Logger) *RequestItemController {
	return &RequestItemController{itemService: itemService, logger: logger}
}

func (c *RequestItemController) Create(ctx echo.Context) error {
	requestID, err := parseRequestID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CreateRequestItemDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}

	item, err := c.itemService.Create(ctx.Request().Context(), requestID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, item, "Позиция добавлена", http.StatusCreated)
}

func (c *RequestItemController) Update(ctx echo.Context) error {
	requestID, err := parseRequestID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var patch dto.UpdateRequestItemDTO
	if err := ctx.Bind(&patch); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}

	item, err := c.itemService.Update(ctx.Request().Context(), requestID, ctx.Param("itemId"), patch)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, item, "Позиция обновлена", http.StatusOK)
}
