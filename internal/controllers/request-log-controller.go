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

// RequestLogController - согласующие заявки.
type RequestLogController struct {
	logService services.RequestLogServiceInterface
	logger     *zap.Logger
}

func NewRequestLogController(logService services.RequestLogServiceInterface, logger *zap.Logger) *RequestLogController {
	return &RequestLogController{logService: logService, logger: logger}
}

func (c *RequestLogController) Create(ctx echo.Context) error {
	requestID, err := parseRequestID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CreateRequestLogDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	log, err := c.logService.Create(ctx.Request().Context(), requestID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, log, "Согласующий добавлен", http.StatusCreated)
}

func (c *RequestLogController) Update(ctx echo.Context) error {
	requestID, err := parseRequestID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var patch dto.UpdateRequestLogDTO
	if err := ctx.Bind(&patch); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(&patch); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	log, err := c.logService.Update(ctx.Request().Context(), requestID, ctx.Param("logId"), patch)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, log, "Запись согласования обновлена", http.StatusOK)
}

func (c *RequestLogController) Delete(ctx echo.Context) error {
	requestID, err := parseRequestID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.logService.Delete(ctx.Request().Context(), requestID, ctx.Param("logId")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Запись согласования удалена", http.StatusOK)
}
