package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/stepanovme/SupplyServiceApi/internal/dto"
	"github.com/stepanovme/SupplyServiceApi/internal/services"
	apperrors "github.com/stepanovme/SupplyServiceApi/pkg/errors"
	"github.com/stepanovme/SupplyServiceApi/pkg/utils"
)

type RequestController struct {
	requestService services.RequestServiceInterface
	reportService  services.ReportServiceInterface
	logger         *zap.Logger
}

func NewRequestController(
	requestService services.RequestServiceInterface,
	reportService services.ReportServiceInterface,
	logger *zap.Logger,
) *RequestController {
	return &RequestController{
		requestService: requestService,
		reportService:  reportService,
		logger:         logger,
	}
}

func (c *RequestController) GetAll(ctx echo.Context) error {
	views, err := c.requestService.GetAll(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, views, "Заявки получены", http.StatusOK)
}

func (c *RequestController) GetMy(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	views, err := c.requestService.GetAvailableForUser(ctx.Request().Context(), userID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, views, "Заявки получены", http.StatusOK)
}

func (c *RequestController) GetByID(ctx echo.Context) error {
	id, err := parseRequestID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	view, err := c.requestService.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, view, "Заявка получена", http.StatusOK)
}

func (c *RequestController) GetMyByID(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := parseRequestID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	view, err := c.requestService.GetAvailableForUserByID(ctx.Request().Context(), userID, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, view, "Заявка получена", http.StatusOK)
}

func (c *RequestController) Create(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CreateRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	view, err := c.requestService.Create(ctx.Request().Context(), payload, userID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, view, "Заявка создана", http.StatusCreated)
}

func (c *RequestController) Update(ctx echo.Context) error {
	id, err := parseRequestID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var patch dto.UpdateRequestDTO
	if err := ctx.Bind(&patch); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}

	view, err := c.requestService.Update(ctx.Request().Context(), id, patch)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, view, "Заявка обновлена", http.StatusOK)
}

// Export отдаёт реестр заявок одной XLSX-книгой.
func (c *RequestController) Export(ctx echo.Context) error {
	book, err := c.reportService.ExportRequests(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="requests.xlsx"`)
	ctx.Response().WriteHeader(http.StatusOK)

	if _, err := book.WriteTo(ctx.Response()); err != nil {
		c.logger.Error("ошибка записи XLSX в ответ", zap.Error(err))
		return err
	}
	return nil
}

func parseRequestID(ctx echo.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewInvalidInputError("некорректный ID заявки: %s", ctx.Param("id"))
	}
	return id, nil
}
