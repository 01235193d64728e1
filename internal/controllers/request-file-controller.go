package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/stepanovme/SupplyServiceApi/internal/services"
	apperrors "github.com/stepanovme/SupplyServiceApi/pkg/errors"
	"github.com/stepanovme/SupplyServiceApi/pkg/utils"
)

type RequestFileController struct {
	fileService services.RequestFileServiceInterface
	logger      *zap.Logger
}

func NewRequestFileController(fileService services.RequestFileServiceInterface, logger *zap.Logger) *RequestFileController {
	return &RequestFileController{fileService: fileService, logger: logger}
}

func (c *RequestFileController) Upload(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	requestID, err := parseRequestID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("файл не передан"), c.logger)
	}
	var description *string
	if value := ctx.FormValue("description"); value != "" {
		description = &value
	}

	uploaded, err := c.fileService.Upload(ctx.Request().Context(), requestID, userID, fileHeader, description)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, uploaded, "Файл загружен", http.StatusCreated)
}

func (c *RequestFileController) List(ctx echo.Context) error {
	requestID, err := parseRequestID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	files, err := c.fileService.List(ctx.Request().Context(), requestID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, files, "Вложения получены", http.StatusOK)
}

func (c *RequestFileController) Download(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	requestID, err := parseRequestID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	payload, err := c.fileService.Download(ctx.Request().Context(), requestID, ctx.Param("fileId"), userID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.Attachment(payload.Path, payload.Filename)
}

func (c *RequestFileController) Delete(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	requestID, err := parseRequestID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.fileService.Delete(ctx.Request().Context(), requestID, ctx.Param("fileId"), userID); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Вложение удалено", http.StatusOK)
}
