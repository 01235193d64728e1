package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/stepanovme/SupplyServiceApi/internal/services"
	"github.com/stepanovme/SupplyServiceApi/pkg/utils"
)

type CatalogController struct {
	catalogService services.CatalogServiceInterface
	logger         *zap.Logger
}

func NewCatalogController(catalogService services.CatalogServiceInterface, logger *zap.Logger) *CatalogController {
	return &CatalogController{catalogService: catalogService, logger: logger}
}

func (c *CatalogController) GetUnits(ctx echo.Context) error {
	units, err := c.catalogService.GetUnits(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, units, "Единицы измерения получены", http.StatusOK)
}

func (c *CatalogController) GetWarehouseCategories(ctx echo.Context) error {
	categories, err := c.catalogService.GetWarehouseCategories(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, categories, "Товарные категории получены", http.StatusOK)
}

func (c *CatalogController) GetNomenclature(ctx echo.Context) error {
	nomenclature, err := c.catalogService.GetNomenclature(ctx.Request().Context(), ctx.QueryParam("search"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nomenclature, "Номенклатура получена", http.StatusOK)
}
