package services

import (
	"context"

	"github.com/stepanovme/SupplyServiceApi/internal/dto"
	"github.com/stepanovme/SupplyServiceApi/internal/entities"
	"github.com/stepanovme/SupplyServiceApi/internal/repositories"
)

// CatalogServiceInterface - справочники для экранов выбора: единицы
// измерения, товарные категории и номенклатура.
type CatalogServiceInterface interface {
	GetUnits(ctx context.Context) ([]dto.UnitDTO, error)
	GetWarehouseCategories(ctx context.Context) ([]dto.WarehouseCategoryDTO, error)
	GetNomenclature(ctx context.Context, search string) ([]dto.NomenclatureDTO, error)
}

type catalogService struct {
	catalogRepo repositories.CatalogRepositoryInterface
}

func NewCatalogService(catalogRepo repositories.CatalogRepositoryInterface) CatalogServiceInterface {
	return &catalogService{catalogRepo: catalogRepo}
}

func (s *catalogService) GetUnits(ctx context.Context) ([]dto.UnitDTO, error) {
	units, err := s.catalogRepo.GetAllUnits(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.UnitDTO, 0, len(units))
	for _, unit := range units {
		result = append(result, dto.UnitDTO{ID: unit.ID, Name: unit.Name})
	}
	return result, nil
}

func (s *catalogService) GetWarehouseCategories(ctx context.Context) ([]dto.WarehouseCategoryDTO, error) {
	categories, err := s.catalogRepo.GetAllWarehouseCategories(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.WarehouseCategoryDTO, 0, len(categories))
	for _, category := range categories {
		result = append(result, *mapWarehouseCategory(category))
	}
	return result, nil
}

// GetNomenclature возвращает номенклатуру с вложенными единицей и
// категорией. Справочники маленькие, поэтому грузятся целиком и
// раскладываются в карты, без точечных дозапросов.
func (s *catalogService) GetNomenclature(ctx context.Context, search string) ([]dto.NomenclatureDTO, error) {
	nomenclature, err := s.catalogRepo.GetNomenclature(ctx, search)
	if err != nil {
		return nil, err
	}

	units, err := s.catalogRepo.GetAllUnits(ctx)
	if err != nil {
		return nil, err
	}
	unitByID := make(map[string]entities.UnitRef, len(units))
	for _, unit := range units {
		unitByID[unit.ID] = unit
	}

	categories, err := s.catalogRepo.GetAllWarehouseCategories(ctx)
	if err != nil {
		return nil, err
	}
	categoryByID := make(map[string]entities.WarehouseCategoryRef, len(categories))
	for _, category := range categories {
		categoryByID[category.ID] = category
	}

	result := make([]dto.NomenclatureDTO, 0, len(nomenclature))
	for _, n := range nomenclature {
		result = append(result, *mapNomenclature(n, unitByID, categoryByID))
	}
	return result, nil
}
