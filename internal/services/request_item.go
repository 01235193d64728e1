package services

import (
	"context"
	"errors"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"github.com/stepanovme/SupplyServiceApi/internal/dto"
	"github.com/stepanovme/SupplyServiceApi/internal/entities"
	"github.com/stepanovme/SupplyServiceApi/internal/repositories"
	apperrors "github.com/stepanovme/SupplyServiceApi/pkg/errors"
)

type RequestItemServiceInterface interface {
	Create(ctx context.Context, requestID int64, payload dto.CreateRequestItemDTO) (dto.FlatRequestItemDTO, error)
	Update(ctx context.Context, requestID int64, itemID string, patch dto.UpdateRequestItemDTO) (dto.FlatRequestItemDTO, error)
}

type requestItemService struct {
	requestRepo repositories.RequestRepositoryInterface
}

func NewRequestItemService(requestRepo repositories.RequestRepositoryInterface) RequestItemServiceInterface {
	return &requestItemService{requestRepo: requestRepo}
}

// Create добавляет позицию. num по умолчанию - следующий свободный
// номер в заявке, количество - 1.0. Если указана номенклатура, пустые
// unit_id, warehouse_category_id и name наследуются от неё.
func (s *requestItemService) Create(ctx context.Context, requestID int64, payload dto.CreateRequestItemDTO) (dto.FlatRequestItemDTO, error) {
	exists, err := s.requestRepo.RequestExists(ctx, requestID)
	if err != nil {
		return dto.FlatRequestItemDTO{}, err
	}
	if !exists {
		return dto.FlatRequestItemDTO{}, apperrors.ErrNotFound
	}

	item := entities.RequestItem{
		ID:                  uuid.NewString(),
		RequestID:           requestID,
		NomenclatureID:      payload.NomenclatureID,
		Name:                payload.Name,
		UnitID:              payload.UnitID,
		Quantity:            1.0,
		WarehouseCategoryID: payload.WarehouseCategoryID,
		Comment:             payload.Comment,
	}
	if payload.Quantity != nil {
		item.Quantity = *payload.Quantity
	}

	if payload.NomenclatureID != nil {
		nomenclature, err := s.requestRepo.FindNomenclature(ctx, *payload.NomenclatureID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return dto.FlatRequestItemDTO{}, apperrors.NewInvalidInputError("номенклатура %s не найдена", *payload.NomenclatureID)
			}
			return dto.FlatRequestItemDTO{}, err
		}
		if item.UnitID == nil {
			item.UnitID = &nomenclature.UnitID
		}
		if item.WarehouseCategoryID == nil {
			item.WarehouseCategoryID = &nomenclature.WarehouseCategoryID
		}
		if item.Name == nil {
			item.Name = &nomenclature.Name
		}
	}

	if payload.Num != nil {
		item.Num = *payload.Num
	} else {
		num, err := s.requestRepo.NextItemNum(ctx, requestID)
		if err != nil {
			return dto.FlatRequestItemDTO{}, err
		}
		item.Num = num
	}

	if err := s.requestRepo.CreateItem(ctx, item); err != nil {
		return dto.FlatRequestItemDTO{}, err
	}
	return flattenItem(item), nil
}

func (s *requestItemService) Update(ctx context.Context, requestID int64, itemID string, patch dto.UpdateRequestItemDTO) (dto.FlatRequestItemDTO, error) {
	item, err := s.requestRepo.FindItem(ctx, requestID, itemID)
	if err != nil {
		return dto.FlatRequestItemDTO{}, err
	}

	if patch.NomenclatureID != nil {
		if _, err := s.requestRepo.FindNomenclature(ctx, *patch.NomenclatureID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return dto.FlatRequestItemDTO{}, apperrors.NewInvalidInputError("номенклатура %s не найдена", *patch.NomenclatureID)
			}
			return dto.FlatRequestItemDTO{}, err
		}
		item.NomenclatureID = patch.NomenclatureID
	}
	if patch.Num != nil {
		item.Num = *patch.Num
	}
	if patch.Name != nil {
		item.Name = patch.Name
	}
	if patch.UnitID != nil {
		item.UnitID = patch.UnitID
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.WarehouseCategoryID != nil {
		item.WarehouseCategoryID = patch.WarehouseCategoryID
	}
	if patch.Comment != nil {
		item.Comment = patch.Comment
	}

	if err := s.requestRepo.SaveItem(ctx, item); err != nil {
		return dto.FlatRequestItemDTO{}, err
	}
	return flattenItem(item), nil
}

func flattenItem(item entities.RequestItem) dto.FlatRequestItemDTO {
	return dto.FlatRequestItemDTO{
		ID:                  item.ID,
		RequestID:           item.RequestID,
		Num:                 item.Num,
		NomenclatureID:      null.StringFromPtr(item.NomenclatureID),
		Name:                null.StringFromPtr(item.Name),
		UnitID:              null.StringFromPtr(item.UnitID),
		Quantity:            item.Quantity,
		WarehouseCategoryID: null.StringFromPtr(item.WarehouseCategoryID),
		Comment:             null.StringFromPtr(item.Comment),
	}
}
