package dto

import "github.com/aarondl/null/v8"

// RequestItemDTO - позиция заявки с вложенной номенклатурой.
// Вложенные объекты равны null, если ссылка не разрешилась.
type RequestItemDTO struct {
	ID                string                `json:"id"`
	RequestID         int64                 `json:"request_id"`
	Num               int                   `json:"num"`
	Name              null.String           `json:"name"`
	Quantity          float64               `json:"quantity"`
	Comment           null.String           `json:"comment"`
	Nomenclature      *NomenclatureDTO      `json:"nomenclature"`
	Unit              *UnitDTO              `json:"unit"`
	WarehouseCategory *WarehouseCategoryDTO `json:"warehouse_category"`
}

// FlatRequestItemDTO - плоский ответ операций create/update позиции.
type FlatRequestItemDTO struct {
	ID                  string      `json:"id"`
	RequestID           int64       `json:"request_id"`
	Num                 int         `json:"num"`
	NomenclatureID      null.String `json:"nomenclature_id"`
	Name                null.String `json:"name"`
	UnitID              null.String `json:"unit_id"`
	Quantity            float64     `json:"quantity"`
	WarehouseCategoryID null.String `json:"warehouse_category_id"`
	Comment             null.String `json:"comment"`
}

type CreateRequestItemDTO struct {
	Num                 *int     `json:"num,omitempty"`
	NomenclatureID      *string  `json:"nomenclature_id,omitempty"`
	Name                *string  `json:"name,omitempty"`
	UnitID              *string  `json:"unit_id,omitempty"`
	Quantity            *float64 `json:"quantity,omitempty"`
	WarehouseCategoryID *string  `json:"warehouse_category_id,omitempty"`
	Comment             *string  `json:"comment,omitempty"`
}

type UpdateRequestItemDTO struct {
	Num                 *int     `json:"num,omitempty"`
	NomenclatureID      *string  `json:"nomenclature_id,omitempty"`
	Name                *string  `json:"name,omitempty"`
	UnitID              *string  `json:"unit_id,omitempty"`
	Quantity            *float64 `json:"quantity,omitempty"`
	WarehouseCategoryID *string  `json:"warehouse_category_id,omitempty"`
	Comment             *string  `json:"comment,omitempty"`
}
