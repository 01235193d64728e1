package dto

import "github.com/aarondl/null/v8"

type UnitDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type WarehouseCategoryDTO struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	ParentID null.String `json:"parent_id"`
}

// NomenclatureDTO - позиция номенклатурного справочника с вложенными
// единицей измерения и товарной категорией.
type NomenclatureDTO struct {
	ID                  string                `json:"id"`
	Name                string                `json:"name"`
	Description         null.String           `json:"description"`
	Article             null.String           `json:"article"`
	UnitID              string                `json:"unit_id"`
	WarehouseCategoryID string                `json:"warehouse_category_id"`
	Unit                *UnitDTO              `json:"unit"`
	WarehouseCategory   *WarehouseCategoryDTO `json:"warehouse_category"`
	Length              null.Float64          `json:"length"`
	Width               null.Float64          `json:"width"`
	Height              null.Float64          `json:"height"`
	Weight              null.Float64          `json:"weight"`
	CreatedAt           null.Time             `json:"created_at,omitempty"`
}

type ShortStatusDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
