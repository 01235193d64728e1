package entities

import "time"

// SupplyRequest - заявка на снабжение.
type SupplyRequest struct {
	ID             int64      `json:"id"`
	ObjectLevelsID string     `json:"object_levels_id"`
	Name           *string    `json:"name"`
	Comment        *string    `json:"comment"`
	CreatedBy      string     `json:"created_by"`
	Executor       *string    `json:"executor"`
	StatusID       string     `json:"status_id"`
	CreatedAt      time.Time  `json:"created_at"`
	StartedAt      *time.Time `json:"started_at"`
	ApprovedAt     *time.Time `json:"approved_at"`
	RejectedAt     *time.Time `json:"rejected_at"`
	CompletedAt    *time.Time `json:"completed_at"`
	Deadline       *time.Time `json:"deadline"`
}

// RequestItem - позиция заявки. num - порядковый номер внутри заявки,
// начинается с 1.
type RequestItem struct {
	ID                  string   `json:"id"`
	RequestID           int64    `json:"request_id"`
	Num                 int      `json:"num"`
	NomenclatureID      *string  `json:"nomenclature_id"`
	Name                *string  `json:"name"`
	UnitID              *string  `json:"unit_id"`
	Quantity            float64  `json:"quantity"`
	WarehouseCategoryID *string  `json:"warehouse_category_id"`
	Comment             *string  `json:"comment"`
}

// RequestLog - запись о согласовании заявки пользователем.
// request_id хранится как BIGINT, в отличие от исходной схемы,
// где он был строкой.
type RequestLog struct {
	ID           string     `json:"id"`
	RequestID    int64      `json:"request_id"`
	UserID       string     `json:"user_id"`
	StatusName   string     `json:"status_name"`
	DateResponse *time.Time `json:"date_response"`
}

type StatusRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UnitRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type NomenclatureRef struct {
	ID                  string    `json:"id"`
	WarehouseCategoryID string    `json:"warehouse_category_id"`
	Name                string    `json:"name"`
	Description         *string   `json:"description"`
	Article             *string   `json:"article"`
	UnitID              string    `json:"unit_id"`
	Length              *float64  `json:"length"`
	Width               *float64  `json:"width"`
	Height              *float64  `json:"height"`
	Weight              *float64  `json:"weight"`
	CreatedAt           time.Time `json:"created_at"`
}

// WarehouseCategoryRef - товарная категория. parent_id образует дерево,
// но при построении имён проектов оно не обходится.
type WarehouseCategoryRef struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id"`
}
