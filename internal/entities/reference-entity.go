package entities

import "time"

// ObjectLevel - один уровень иерархии физического объекта строительства.
// Уровни образуют лес: parent_id ведёт вверх по цепочке до корня.
type ObjectLevel struct {
	ID          string  `json:"id"`
	ObjectID    string  `json:"object_id"`
	Name        *string `json:"name"`
	LevelType   string  `json:"level_type"`
	LevelNumber int     `json:"level_number"`
	WorkType    *string `json:"work_type"`
	ContractID  *string `json:"contract_id"`
	CreatedAt   time.Time `json:"created_at"`
	ParentID    *string `json:"parent_id"`
}

// RefObject - физический объект из справочной базы.
type RefObject struct {
	ID        string  `json:"id"`
	ShortName *string `json:"short_name"`
	FullName  *string `json:"full_name"`
	Address   *string `json:"address"`
}

type ContractRef struct {
	ID         string  `json:"id"`
	ContractID *string `json:"contract_id"`
	Name       string  `json:"name"`
}

type WorkTypeRef struct {
	ID   string  `json:"id"`
	Name *string `json:"name"`
}
