package entities

// Project отмечает, показывается ли физический объект в списках
// объектов заявок. Уровни скрытого/неактивного объекта не видны,
// даже если на них выданы роли.
type Project struct {
	ID       string `json:"id"`
	ObjectID string `json:"object_id"`
	IsHide   bool   `json:"is_hide"`
	IsActive bool   `json:"is_active"`
}

// ProjectUserRole - роль пользователя на одном уровне иерархии объекта.
type ProjectUserRole struct {
	ID             string `json:"id"`
	ObjectLevelsID string `json:"object_levels_id"`
	UserID         string `json:"user_id"`
	Role           string `json:"role"`
}
