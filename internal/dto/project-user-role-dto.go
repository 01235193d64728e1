package dto

// ProjectUserRoleDTO - роль пользователя на уровне объекта; user подтянут
// пачкой из базы аутентификации и может быть null.
type ProjectUserRoleDTO struct {
	ID             string        `json:"id"`
	ObjectLevelsID string        `json:"object_levels_id"`
	UserID         string        `json:"user_id"`
	Role           string        `json:"role"`
	User           *ShortUserDTO `json:"user"`
}

type CreateProjectUserRoleDTO struct {
	ID             *string `json:"id,omitempty"`
	ObjectLevelsID string  `json:"object_levels_id" validate:"required"`
	UserID         string  `json:"user_id" validate:"required"`
	Role           string  `json:"role" validate:"required"`
}
