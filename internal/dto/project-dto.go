package dto

type ProjectDTO struct {
	ID       string `json:"id"`
	ObjectID string `json:"object_id"`
	IsHide   bool   `json:"is_hide"`
	IsActive bool   `json:"is_active"`
}

type CreateProjectDTO struct {
	ID       *string `json:"id,omitempty"`
	ObjectID string  `json:"object_id" validate:"required"`
	IsHide   *bool   `json:"is_hide,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type UpdateProjectDTO struct {
	IsHide   *bool `json:"is_hide,omitempty"`
	IsActive *bool `json:"is_active,omitempty"`
}
