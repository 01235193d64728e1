package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

// RequestLogDTO - запись о согласовании с вложенным пользователем.
type RequestLogDTO struct {
	ID           string    `json:"id"`
	RequestID    int64     `json:"request_id"`
	UserID       string    `json:"user_id"`
	StatusName   string    `json:"status_name"`
	DateResponse null.Time `json:"date_response"`
	User         *UserDTO  `json:"user"`
}

type CreateRequestLogDTO struct {
	UserID       *string    `json:"user_id" validate:"required"`
	StatusName   *string    `json:"status_name" validate:"required,max=20"`
	DateResponse *time.Time `json:"date_response,omitempty"`
}

type UpdateRequestLogDTO struct {
	UserID       *string    `json:"user_id,omitempty"`
	StatusName   *string    `json:"status_name,omitempty" validate:"omitempty,max=20"`
	DateResponse *time.Time `json:"date_response,omitempty"`
}
