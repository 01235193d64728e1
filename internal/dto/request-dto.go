package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

// RequestDTO - денормализованное представление заявки. Форма и имена
// полей совпадают с тем, что сериализует HTTP-слой, поэтому менять их
// без согласования с потребителями нельзя.
type RequestDTO struct {
	ID             int64           `json:"id"`
	ObjectLevelsID string          `json:"object_levels_id"`
	Name           null.String     `json:"name"`
	Comment        null.String     `json:"comment"`
	CreatedBy      string          `json:"created_by"`
	Executor       null.String     `json:"executor"`
	CreatedAt      time.Time       `json:"created_at"`
	StartedAt      null.Time       `json:"started_at"`
	ApprovedAt     null.Time       `json:"approved_at"`
	RejectedAt     null.Time       `json:"rejected_at"`
	CompletedAt    null.Time       `json:"completed_at"`
	Deadline       null.Time       `json:"deadline"`
	Status         *ShortStatusDTO `json:"status"`
	Items          []RequestItemDTO `json:"items"`
	Logs           []RequestLogDTO  `json:"logs"`
	ProjectName    null.String     `json:"project_name"`
	CreatedByUser  *UserDTO        `json:"created_by_user"`
	ExecutorUser   *UserDTO        `json:"executor_user"`
}

type CreateRequestDTO struct {
	ObjectLevelsID *string    `json:"object_levels_id" validate:"required"`
	Name           *string    `json:"name,omitempty"`
	Comment        *string    `json:"comment,omitempty"`
	Executor       *string    `json:"executor,omitempty"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
	RejectedAt     *time.Time `json:"rejected_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	Deadline       *time.Time `json:"deadline,omitempty"`
}

// UpdateRequestDTO - частичное обновление: меняются только присланные поля.
type UpdateRequestDTO struct {
	ObjectLevelsID *string    `json:"object_levels_id,omitempty"`
	Name           *string    `json:"name,omitempty"`
	Comment        *string    `json:"comment,omitempty"`
	Executor       *string    `json:"executor,omitempty"`
	StatusID       *string    `json:"status_id,omitempty"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
	RejectedAt     *time.Time `json:"rejected_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	Deadline       *time.Time `json:"deadline,omitempty"`
}
