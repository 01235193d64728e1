package services

import (
	"context"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"github.com/stepanovme/SupplyServiceApi/internal/dto"
	"github.com/stepanovme/SupplyServiceApi/internal/entities"
	"github.com/stepanovme/SupplyServiceApi/internal/repositories"
	apperrors "github.com/stepanovme/SupplyServiceApi/pkg/errors"
)

// RequestLogServiceInterface - согласующие заявки: записи журнала
// согласований, привязанные к заявке.
type RequestLogServiceInterface interface {
	Create(ctx context.Context, requestID int64, payload dto.CreateRequestLogDTO) (dto.RequestLogDTO, error)
	Update(ctx context.Context, requestID int64, logID string, patch dto.UpdateRequestLogDTO) (dto.RequestLogDTO, error)
	Delete(ctx context.Context, requestID int64, logID string) error
}

type requestLogService struct {
	requestRepo repositories.RequestRepositoryInterface
}

func NewRequestLogService(requestRepo repositories.RequestRepositoryInterface) RequestLogServiceInterface {
	return &requestLogService{requestRepo: requestRepo}
}

func (s *requestLogService) Create(ctx context.Context, requestID int64, payload dto.CreateRequestLogDTO) (dto.RequestLogDTO, error) {
	exists, err := s.requestRepo.RequestExists(ctx, requestID)
	if err != nil {
		return dto.RequestLogDTO{}, err
	}
	if !exists {
		return dto.RequestLogDTO{}, apperrors.ErrNotFound
	}

	log := entities.RequestLog{
		ID:           uuid.NewString(),
		RequestID:    requestID,
		UserID:       *payload.UserID,
		StatusName:   *payload.StatusName,
		DateResponse: payload.DateResponse,
	}
	if err := s.requestRepo.CreateLog(ctx, log); err != nil {
		return dto.RequestLogDTO{}, err
	}
	return mapLog(log), nil
}

func (s *requestLogService) Update(ctx context.Context, requestID int64, logID string, patch dto.UpdateRequestLogDTO) (dto.RequestLogDTO, error) {
	log, err := s.requestRepo.FindLog(ctx, requestID, logID)
	if err != nil {
		return dto.RequestLogDTO{}, err
	}

	if patch.UserID != nil {
		log.UserID = *patch.UserID
	}
	if patch.StatusName != nil {
		log.StatusName = *patch.StatusName
	}
	if patch.DateResponse != nil {
		log.DateResponse = patch.DateResponse
	}

	if err := s.requestRepo.SaveLog(ctx, log); err != nil {
		return dto.RequestLogDTO{}, err
	}
	return mapLog(log), nil
}

func (s *requestLogService) Delete(ctx context.Context, requestID int64, logID string) error {
	return s.requestRepo.DeleteLog(ctx, requestID, logID)
}

func mapLog(log entities.RequestLog) dto.RequestLogDTO {
	return dto.RequestLogDTO{
		ID:           log.ID,
		RequestID:    log.RequestID,
		UserID:       log.UserID,
		StatusName:   log.StatusName,
		DateResponse: null.TimeFromPtr(log.DateResponse),
	}
}
