package services

import (
	"context"
	"strings"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"github.com/stepanovme/SupplyServiceApi/internal/dto"
	"github.com/stepanovme/SupplyServiceApi/internal/entities"
	"github.com/stepanovme/SupplyServiceApi/internal/repositories"
	"github.com/stepanovme/SupplyServiceApi/pkg/constants"
	apperrors "github.com/stepanovme/SupplyServiceApi/pkg/errors"
	"github.com/stepanovme/SupplyServiceApi/pkg/utils"
)

// RequestServiceInterface - агрегатор заявок. Списочные операции
// собирают денормализованное представление строго пачками: один запрос
// на вид данных на всю страницу, без дозапросов на строку.
type RequestServiceInterface interface {
	GetAll(ctx context.Context) ([]dto.RequestDTO, error)
	GetAvailableForUser(ctx context.Context, userID string) ([]dto.RequestDTO, error)
	GetByID(ctx context.Context, id int64) (dto.RequestDTO, error)
	GetAvailableForUserByID(ctx context.Context, userID string, id int64) (dto.RequestDTO, error)
	Create(ctx context.Context, payload dto.CreateRequestDTO, actorID string) (dto.RequestDTO, error)
	Update(ctx context.Context, id int64, patch dto.UpdateRequestDTO) (dto.RequestDTO, error)
}

type requestService struct {
	requestRepo repositories.RequestRepositoryInterface
	authRepo    repositories.AuthUserRepositoryInterface
	refRepo     repositories.ReferenceRepositoryInterface
	logger      *zap.SugaredLogger
}

func NewRequestService(
	requestRepo repositories.RequestRepositoryInterface,
	authRepo repositories.AuthUserRepositoryInterface,
	refRepo repositories.ReferenceRepositoryInterface,
	logger *zap.SugaredLogger,
) RequestServiceInterface {
	return &requestService{
		requestRepo: requestRepo,
		authRepo:    authRepo,
		refRepo:     refRepo,
		logger:      logger,
	}
}

func (s *requestService) GetAll(ctx context.Context) ([]dto.RequestDTO, error) {
	return s.buildViews(ctx)
}

// GetAvailableForUser возвращает "мои заявки": пользователь - автор,
// исполнитель или согласующий. Фильтр применяется после полной сборки
// представлений, чтобы форма ответа не зависела от пути вызова.
func (s *requestService) GetAvailableForUser(ctx context.Context, userID string) ([]dto.RequestDTO, error) {
	views, err := s.buildViews(ctx)
	if err != nil {
		return nil, err
	}

	available := make([]dto.RequestDTO, 0, len(views))
	for _, view := range views {
		if requestTouchesUser(view, userID) {
			available = append(available, view)
		}
	}
	return available, nil
}

// GetByID намеренно гоняет списочный конвейер и ищет заявку в
// результате: одиночный ответ обязан совпадать по форме со списочным.
func (s *requestService) GetByID(ctx context.Context, id int64) (dto.RequestDTO, error) {
	views, err := s.buildViews(ctx)
	if err != nil {
		return dto.RequestDTO{}, err
	}
	for _, view := range views {
		if view.ID == id {
			return view, nil
		}
	}
	return dto.RequestDTO{}, apperrors.ErrNotFound
}

func (s *requestService) GetAvailableForUserByID(ctx context.Context, userID string, id int64) (dto.RequestDTO, error) {
	views, err := s.GetAvailableForUser(ctx, userID)
	if err != nil {
		return dto.RequestDTO{}, err
	}
	for _, view := range views {
		if view.ID == id {
			return view, nil
		}
	}
	return dto.RequestDTO{}, apperrors.ErrNotFound
}

func (s *requestService) Create(ctx context.Context, payload dto.CreateRequestDTO, actorID string) (dto.RequestDTO, error) {
	if payload.ObjectLevelsID == nil || *payload.ObjectLevelsID == "" {
		return dto.RequestDTO{}, apperrors.NewInvalidInputError("object_levels_id обязателен")
	}

	request := entities.SupplyRequest{
		ObjectLevelsID: *payload.ObjectLevelsID,
		Name:           payload.Name,
		Comment:        payload.Comment,
		CreatedBy:      actorID,
		Executor:       payload.Executor,
		StatusID:       constants.RequestStatusNewID,
		Deadline:       payload.Deadline,
	}

	created, err := s.requestRepo.CreateRequest(ctx, request)
	if err != nil {
		return dto.RequestDTO{}, err
	}
	s.logger.Infof("создана заявка %d пользователем %s", created.ID, actorID)

	return s.GetByID(ctx, created.ID)
}

func (s *requestService) Update(ctx context.Context, id int64, patch dto.UpdateRequestDTO) (dto.RequestDTO, error) {
	exists, err := s.requestRepo.RequestExists(ctx, id)
	if err != nil {
		return dto.RequestDTO{}, err
	}
	if !exists {
		return dto.RequestDTO{}, apperrors.ErrNotFound
	}

	updates := map[string]interface{}{}
	if patch.ObjectLevelsID != nil {
		updates["object_levels_id"] = *patch.ObjectLevelsID
	}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Comment != nil {
		updates["comment"] = *patch.Comment
	}
	if patch.Executor != nil {
		updates["executor"] = *patch.Executor
	}
	if patch.StatusID != nil {
		updates["status_id"] = *patch.StatusID
	}
	if patch.StartedAt != nil {
		updates["started_at"] = *patch.StartedAt
	}
	if patch.ApprovedAt != nil {
		updates["approved_at"] = *patch.ApprovedAt
	}
	if patch.RejectedAt != nil {
		updates["rejected_at"] = *patch.RejectedAt
	}
	if patch.CompletedAt != nil {
		updates["completed_at"] = *patch.CompletedAt
	}
	if patch.Deadline != nil {
		updates["deadline"] = *patch.Deadline
	}

	if err := s.requestRepo.UpdateRequest(ctx, id, updates); err != nil {
		return dto.RequestDTO{}, err
	}
	return s.GetByID(ctx, id)
}

// buildViews - весь конвейер сборки: заявки, затем по одной пачке на
// позиции, журнал, номенклатуру (с транзитивными единицами и
// категориями), статусы, пользователей и справочные карты имён.
func (s *requestService) buildViews(ctx context.Context) ([]dto.RequestDTO, error) {
	requests, err := s.requestRepo.GetAllRequests(ctx)
	if err != nil {
		return nil, err
	}

	requestIDs := make([]int64, 0, len(requests))
	for _, request := range requests {
		requestIDs = append(requestIDs, request.ID)
	}

	items, err := s.requestRepo.GetItemsByRequestIDs(ctx, requestIDs)
	if err != nil {
		return nil, err
	}
	logs, err := s.requestRepo.GetLogsByRequestIDs(ctx, requestIDs)
	if err != nil {
		return nil, err
	}

	nomenclatureIDs := make([]string, 0)
	for _, item := range items {
		if item.NomenclatureID != nil {
			nomenclatureIDs = append(nomenclatureIDs, *item.NomenclatureID)
		}
	}
	nomenclature, err := s.requestRepo.GetNomenclatureByIDs(ctx, nomenclatureIDs)
	if err != nil {
		return nil, err
	}
	nomenclatureByID := make(map[string]entities.NomenclatureRef, len(nomenclature))
	for _, n := range nomenclature {
		nomenclatureByID[n.ID] = n
	}

	unitIDs := make([]string, 0)
	categoryIDs := make([]string, 0)
	for _, item := range items {
		if item.UnitID != nil {
			unitIDs = append(unitIDs, *item.UnitID)
		}
		if item.WarehouseCategoryID != nil {
			categoryIDs = append(categoryIDs, *item.WarehouseCategoryID)
		}
	}
	for _, n := range nomenclature {
		unitIDs = append(unitIDs, n.UnitID)
		categoryIDs = append(categoryIDs, n.WarehouseCategoryID)
	}

	units, err := s.requestRepo.GetUnitsByIDs(ctx, unitIDs)
	if err != nil {
		return nil, err
	}
	unitByID := make(map[string]entities.UnitRef, len(units))
	for _, unit := range units {
		unitByID[unit.ID] = unit
	}

	categories, err := s.requestRepo.GetWarehouseCategoriesByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}
	categoryByID := make(map[string]entities.WarehouseCategoryRef, len(categories))
	for _, category := range categories {
		categoryByID[category.ID] = category
	}

	statusIDs := make([]string, 0, len(requests))
	for _, request := range requests {
		statusIDs = append(statusIDs, request.StatusID)
	}
	statuses, err := s.requestRepo.GetStatusesByIDs(ctx, statusIDs)
	if err != nil {
		return nil, err
	}
	statusByID := make(map[string]entities.StatusRef, len(statuses))
	for _, status := range statuses {
		statusByID[status.ID] = status
	}

	userIDs := make([]string, 0, len(requests)*2)
	for _, request := range requests {
		userIDs = append(userIDs, request.CreatedBy)
		if request.Executor != nil {
			userIDs = append(userIDs, *request.Executor)
		}
	}
	for _, log := range logs {
		userIDs = append(userIDs, log.UserID)
	}
	users, err := s.authRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	userByID := make(map[string]entities.AuthUser, len(users))
	for _, user := range users {
		userByID[user.ID] = user
	}

	levelIDs := make([]string, 0, len(requests))
	for _, request := range requests {
		levelIDs = append(levelIDs, request.ObjectLevelsID)
	}
	nameMaps, err := LoadProjectReferenceMaps(ctx, s.refRepo, levelIDs)
	if err != nil {
		return nil, err
	}

	itemsByRequest := make(map[int64][]entities.RequestItem, len(requests))
	for _, item := range items {
		itemsByRequest[item.RequestID] = append(itemsByRequest[item.RequestID], item)
	}
	logsByRequest := make(map[int64][]entities.RequestLog, len(requests))
	for _, log := range logs {
		logsByRequest[log.RequestID] = append(logsByRequest[log.RequestID], log)
	}

	views := make([]dto.RequestDTO, 0, len(requests))
	for _, request := range requests {
		view := dto.RequestDTO{
			ID:             request.ID,
			ObjectLevelsID: request.ObjectLevelsID,
			Name:           null.StringFromPtr(request.Name),
			Comment:        null.StringFromPtr(request.Comment),
			CreatedBy:      request.CreatedBy,
			Executor:       null.StringFromPtr(request.Executor),
			CreatedAt:      request.CreatedAt,
			StartedAt:      null.TimeFromPtr(request.StartedAt),
			ApprovedAt:     null.TimeFromPtr(request.ApprovedAt),
			RejectedAt:     null.TimeFromPtr(request.RejectedAt),
			CompletedAt:    null.TimeFromPtr(request.CompletedAt),
			Deadline:       null.TimeFromPtr(request.Deadline),
			ProjectName:    null.StringFromPtr(BuildProjectName(request.ObjectLevelsID, nameMaps)),
		}

		if status, ok := statusByID[request.StatusID]; ok {
			view.Status = &dto.ShortStatusDTO{ID: status.ID, Name: status.Name}
		}

		view.Items = make([]dto.RequestItemDTO, 0, len(itemsByRequest[request.ID]))
		for _, item := range itemsByRequest[request.ID] {
			view.Items = append(view.Items, mapRequestItem(item, nomenclatureByID, unitByID, categoryByID))
		}

		view.Logs = make([]dto.RequestLogDTO, 0, len(logsByRequest[request.ID]))
		for _, log := range logsByRequest[request.ID] {
			logView := dto.RequestLogDTO{
				ID:           log.ID,
				RequestID:    log.RequestID,
				UserID:       log.UserID,
				StatusName:   log.StatusName,
				DateResponse: null.TimeFromPtr(log.DateResponse),
			}
			if user, ok := userByID[log.UserID]; ok {
				logView.User = mapUser(user)
			}
			view.Logs = append(view.Logs, logView)
		}

		if user, ok := userByID[request.CreatedBy]; ok {
			view.CreatedByUser = mapUser(user)
		}
		if request.Executor != nil {
			if user, ok := userByID[*request.Executor]; ok {
				view.ExecutorUser = mapUser(user)
			}
		}

		views = append(views, view)
	}
	return views, nil
}

func requestTouchesUser(view dto.RequestDTO, userID string) bool {
	if view.CreatedBy == userID {
		return true
	}
	if view.Executor.Valid && view.Executor.String == userID {
		return true
	}
	for _, log := range view.Logs {
		if log.UserID == userID {
			return true
		}
	}
	return false
}

func mapRequestItem(
	item entities.RequestItem,
	nomenclatureByID map[string]entities.NomenclatureRef,
	unitByID map[string]entities.UnitRef,
	categoryByID map[string]entities.WarehouseCategoryRef,
) dto.RequestItemDTO {
	view := dto.RequestItemDTO{
		ID:        item.ID,
		RequestID: item.RequestID,
		Num:       item.Num,
		Name:      null.StringFromPtr(item.Name),
		Quantity:  item.Quantity,
		Comment:   null.StringFromPtr(item.Comment),
	}

	if item.NomenclatureID != nil {
		if n, ok := nomenclatureByID[*item.NomenclatureID]; ok {
			view.Nomenclature = mapNomenclature(n, unitByID, categoryByID)
		}
	}
	if item.UnitID != nil {
		if unit, ok := unitByID[*item.UnitID]; ok {
			view.Unit = &dto.UnitDTO{ID: unit.ID, Name: unit.Name}
		}
	}
	if item.WarehouseCategoryID != nil {
		if category, ok := categoryByID[*item.WarehouseCategoryID]; ok {
			view.WarehouseCategory = mapWarehouseCategory(category)
		}
	}
	return view
}

func mapNomenclature(
	n entities.NomenclatureRef,
	unitByID map[string]entities.UnitRef,
	categoryByID map[string]entities.WarehouseCategoryRef,
) *dto.NomenclatureDTO {
	view := &dto.NomenclatureDTO{
		ID:                  n.ID,
		Name:                n.Name,
		Description:         null.StringFromPtr(n.Description),
		Article:             null.StringFromPtr(n.Article),
		UnitID:              n.UnitID,
		WarehouseCategoryID: n.WarehouseCategoryID,
		Length:              null.Float64FromPtr(n.Length),
		Width:               null.Float64FromPtr(n.Width),
		Height:              null.Float64FromPtr(n.Height),
		Weight:              null.Float64FromPtr(n.Weight),
		CreatedAt:           null.TimeFrom(n.CreatedAt),
	}
	if unit, ok := unitByID[n.UnitID]; ok {
		view.Unit = &dto.UnitDTO{ID: unit.ID, Name: unit.Name}
	}
	if category, ok := categoryByID[n.WarehouseCategoryID]; ok {
		view.WarehouseCategory = mapWarehouseCategory(category)
	}
	return view
}

func mapWarehouseCategory(category entities.WarehouseCategoryRef) *dto.WarehouseCategoryDTO {
	return &dto.WarehouseCategoryDTO{
		ID:       category.ID,
		Name:     category.Name,
		ParentID: null.StringFromPtr(category.ParentID),
	}
}

func mapUser(user entities.AuthUser) *dto.UserDTO {
	name := utils.SafeDeref(user.Name)
	surname := utils.SafeDeref(user.Surname)
	patronymic := utils.SafeDeref(user.Patronymic)
	return &dto.UserDTO{
		ID:         user.ID,
		Name:       name,
		Surname:    surname,
		Patronymic: patronymic,
		ShortFio:   shortFio(surname, name, patronymic),
	}
}

// shortFio: "Фамилия И.О." с пропуском пустых частей.
func shortFio(surname, name, patronymic string) string {
	initials := ""
	if name != "" {
		initials += string([]rune(name)[0]) + "."
	}
	if patronymic != "" {
		initials += string([]rune(patronymic)[0]) + "."
	}
	return strings.TrimSpace(strings.TrimSpace(surname) + " " + initials)
}
