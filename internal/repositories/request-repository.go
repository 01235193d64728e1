package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stepanovme/SupplyServiceApi/internal/entities"
	apperrors "github.com/stepanovme/SupplyServiceApi/pkg/errors"
	"github.com/stepanovme/SupplyServiceApi/pkg/utils"
)

const (
	requestTable  = "request"
	requestFields = "id, object_levels_id, name, comment, created_by, executor, status_id, created_at, started_at, approved_at, rejected_at, completed_at, deadline"

	requestItemTable  = "request_items"
	requestItemFields = "id, request_id, num, nomenclature_id, name, unit_id, quantity, warehouse_category_id, comment"

	requestLogTable  = "request_log"
	requestLogFields = "id, request_id, user_id, status_name, date_response"

	statusTable  = "status"
	statusFields = "id, name"

	nomenclatureTable  = "nomenclature"
	nomenclatureFields = "id, warehouse_category_id, name, description, article, unit_id, length, width, height, weight, created_at"

	unitTable  = "unit"
	unitFields = "id, name"

	warehouseCategoryTable  = "warehouse_category"
	warehouseCategoryFields = "id, name, parent_id"
)

// RequestRepositoryInterface - доступ к базе снабжения: заявки, позиции,
// журнал согласований и номенклатурные справочники. Пакетные выборки
// работают по контракту reference-репозитория: пустой вход - пустой
// результат, дубликаты схлопываются.
type RequestRepositoryInterface interface {
	GetAllRequests(ctx context.Context) ([]entities.SupplyRequest, error)
	RequestExists(ctx context.Context, id int64) (bool, error)
	CreateRequest(ctx context.Context, request entities.SupplyRequest) (entities.SupplyRequest, error)
	UpdateRequest(ctx context.Context, id int64, updates map[string]interface{}) error

	GetItemsByRequestIDs(ctx context.Context, requestIDs []int64) ([]entities.RequestItem, error)
	NextItemNum(ctx context.Context, requestID int64) (int, error)
	CreateItem(ctx context.Context, item entities.RequestItem) error
	FindItem(ctx context.Context, requestID int64, itemID string) (entities.RequestItem, error)
	SaveItem(ctx context.Context, item entities.RequestItem) error

	GetLogsByRequestIDs(ctx context.Context, requestIDs []int64) ([]entities.RequestLog, error)
	CreateLog(ctx context.Context, log entities.RequestLog) error
	FindLog(ctx context.Context, requestID int64, logID string) (entities.RequestLog, error)
	SaveLog(ctx context.Context, log entities.RequestLog) error
	DeleteLog(ctx context.Context, requestID int64, logID string) error

	GetStatusesByIDs(ctx context.Context, ids []string) ([]entities.StatusRef, error)
	GetNomenclatureByIDs(ctx context.Context, ids []string) ([]entities.NomenclatureRef, error)
	FindNomenclature(ctx context.Context, id string) (entities.NomenclatureRef, error)
	GetUnitsByIDs(ctx context.Context, ids []string) ([]entities.UnitRef, error)
	GetWarehouseCategoriesByIDs(ctx context.Context, ids []string) ([]entities.WarehouseCategoryRef, error)
}

type requestRepository struct {
	storage *pgxpool.Pool
}

func NewRequestRepository(storage *pgxpool.Pool) RequestRepositoryInterface {
	return &requestRepository{storage: storage}
}

func uniqueInt64IDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

func (r *requestRepository) GetAllRequests(ctx context.Context) ([]entities.SupplyRequest, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id DESC", requestFields, requestTable)

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки заявок: %w", err)
	}
	defer rows.Close()

	requests := make([]entities.SupplyRequest, 0)
	for rows.Next() {
		request, err := scanSupplyRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

func (r *requestRepository) RequestExists(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)", requestTable)

	var exists bool
	if err := r.storage.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("ошибка проверки существования заявки %d: %w", id, err)
	}
	return exists, nil
}

func (r *requestRepository) CreateRequest(ctx context.Context, request entities.SupplyRequest) (entities.SupplyRequest, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (object_levels_id, name, comment, created_by, executor, status_id, deadline)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`, requestTable)

	err := r.storage.QueryRow(ctx, query,
		request.ObjectLevelsID, request.Name, request.Comment,
		request.CreatedBy, request.Executor, request.StatusID, request.Deadline,
	).Scan(&request.ID, &request.CreatedAt)
	if err != nil {
		return entities.SupplyRequest{}, fmt.Errorf("ошибка создания заявки: %w", err)
	}
	return request, nil
}

// UpdateRequest обновляет только переданные колонки. Состав updates
// формирует сервис по статическому списку разрешённых полей.
func (r *requestRepository) UpdateRequest(ctx context.Context, id int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update(requestTable).
		SetMap(updates).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса UpdateRequest: %w", err)
	}

	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления заявки %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *requestRepository) GetItemsByRequestIDs(ctx context.Context, requestIDs []int64) ([]entities.RequestItem, error) {
	uniq := uniqueInt64IDs(requestIDs)
	if len(uniq) == 0 {
		return []entities.RequestItem{}, nil
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(requestItemFields).
		From(requestItemTable).
		Where(sq.Eq{"request_id": uniq}).
		OrderBy("request_id", "num").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса GetItemsByRequestIDs: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки позиций заявок: %w", err)
	}
	defer rows.Close()

	items := make([]entities.RequestItem, 0)
	for rows.Next() {
		item, err := scanRequestItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *requestRepository) NextItemNum(ctx context.Context, requestID int64) (int, error) {
	query := fmt.Sprintf("SELECT COALESCE(MAX(num), 0) + 1 FROM %s WHERE request_id = $1", requestItemTable)

	var num int
	if err := r.storage.QueryRow(ctx, query, requestID).Scan(&num); err != nil {
		return 0, fmt.Errorf("ошибка вычисления номера позиции для заявки %d: %w", requestID, err)
	}
	return num, nil
}

func (r *requestRepository) CreateItem(ctx context.Context, item entities.RequestItem) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`, requestItemTable, requestItemFields)

	_, err := r.storage.Exec(ctx, query,
		item.ID, item.RequestID, item.Num, item.NomenclatureID, item.Name,
		item.UnitID, item.Quantity, item.WarehouseCategoryID, item.Comment,
	)
	if err != nil {
		return fmt.Errorf("ошибка создания позиции заявки: %w", err)
	}
	return nil
}

func (r *requestRepository) FindItem(ctx context.Context, requestID int64, itemID string) (entities.RequestItem, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 AND request_id = $2", requestItemFields, requestItemTable)

	item, err := scanRequestItem(r.storage.QueryRow(ctx, query, itemID, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.RequestItem{}, apperrors.ErrNotFound
		}
		return entities.RequestItem{}, err
	}
	return item, nil
}

func (r *requestRepository) SaveItem(ctx context.Context, item entities.RequestItem) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET num = $1, nomenclature_id = $2, name = $3, unit_id = $4,
		    quantity = $5, warehouse_category_id = $6, comment = $7
		WHERE id = $8 AND request_id = $9`, requestItemTable)

	tag, err := r.storage.Exec(ctx, query,
		item.Num, item.NomenclatureID, item.Name, item.UnitID,
		item.Quantity, item.WarehouseCategoryID, item.Comment,
		item.ID, item.RequestID,
	)
	if err != nil {
		return fmt.Errorf("ошибка сохранения позиции заявки %s: %w", item.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *requestRepository) GetLogsByRequestIDs(ctx context.Context, requestIDs []int64) ([]entities.RequestLog, error) {
	uniq := uniqueInt64IDs(requestIDs)
	if len(uniq) == 0 {
		return []entities.RequestLog{}, nil
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(requestLogFields).
		From(requestLogTable).
		Where(sq.Eq{"request_id": uniq}).
		OrderBy("request_id", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса GetLogsByRequestIDs: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки журнала согласований: %w", err)
	}
	defer rows.Close()

	logs := make([]entities.RequestLog, 0)
	for rows.Next() {
		log, err := scanRequestLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func (r *requestRepository) CreateLog(ctx context.Context, log entities.RequestLog) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5)`, requestLogTable, requestLogFields)

	_, err := r.storage.Exec(ctx, query,
		log.ID, log.RequestID, log.UserID, log.StatusName, log.DateResponse,
	)
	if err != nil {
		return fmt.Errorf("ошибка создания записи согласования: %w", err)
	}
	return nil
}

func (r *requestRepository) FindLog(ctx context.Context, requestID int64, logID string) (entities.RequestLog, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 AND request_id = $2", requestLogFields, requestLogTable)

	log, err := scanRequestLog(r.storage.QueryRow(ctx, query, logID, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.RequestLog{}, apperrors.ErrNotFound
		}
		return entities.RequestLog{}, err
	}
	return log, nil
}

func (r *requestRepository) SaveLog(ctx context.Context, log entities.RequestLog) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET user_id = $1, status_name = $2, date_response = $3
		WHERE id = $4 AND request_id = $5`, requestLogTable)

	tag, err := r.storage.Exec(ctx, query,
		log.UserID, log.StatusName, log.DateResponse, log.ID, log.RequestID,
	)
	if err != nil {
		return fmt.Errorf("ошибка сохранения записи согласования %s: %w", log.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *requestRepository) DeleteLog(ctx context.Context, requestID int64, logID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND request_id = $2", requestLogTable)

	tag, err := r.storage.Exec(ctx, query, logID, requestID)
	if err != nil {
		return fmt.Errorf("ошибка удаления записи согласования %s: %w", logID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *requestRepository) GetStatusesByIDs(ctx context.Context, ids []string) ([]entities.StatusRef, error) {
	uniq := uniqueIDs(ids)
	if len(uniq) == 0 {
		return []entities.StatusRef{}, nil
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(statusFields).
		From(statusTable).
		Where(sq.Eq{"id": uniq}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса GetStatusesByIDs: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки статусов: %w", err)
	}
	defer rows.Close()

	statuses := make([]entities.StatusRef, 0, len(uniq))
	for rows.Next() {
		var status entities.StatusRef
		if err := rows.Scan(&status.ID, &status.Name); err != nil {
			return nil, fmt.Errorf("ошибка сканирования статуса: %w", err)
		}
		statuses = append(statuses, status)
	}
	return statuses, rows.Err()
}

func (r *requestRepository) GetNomenclatureByIDs(ctx context.Context, ids []string) ([]entities.NomenclatureRef, error) {
	uniq := uniqueIDs(ids)
	if len(uniq) == 0 {
		return []entities.NomenclatureRef{}, nil
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(nomenclatureFields).
		From(nomenclatureTable).
		Where(sq.Eq{"id": uniq}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса GetNomenclatureByIDs: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки номенклатуры: %w", err)
	}
	defer rows.Close()

	nomenclature := make([]entities.NomenclatureRef, 0, len(uniq))
	for rows.Next() {
		n, err := scanNomenclature(rows)
		if err != nil {
			return nil, err
		}
		nomenclature = append(nomenclature, n)
	}
	return nomenclature, rows.Err()
}

func (r *requestRepository) FindNomenclature(ctx context.Context, id string) (entities.NomenclatureRef, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", nomenclatureFields, nomenclatureTable)

	n, err := scanNomenclature(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.NomenclatureRef{}, apperrors.ErrNotFound
		}
		return entities.NomenclatureRef{}, err
	}
	return n, nil
}

func (r *requestRepository) GetUnitsByIDs(ctx context.Context, ids []string) ([]entities.UnitRef, error) {
	uniq := uniqueIDs(ids)
	if len(uniq) == 0 {
		return []entities.UnitRef{}, nil
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(unitFields).
		From(unitTable).
		Where(sq.Eq{"id": uniq}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса GetUnitsByIDs: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки единиц измерения: %w", err)
	}
	defer rows.Close()

	units := make([]entities.UnitRef, 0, len(uniq))
	for rows.Next() {
		var unit entities.UnitRef
		if err := rows.Scan(&unit.ID, &unit.Name); err != nil {
			return nil, fmt.Errorf("ошибка сканирования единицы измерения: %w", err)
		}
		units = append(units, unit)
	}
	return units, rows.Err()
}

func (r *requestRepository) GetWarehouseCategoriesByIDs(ctx context.Context, ids []string) ([]entities.WarehouseCategoryRef, error) {
	uniq := uniqueIDs(ids)
	if len(uniq) == 0 {
		return []entities.WarehouseCategoryRef{}, nil
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(warehouseCategoryFields).
		From(warehouseCategoryTable).
		Where(sq.Eq{"id": uniq}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса GetWarehouseCategoriesByIDs: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки товарных категорий: %w", err)
	}
	defer rows.Close()

	categories := make([]entities.WarehouseCategoryRef, 0, len(uniq))
	for rows.Next() {
		var category entities.WarehouseCategoryRef
		var parentID sql.NullString
		if err := rows.Scan(&category.ID, &category.Name, &parentID); err != nil {
			return nil, fmt.Errorf("ошибка сканирования товарной категории: %w", err)
		}
		category.ParentID = utils.NullStringToPtr(parentID)
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func scanSupplyRequest(row pgx.Row) (entities.SupplyRequest, error) {
	var request entities.SupplyRequest
	var name, comment, executor sql.NullString
	var startedAt, approvedAt, rejectedAt, completedAt, deadline sql.NullTime

	err := row.Scan(
		&request.ID, &request.ObjectLevelsID, &name, &comment,
		&request.CreatedBy, &executor, &request.StatusID, &request.CreatedAt,
		&startedAt, &approvedAt, &rejectedAt, &completedAt, &deadline,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.SupplyRequest{}, err
		}
		return entities.SupplyRequest{}, fmt.Errorf("ошибка сканирования заявки: %w", err)
	}

	request.Name = utils.NullStringToPtr(name)
	request.Comment = utils.NullStringToPtr(comment)
	request.Executor = utils.NullStringToPtr(executor)
	request.StartedAt = utils.NullTimeToPtr(startedAt)
	request.ApprovedAt = utils.NullTimeToPtr(approvedAt)
	request.RejectedAt = utils.NullTimeToPtr(rejectedAt)
	request.CompletedAt = utils.NullTimeToPtr(completedAt)
	request.Deadline = utils.NullTimeToPtr(deadline)
	return request, nil
}

func scanRequestItem(row pgx.Row) (entities.RequestItem, error) {
	var item entities.RequestItem
	var nomenclatureID, name, unitID, warehouseCategoryID, comment sql.NullString

	err := row.Scan(
		&item.ID, &item.RequestID, &item.Num, &nomenclatureID, &name,
		&unitID, &item.Quantity, &warehouseCategoryID, &comment,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.RequestItem{}, err
		}
		return entities.RequestItem{}, fmt.Errorf("ошибка сканирования позиции заявки: %w", err)
	}

	item.NomenclatureID = utils.NullStringToPtr(nomenclatureID)
	item.Name = utils.NullStringToPtr(name)
	item.UnitID = utils.NullStringToPtr(unitID)
	item.WarehouseCategoryID = utils.NullStringToPtr(warehouseCategoryID)
	item.Comment = utils.NullStringToPtr(comment)
	return item, nil
}

func scanRequestLog(row pgx.Row) (entities.RequestLog, error) {
	var log entities.RequestLog
	var dateResponse sql.NullTime

	err := row.Scan(&log.ID, &log.RequestID, &log.UserID, &log.StatusName, &dateResponse)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.RequestLog{}, err
		}
		return entities.RequestLog{}, fmt.Errorf("ошибка сканирования записи согласования: %w", err)
	}

	log.DateResponse = utils.NullTimeToPtr(dateResponse)
	return log, nil
}

func scanNomenclature(row pgx.Row) (entities.NomenclatureRef, error) {
	var n entities.NomenclatureRef
	var description, article sql.NullString
	var length, width, height, weight sql.NullFloat64

	err := row.Scan(
		&n.ID, &n.WarehouseCategoryID, &n.Name, &description, &article,
		&n.UnitID, &length, &width, &height, &weight, &n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.NomenclatureRef{}, err
		}
		return entities.NomenclatureRef{}, fmt.Errorf("ошибка сканирования номенклатуры: %w", err)
	}

	n.Description = utils.NullStringToPtr(description)
	n.Article = utils.NullStringToPtr(article)
	n.Length = utils.NullFloatToPtr(length)
	n.Width = utils.NullFloatToPtr(width)
	n.Height = utils.NullFloatToPtr(height)
	n.Weight = utils.NullFloatToPtr(weight)
	return n, nil
}
