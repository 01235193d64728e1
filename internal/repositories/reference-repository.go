package repositories

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stepanovme/SupplyServiceApi/internal/entities"
	"github.com/stepanovme/SupplyServiceApi/pkg/utils"
)

const (
	objectLevelTable  = "object_levels"
	objectLevelFields = "id, object_id, name, level_type, level_number, work_type, contract_id, created_at, parent_id"

	refObjectTable  = "objects"
	refObjectFields = "id, short_name, full_name, address"

	contractTable  = "contracts"
	contractFields = "id, contract_id, name"

	workTypeTable  = "work_types"
	workTypeFields = "id, name"
)

// ReferenceRepositoryInterface - пакетный доступ к справочной базе
// иерархии объектов. Все выборки по множеству ID выполняются одним
// запросом; пустой вход - пустой результат без запроса.
type ReferenceRepositoryInterface interface {
	GetLevelsByIDs(ctx context.Context, ids []string) ([]entities.ObjectLevel, error)
	GetLevelsTree(ctx context.Context, ids []string) (map[string]entities.ObjectLevel, error)
	GetLevelIDsByType(ctx context.Context, levelType string) ([]string, error)
	GetObjectsByIDs(ctx context.Context, ids []string) ([]entities.RefObject, error)
	GetContractsByIDs(ctx context.Context, ids []string) ([]entities.ContractRef, error)
	GetWorkTypesByIDs(ctx context.Context, ids []string) ([]entities.WorkTypeRef, error)
}

type referenceRepository struct {
	storage *pgxpool.Pool
}

func NewReferenceRepository(storage *pgxpool.Pool) ReferenceRepositoryInterface {
	return &referenceRepository{storage: storage}
}

// uniqueIDs отбрасывает пустые строки и дубликаты, сохраняя порядок
// первого вхождения.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

func (r *referenceRepository) GetLevelsByIDs(ctx context.Context, ids []string) ([]entities.ObjectLevel, error) {
	uniq := uniqueIDs(ids)
	if len(uniq) == 0 {
		return []entities.ObjectLevel{}, nil
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(objectLevelFields).
		From(objectLevelTable).
		Where(sq.Eq{"id": uniq}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса GetLevelsByIDs: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки object_levels: %w", err)
	}
	defer rows.Close()

	levels := make([]entities.ObjectLevel, 0, len(uniq))
	for rows.Next() {
		level, err := scanObjectLevel(rows)
		if err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}
	return levels, rows.Err()
}

// GetLevelsTree загружает уровни по ID вместе со всеми их предками.
// Один запрос на "поколение" цепочки, а не на узел.
func (r *referenceRepository) GetLevelsTree(ctx context.Context, ids []string) (map[string]entities.ObjectLevel, error) {
	return loadLevelsTree(ctx, ids, r.GetLevelsByIDs)
}

func (r *referenceRepository) GetLevelIDsByType(ctx context.Context, levelType string) ([]string, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select("id").
		From(objectLevelTable).
		Where(sq.Eq{"level_type": levelType}).
		OrderBy("level_number", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса GetLevelIDsByType: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки ID уровней по типу %q: %w", levelType, err)
	}
	defer rows.Close()

	idsOut := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ошибка сканирования ID уровня: %w", err)
		}
		idsOut = append(idsOut, id)
	}
	return idsOut, rows.Err()
}

func (r *referenceRepository) GetObjectsByIDs(ctx context.Context, ids []string) ([]entities.RefObject, error) {
	uniq := uniqueIDs(ids)
	if len(uniq) == 0 {
		return []entities.RefObject{}, nil
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(refObjectFields).
		From(refObjectTable).
		Where(sq.Eq{"id": uniq}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса GetObjectsByIDs: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки objects: %w", err)
	}
	defer rows.Close()

	objects := make([]entities.RefObject, 0, len(uniq))
	for rows.Next() {
		var obj entities.RefObject
		var shortName, fullName, address sql.NullString
		if err := rows.Scan(&obj.ID, &shortName, &fullName, &address); err != nil {
			return nil, fmt.Errorf("ошибка сканирования objects: %w", err)
		}
		obj.ShortName = utils.NullStringToPtr(shortName)
		obj.FullName = utils.NullStringToPtr(fullName)
		obj.Address = utils.NullStringToPtr(address)
		objects = append(objects, obj)
	}
	return objects, rows.Err()
}

func (r *referenceRepository) GetContractsByIDs(ctx context.Context, ids []string) ([]entities.ContractRef, error) {
	uniq := uniqueIDs(ids)
	if len(uniq) == 0 {
		return []entities.ContractRef{}, nil
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(contractFields).
		From(contractTable).
		Where(sq.Eq{"id": uniq}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса GetContractsByIDs: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки contracts: %w", err)
	}
	defer rows.Close()

	contracts := make([]entities.ContractRef, 0, len(uniq))
	for rows.Next() {
		var contract entities.ContractRef
		var externalID sql.NullString
		if err := rows.Scan(&contract.ID, &externalID, &contract.Name); err != nil {
			return nil, fmt.Errorf("ошибка сканирования contracts: %w", err)
		}
		contract.ContractID = utils.NullStringToPtr(externalID)
		contracts = append(contracts, contract)
	}
	return contracts, rows.Err()
}

func (r *referenceRepository) GetWorkTypesByIDs(ctx context.Context, ids []string) ([]entities.WorkTypeRef, error) {
	uniq := uniqueIDs(ids)
	if len(uniq) == 0 {
		return []entities.WorkTypeRef{}, nil
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(workTypeFields).
		From(workTypeTable).
		Where(sq.Eq{"id": uniq}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса GetWorkTypesByIDs: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки work_types: %w", err)
	}
	defer rows.Close()

	workTypes := make([]entities.WorkTypeRef, 0, len(uniq))
	for rows.Next() {
		var wt entities.WorkTypeRef
		var name sql.NullString
		if err := rows.Scan(&wt.ID, &name); err != nil {
			return nil, fmt.Errorf("ошибка сканирования work_types: %w", err)
		}
		wt.Name = utils.NullStringToPtr(name)
		workTypes = append(workTypes, wt)
	}
	return workTypes, rows.Err()
}

func scanObjectLevel(row pgx.Row) (entities.ObjectLevel, error) {
	var level entities.ObjectLevel
	var name, workType, contractID, parentID sql.NullString

	err := row.Scan(
		&level.ID, &level.ObjectID, &name, &level.LevelType, &level.LevelNumber,
		&workType, &contractID, &level.CreatedAt, &parentID,
	)
	if err != nil {
		return entities.ObjectLevel{}, fmt.Errorf("ошибка сканирования object_levels: %w", err)
	}

	level.Name = utils.NullStringToPtr(name)
	level.WorkType = utils.NullStringToPtr(workType)
	level.ContractID = utils.NullStringToPtr(contractID)
	level.ParentID = utils.NullStringToPtr(parentID)
	return level, nil
}
