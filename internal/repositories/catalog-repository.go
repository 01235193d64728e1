package repositories

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stepanovme/SupplyServiceApi/internal/entities"
	"github.com/stepanovme/SupplyServiceApi/pkg/utils"
)

// CatalogRepositoryInterface - списочные выборки номенклатурных
// справочников для экранов выбора.
type CatalogRepositoryInterface interface {
	GetAllUnits(ctx context.Context) ([]entities.UnitRef, error)
	GetAllWarehouseCategories(ctx context.Context) ([]entities.WarehouseCategoryRef, error)
	GetNomenclature(ctx context.Context, search string) ([]entities.NomenclatureRef, error)
}

type catalogRepository struct {
	storage *pgxpool.Pool
}

func NewCatalogRepository(storage *pgxpool.Pool) CatalogRepositoryInterface {
	return &catalogRepository{storage: storage}
}

func (r *catalogRepository) GetAllUnits(ctx context.Context) ([]entities.UnitRef, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY name", unitFields, unitTable)

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки единиц измерения: %w", err)
	}
	defer rows.Close()

	units := make([]entities.UnitRef, 0)
	for rows.Next() {
		var unit entities.UnitRef
		if err := rows.Scan(&unit.ID, &unit.Name); err != nil {
			return nil, fmt.Errorf("ошибка сканирования единицы измерения: %w", err)
		}
		units = append(units, unit)
	}
	return units, rows.Err()
}

func (r *catalogRepository) GetAllWarehouseCategories(ctx context.Context) ([]entities.WarehouseCategoryRef, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY name", warehouseCategoryFields, warehouseCategoryTable)

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки товарных категорий: %w", err)
	}
	defer rows.Close()

	categories := make([]entities.WarehouseCategoryRef, 0)
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

// GetNomenclature возвращает номенклатуру, при непустом search -
// с фильтром ILIKE по имени и артикулу.
func (r *catalogRepository) GetNomenclature(ctx context.Context, search string) ([]entities.NomenclatureRef, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Select(nomenclatureFields).
		From(nomenclatureTable).
		OrderBy("created_at DESC")

	if search != "" {
		pattern := "%" + search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"article": pattern},
		})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса GetNomenclature: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки номенклатуры: %w", err)
	}
	defer rows.Close()

	nomenclature := make([]entities.NomenclatureRef, 0)
	for rows.Next() {
		n, err := scanNomenclature(rows)
		if err != nil {
			return nil, err
		}
		nomenclature = append(nomenclature, n)
	}
	return nomenclature, rows.Err()
}
