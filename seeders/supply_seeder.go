package seeders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/stepanovme/SupplyServiceApi/pkg/constants"
)

// statusNames - справочник статусов жизненного цикла заявки. Статус
// "Новая" обязан иметь фиксированный ID: его проставляет сервис при
// создании заявки.
var statusNames = map[string]string{
	constants.RequestStatusNewID: "Новая",
}

var extraStatusNames = []string{
	"В работе",
	"Согласована",
	"Отклонена",
	"Завершена",
}

var unitNames = []string{"шт", "т", "кг", "м", "м2", "м3", "л", "компл"}

// SeedSupply наполняет базу снабжения стартовыми справочниками.
// Повторный запуск ничего не дублирует.
func SeedSupply(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	if err := seedStatuses(ctx, pool); err != nil {
		return fmt.Errorf("сидирование статусов: %w", err)
	}
	if err := seedUnits(ctx, pool); err != nil {
		return fmt.Errorf("сидирование единиц измерения: %w", err)
	}
	if err := seedFileTypes(ctx, pool); err != nil {
		return fmt.Errorf("сидирование типов файлов: %w", err)
	}
	if err := seedCatalogDemo(ctx, pool); err != nil {
		return fmt.Errorf("сидирование демо-номенклатуры: %w", err)
	}
	logger.Info("база снабжения наполнена стартовыми данными")
	return nil
}

func seedStatuses(ctx context.Context, pool *pgxpool.Pool) error {
	for id, name := range statusNames {
		if _, err := pool.Exec(ctx,
			`INSERT INTO status (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
			id, name,
		); err != nil {
			return err
		}
	}
	for _, name := range extraStatusNames {
		if _, err := pool.Exec(ctx,
			`INSERT INTO status (id, name)
			 SELECT $1, $2 WHERE NOT EXISTS (SELECT 1 FROM status WHERE name = $2)`,
			uuid.NewString(), name,
		); err != nil {
			return err
		}
	}
	return nil
}

func seedUnits(ctx context.Context, pool *pgxpool.Pool) error {
	for _, name := range unitNames {
		if _, err := pool.Exec(ctx,
			`INSERT INTO unit (id, name)
			 SELECT $1, $2 WHERE NOT EXISTS (SELECT 1 FROM unit WHERE name = $2)`,
			uuid.NewString(), name,
		); err != nil {
			return err
		}
	}
	return nil
}

func seedFileTypes(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx,
		`INSERT INTO file_types (id, code, name, description, allowed_extensions, max_size_mb)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (code) DO NOTHING`,
		uuid.NewString(),
		constants.FileTypeRequestAttachment,
		"Вложение заявки",
		"Документы, прикладываемые к заявкам на снабжение",
		[]string{"pdf", "doc", "docx", "xls", "xlsx", "jpg", "jpeg", "png"},
		20,
	)
	return err
}

// seedCatalogDemo - небольшой демонстрационный набор номенклатуры для
// стендов. В продуктиве справочники приходят из внешней системы.
func seedCatalogDemo(ctx context.Context, pool *pgxpool.Pool) error {
	categoryID := uuid.NewString()
	if _, err := pool.Exec(ctx,
		`INSERT INTO warehouse_category (id, name)
		 SELECT $1, $2 WHERE NOT EXISTS (SELECT 1 FROM warehouse_category WHERE name = $2)`,
		categoryID, "Металлопрокат",
	); err != nil {
		return err
	}

	if _, err := pool.Exec(ctx,
		`INSERT INTO nomenclature (id, warehouse_category_id, name, article, unit_id)
		 SELECT $1, wc.id, $2, $3, u.id
		 FROM warehouse_category wc, unit u
		 WHERE wc.name = 'Металлопрокат' AND u.name = 'т'
		   AND NOT EXISTS (SELECT 1 FROM nomenclature WHERE name = $2)`,
		uuid.NewString(), "Арматура А500С d12", "ARM-500-12",
	); err != nil {
		return err
	}
	return nil
}
