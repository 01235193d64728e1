// Накатывает goose-миграции на базу снабжения и наполняет стартовые
// справочники. Запуск: go run ./seeders/cmd/seed [--with-auth-demo]
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/stepanovme/SupplyServiceApi/pkg/config"
	"github.com/stepanovme/SupplyServiceApi/pkg/database/postgresql"
	applogger "github.com/stepanovme/SupplyServiceApi/pkg/logger"
	"github.com/stepanovme/SupplyServiceApi/seeders"
)

func main() {
	withAuthDemo := flag.Bool("with-auth-demo", false, "создать демо-пользователей в auth-базе")
	flag.Parse()

	cfg := config.New()
	logger := applogger.NewLogger()
	defer logger.Sync()

	db, err := sql.Open("pgx", cfg.Postgres.SupplyDSN)
	if err != nil {
		log.Fatalf("не удалось открыть базу снабжения: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("goose: %v", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("не удалось накатить миграции: %v", err)
	}

	ctx := context.Background()

	supplyPool := postgresql.ConnectDB(cfg.Postgres.SupplyDSN, "supply")
	defer supplyPool.Close()
	if err := seeders.SeedSupply(ctx, supplyPool, logger); err != nil {
		log.Fatalf("сидирование базы снабжения: %v", err)
	}

	if *withAuthDemo {
		authPool := postgresql.ConnectDB(cfg.Postgres.AuthDSN, "auth")
		defer authPool.Close()
		if err := seeders.SeedAuthDemo(ctx, authPool, logger); err != nil {
			log.Fatalf("сидирование auth-базы: %v", err)
		}
	}
}
