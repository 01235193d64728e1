package postgresql

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectDB создаёт пул соединений к одной из баз (auth / supply / reference).
func ConnectDB(dsn string, name string) *pgxpool.Pool {
	dbpool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("Ошибка создания пула соединений к БД %s: %v", name, err)
	}

	if err := dbpool.Ping(context.Background()); err != nil {
		log.Fatalf("Не удалось пинговать БД %s: %v", name, err)
	}

	log.Printf("✅ Подключено к PostgreSQL (%s)", name)
	return dbpool
}
