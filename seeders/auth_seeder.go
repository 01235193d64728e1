package seeders

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/stepanovme/SupplyServiceApi/pkg/utils"
)

type demoUser struct {
	Name       string
	Surname    string
	Patronymic string
	Token      string
}

var demoUsers = []demoUser{
	{Name: "Иван", Surname: "Иванов", Patronymic: "Петрович", Token: "demo-requester"},
	{Name: "Пётр", Surname: "Петров", Patronymic: "", Token: "demo-approver"},
}

// SeedAuthDemo заводит демо-пользователей и живые сессии для стендов.
// Схемой auth-базы владеет сервис аутентификации, здесь только данные.
func SeedAuthDemo(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	for _, demo := range demoUsers {
		passwordHash, err := utils.HashPassword("demo-password")
		if err != nil {
			return fmt.Errorf("хэширование демо-пароля: %w", err)
		}

		userID := uuid.NewString()
		tag, err := pool.Exec(ctx,
			`INSERT INTO users (id, name, surname, patronymic, password_hash)
			 SELECT $1, $2, $3, $4, $5
			 WHERE NOT EXISTS (SELECT 1 FROM users WHERE surname = $3 AND name = $2)`,
			userID, demo.Name, demo.Surname, demo.Patronymic, passwordHash,
		)
		if err != nil {
			return fmt.Errorf("сидирование пользователя %s: %w", demo.Surname, err)
		}
		if tag.RowsAffected() == 0 {
			continue
		}

		sum := sha256.Sum256([]byte(demo.Token))
		if _, err := pool.Exec(ctx,
			`INSERT INTO sessions (id, user_id, token_hash, expires_at)
			 VALUES ($1, $2, $3, $4)`,
			uuid.NewString(), userID, hex.EncodeToString(sum[:]), time.Now().Add(30*24*time.Hour),
		); err != nil {
			return fmt.Errorf("сидирование сессии для %s: %w", demo.Surname, err)
		}
		logger.Info("создан демо-пользователь",
			zap.String("surname", demo.Surname),
			zap.String("session_token", demo.Token),
		)
	}
	return nil
}
