package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stepanovme/SupplyServiceApi/internal/entities"
	apperrors "github.com/stepanovme/SupplyServiceApi/pkg/errors"
)

const (
	sessionTable  = "sessions"
	sessionFields = "id, user_id, token_hash, expires_at"
)

type SessionRepositoryInterface interface {
	// GetByTokenHash ищет живую сессию по sha256-хэшу токена.
	// Просроченные сессии считаются отсутствующими.
	GetByTokenHash(ctx context.Context, tokenHash string) (entities.Session, error)
}

type sessionRepository struct {
	storage *pgxpool.Pool
}

func NewSessionRepository(storage *pgxpool.Pool) SessionRepositoryInterface {
	return &sessionRepository{storage: storage}
}

func (r *sessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (entities.Session, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE token_hash = $1 AND expires_at > NOW()`, sessionFields, sessionTable)

	var session entities.Session
	err := r.storage.QueryRow(ctx, query, tokenHash).
		Scan(&session.ID, &session.UserID, &session.TokenHash, &session.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.Session{}, apperrors.ErrInvalidSession
		}
		return entities.Session{}, fmt.Errorf("ошибка выборки сессии: %w", err)
	}
	return session, nil
}
