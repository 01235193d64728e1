package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/stepanovme/SupplyServiceApi/internal/repositories"
	"github.com/stepanovme/SupplyServiceApi/pkg/constants"
	"github.com/stepanovme/SupplyServiceApi/pkg/contextkeys"
	apperrors "github.com/stepanovme/SupplyServiceApi/pkg/errors"
	"github.com/stepanovme/SupplyServiceApi/pkg/utils"
)

const sessionCookieName = "session"

// SessionAuth проверяет сессионную cookie: sha256 от токена ищется
// сначала в кэше, затем в базе аутентификации. ID пользователя кладётся
// в контекст запроса.
func SessionAuth(
	sessionRepo repositories.SessionRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			cookie, err := ctx.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				return utils.ErrorResponse(ctx, apperrors.ErrSessionTokenMissing, logger)
			}

			sum := sha256.Sum256([]byte(cookie.Value))
			tokenHash := hex.EncodeToString(sum[:])
			cacheKey := fmt.Sprintf(constants.CacheKeySession, tokenHash)

			reqCtx := ctx.Request().Context()

			userID, err := cache.Get(reqCtx, cacheKey)
			if err != nil {
				if !errors.Is(err, apperrors.ErrNotFound) {
					// Кэш недоступен - идём в базу.
					logger.Warn("кэш сессий недоступен", zap.Error(err))
				}

				session, err := sessionRepo.GetByTokenHash(reqCtx, tokenHash)
				if err != nil {
					return utils.ErrorResponse(ctx, err, logger)
				}
				userID = session.UserID

				if err := cache.Set(reqCtx, cacheKey, userID, cacheTTL); err != nil {
					logger.Warn("не удалось записать сессию в кэш", zap.Error(err))
				}
			}

			request := ctx.Request().WithContext(
				context.WithValue(reqCtx, contextkeys.UserIDKey, userID),
			)
			ctx.SetRequest(request)
			return next(ctx)
		}
	}
}
