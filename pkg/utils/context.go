package utils

import (
	"context"

	"github.com/stepanovme/SupplyServiceApi/pkg/contextkeys"
	apperrors "github.com/stepanovme/SupplyServiceApi/pkg/errors"
)

// GetUserIDFromCtx достаёт ID пользователя, записанный auth-middleware.
func GetUserIDFromCtx(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(string)
	if !ok || userID == "" {
		return "", apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}
