package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stepanovme/SupplyServiceApi/internal/entities"
	apperrors "github.com/stepanovme/SupplyServiceApi/pkg/errors"
	"github.com/stepanovme/SupplyServiceApi/pkg/utils"
)

type fakeSessionRepo struct {
	sessions map[string]entities.Session
	calls    int
}

func (f *fakeSessionRepo) GetByTokenHash(_ context.Context, tokenHash string) (entities.Session, error) {
	f.calls++
	if session, ok := f.sessions[tokenHash]; ok {
		return session, nil
	}
	return entities.Session{}, apperrors.ErrInvalidSession
}

type fakeCache struct {
	values map[string]string
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	if value, ok := f.values[key]; ok {
		return value, nil
	}
	return "", apperrors.ErrNotFound
}

func (f *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	if f.values == nil {
		f.values = map[string]string{}
	}
	f.values[key] = value
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	delete(f.values, key)
	return nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func runRequest(t *testing.T, sessionRepo *fakeSessionRepo, cache *fakeCache, cookie *http.Cookie) (*httptest.ResponseRecorder, string) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	var gotUserID string
	handler := SessionAuth(sessionRepo, cache, time.Minute, zap.NewNop())(func(c echo.Context) error {
		userID, err := utils.GetUserIDFromCtx(c.Request().Context())
		require.NoError(t, err)
		gotUserID = userID
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(ctx))
	return rec, gotUserID
}

func TestSessionAuth_MissingCookie(t *testing.T) {
	rec, _ := runRequest(t, &fakeSessionRepo{}, &fakeCache{}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAuth_UnknownToken(t *testing.T) {
	rec, _ := runRequest(t, &fakeSessionRepo{}, &fakeCache{}, &http.Cookie{Name: "session", Value: "ghost"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAuth_DatabaseHitThenCache(t *testing.T) {
	sessionRepo := &fakeSessionRepo{sessions: map[string]entities.Session{
		hashToken("tok"): {ID: "s1", UserID: "u1", TokenHash: hashToken("tok"), ExpiresAt: time.Now().Add(time.Hour)},
	}}
	cache := &fakeCache{}
	cookie := &http.Cookie{Name: "session", Value: "tok"}

	rec, userID := runRequest(t, sessionRepo, cache, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, 1, sessionRepo.calls)

	// Второй запрос обслуживается из кэша, без похода в базу.
	rec, userID = runRequest(t, sessionRepo, cache, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, 1, sessionRepo.calls)
}
