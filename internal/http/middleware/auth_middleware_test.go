package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"keepnotes/internal/domain/entity"
	"keepnotes/internal/token"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccounts struct {
	account *entity.Account
}

func (f *fakeAccounts) FindActiveByID(id int) (*entity.Account, error) {
	if f.account != nil && f.account.ID == id {
		return f.account, nil
	}
	return nil, nil
}

type fakeSessions struct {
	tokens map[int]string
}

func (f *fakeSessions) GetToken(_ context.Context, userID int) (string, error) {
	return f.tokens[userID], nil
}

func invoke(t *testing.T, mw echo.MiddlewareFunc, authorization string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/manage-notes", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	handler := mw(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, reached
}

func TestAuthMiddleware(t *testing.T) {
	codec := token.NewCodec("test-secret", time.Hour)
	account := &entity.Account{ID: 42, Email: "user@example.com", IsActive: true}

	issued, err := codec.Encode(account.ID)
	require.NoError(t, err)

	sessions := &fakeSessions{tokens: map[int]string{account.ID: issued}}
	mw := NewAuthMiddleware(&AuthMiddlewareConfig{
		Accounts: &fakeAccounts{account: account},
		Sessions: sessions,
		Tokens:   codec,
	})

	t.Run("missing header", func(t *testing.T) {
		rec, reached := invoke(t, mw, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, reached)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec, reached := invoke(t, mw, "Bearer not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "valid token")
		assert.False(t, reached)
	})

	t.Run("expired token", func(t *testing.T) {
		expiredCodec := token.NewCodec("test-secret", -time.Minute)
		expired, err := expiredCodec.Encode(account.ID)
		require.NoError(t, err)

		rec, reached := invoke(t, mw, "Bearer "+expired)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, reached)
	})

	t.Run("no session", func(t *testing.T) {
		orphan, err := codec.Encode(99)
		require.NoError(t, err)

		rec, reached := invoke(t, mw, "Bearer "+orphan)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, reached)
	})

	t.Run("superseded by newer login", func(t *testing.T) {
		// A longer TTL guarantees a token distinct from the first one.
		newer, err := token.NewCodec("test-secret", 2*time.Hour).Encode(account.ID)
		require.NoError(t, err)
		sessions.tokens[account.ID] = newer

		// The previously issued token no longer matches the cache.
		rec, reached := invoke(t, mw, "Bearer "+issued)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, reached)

		sessions.tokens[account.ID] = issued
	})

	t.Run("valid token reaches the handler", func(t *testing.T) {
		rec, reached := invoke(t, mw, "Bearer "+issued)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, reached)
	})
}
