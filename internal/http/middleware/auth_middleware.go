package middleware

import (
	"context"
	"errors"
	"strings"

	"keepnotes/internal/domain/entity"
	"keepnotes/internal/token"
	"keepnotes/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type AccountRepository interface {
	FindActiveByID(id int) (*entity.Account, error)
}

type SessionCache interface {
	GetToken(ctx context.Context, userID int) (string, error)
}

type TokenCodec interface {
	Decode(raw string) (int, error)
}

type AuthMiddlewareConfig struct {
	Accounts AccountRepository
	Sessions SessionCache
	Tokens   TokenCodec
}

// NewAuthMiddleware builds the auth gate: bearer token extraction,
// signature/expiry verification, then a session cache comparison. The
// cached token must equal the presented one, which is what revokes older
// tokens when the same account logs in again.
func NewAuthMiddleware(cfg *AuthMiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(echo.HeaderAuthorization)
			if raw == "" {
				return c.JSON(apierror.CredentialsNotProvidedError.Code(), apierror.CredentialsNotProvidedError)
			}

			presented := strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
			userID, err := cfg.Tokens.Decode(presented)
			if errors.Is(err, token.ErrExpired) {
				return c.JSON(apierror.TokenExpiredError.Code(), apierror.TokenExpiredError)
			}
			if err != nil {
				return c.JSON(apierror.InvalidTokenError.Code(), apierror.InvalidTokenError)
			}

			ctx := c.Request().Context()
			cached, err := cfg.Sessions.GetToken(ctx, userID)
			if err != nil {
				log.Errorf("session cache lookup failed: %v", err)
				return c.JSON(apierror.UnexpectedError.Code(), apierror.UnexpectedError)
			}

			// Absent entry covers logout and server-side invalidation;
			// mismatch covers a newer login superseding this token.
			if cached == "" || cached != presented {
				return c.JSON(apierror.SessionNotFoundError.Code(), apierror.SessionNotFoundError)
			}

			account, err := cfg.Accounts.FindActiveByID(userID)
			if err != nil {
				log.Errorf("failed to resolve account %d: %v", userID, err)
				return c.JSON(apierror.UnexpectedError.Code(), apierror.UnexpectedError)
			}

			if account == nil {
				return c.JSON(apierror.SessionNotFoundError.Code(), apierror.SessionNotFoundError)
			}

			c.Set("user", account)
			return next(c)
		}
	}
}
