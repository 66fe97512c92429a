package utils

import (
	"keepnotes/internal/domain/entity"
	"keepnotes/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func GetUserFromContext(c echo.Context) (*entity.Account, apierror.ErrorResponse) {
	val := c.Get("user")
	if val == nil {
		log.Warnf("route %s attempted to read nil user from context", c.Request().URL)
		return nil, apierror.CredentialsNotProvidedError
	}

	user, ok := val.(*entity.Account)
	if !ok {
		log.Warnf("expected account type at 'user' context key, got %v", val)
		return nil, apierror.UnexpectedError
	}
	return user, nil
}
