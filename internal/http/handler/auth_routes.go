package handler

import (
	"context"
	"net/http"

	"keepnotes/internal/contract"
	"keepnotes/internal/domain/entity"
	"keepnotes/internal/utils"
	"keepnotes/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type AuthService interface {
	Register(req *contract.RegisterRequest) (*contract.AccountResponse, apierror.ErrorResponse)
	VerifyEmail(rawToken string) apierror.ErrorResponse
	Login(ctx context.Context, req *contract.LoginRequest) (string, apierror.ErrorResponse)
	Logout(ctx context.Context, actor *entity.Account) apierror.ErrorResponse
	RequestPasswordReset(ctx context.Context, req *contract.ResetRequest) apierror.ErrorResponse
	CompletePasswordReset(ctx context.Context, req *contract.ResetCompleteRequest) apierror.ErrorResponse
}

type DefaultAuthRoute struct {
	AuthService AuthService
}

func NewAuthDefault(authService AuthService) *DefaultAuthRoute {
	return &DefaultAuthRoute{AuthService: authService}
}

func (a *DefaultAuthRoute) Register(c echo.Context) error {
	var req contract.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	account, apierr := a.AuthService.Register(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, contract.OK("Registration successful", account))
}

func (a *DefaultAuthRoute) VerifyEmail(c echo.Context) error {
	rawToken := c.QueryParam("token")
	if rawToken == "" {
		return c.JSON(http.StatusBadRequest, apierror.InvalidTokenError)
	}

	if apierr := a.AuthService.VerifyEmail(rawToken); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, contract.OK("User activated", nil))
}

func (a *DefaultAuthRoute) Login(c echo.Context) error {
	var req contract.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	signed, apierr := a.AuthService.Login(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, contract.OK("Token generated", signed))
}

func (a *DefaultAuthRoute) Logout(c echo.Context) error {
	actor, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	if apierr := a.AuthService.Logout(c.Request().Context(), actor); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, contract.OK("Logged out", nil))
}

func (a *DefaultAuthRoute) RequestPasswordReset(c echo.Context) error {
	var req contract.ResetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	if apierr := a.AuthService.RequestPasswordReset(c.Request().Context(), &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, contract.OK("We have sent you a link to reset your password", nil))
}

func (a *DefaultAuthRoute) CompletePasswordReset(c echo.Context) error {
	var req contract.ResetCompleteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	if apierr := a.AuthService.CompletePasswordReset(c.Request().Context(), &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, contract.OK("Password reset success", nil))
}
