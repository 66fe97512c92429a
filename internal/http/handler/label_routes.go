package handler

import (
	"net/http"
	"strconv"

	"keepnotes/internal/contract"
	"keepnotes/internal/domain/entity"
	"keepnotes/internal/utils"
	"keepnotes/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type LabelService interface {
	GetLabels(actor *entity.Account) ([]*contract.LabelResponse, apierror.ErrorResponse)
	GetLabel(actor *entity.Account, labelID int) (*contract.LabelResponse, apierror.ErrorResponse)
	CreateLabel(actor *entity.Account, req *contract.LabelRequest) (*contract.LabelResponse, apierror.ErrorResponse)
	UpdateLabel(actor *entity.Account, labelID int, req *contract.UpdateLabelRequest) (*contract.LabelResponse, apierror.ErrorResponse)
	DeleteLabel(actor *entity.Account, labelID int) apierror.ErrorResponse
}

type DefaultLabelRoute struct {
	LabelService LabelService
}

func NewLabelDefault(labelService LabelService) *DefaultLabelRoute {
	return &DefaultLabelRoute{LabelService: labelService}
}

func (l *DefaultLabelRoute) GetLabels(c echo.Context) error {
	actor, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	labels, apierr := l.LabelService.GetLabels(actor)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, contract.OK("retrieved successfully", labels))
}

func (l *DefaultLabelRoute) GetLabel(c echo.Context) error {
	actor, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	label, apierr := l.LabelService.GetLabel(actor, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, contract.OK("retrieved successfully", label))
}

func (l *DefaultLabelRoute) CreateLabel(c echo.Context) error {
	actor, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.LabelRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	label, apierr := l.LabelService.CreateLabel(actor, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, contract.OK("created successfully", label))
}

func (l *DefaultLabelRoute) UpdateLabel(c echo.Context) error {
	actor, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	var req contract.UpdateLabelRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	label, apierr := l.LabelService.UpdateLabel(actor, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, contract.OK("updated successfully", label))
}

func (l *DefaultLabelRoute) DeleteLabel(c echo.Context) error {
	actor, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	if apierr := l.LabelService.DeleteLabel(actor, id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}
