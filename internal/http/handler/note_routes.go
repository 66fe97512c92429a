package handler

import (
	"context"
	"mime/multipart"
	"net/http"
	"strconv"

	"keepnotes/internal/contract"
	"keepnotes/internal/domain/entity"
	"keepnotes/internal/utils"
	"keepnotes/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type NoteService interface {
	GetNotes(actor *entity.Account) ([]*contract.NoteResponse, apierror.ErrorResponse)
	GetPinnedNotes(actor *entity.Account) ([]*contract.NoteResponse, apierror.ErrorResponse)
	GetArchivedNotes(actor *entity.Account) ([]*contract.NoteResponse, apierror.ErrorResponse)
	GetTrashedNotes(actor *entity.Account) ([]*contract.NoteResponse, apierror.ErrorResponse)
	SearchNotes(actor *entity.Account, query string) ([]*contract.NoteResponse, apierror.ErrorResponse)
	GetNote(ctx context.Context, actor *entity.Account, noteID int) (*contract.NoteResponse, apierror.ErrorResponse)
	GetTrashedNote(actor *entity.Account, noteID int) (*contract.NoteResponse, apierror.ErrorResponse)
	CreateNote(ctx context.Context, actor *entity.Account, req *contract.NoteRequest) (*contract.NoteResponse, apierror.ErrorResponse)
	UpdateNote(ctx context.Context, actor *entity.Account, noteID int, req *contract.UpdateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse)
	DeleteNote(ctx context.Context, actor *entity.Account, noteID int) apierror.ErrorResponse
	AttachImage(ctx context.Context, actor *entity.Account, noteID int, fileHeader *multipart.FileHeader) (*contract.NoteResponse, apierror.ErrorResponse)
}

type DefaultNoteRoute struct {
	NoteService NoteService
}

func NewNoteDefault(noteService NoteService) *DefaultNoteRoute {
	return &DefaultNoteRoute{NoteService: noteService}
}

// GetNotes lists the caller's notes. A `pk` query parameter switches to
// the single-note detail lookup.
func (n *DefaultNoteRoute) GetNotes(c echo.Context) error {
	actor, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	if pk := c.QueryParam("pk"); pk != "" {
		id, err := strconv.Atoi(pk)
		if err != nil {
			return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("pk", "int"))
		}
		return n.detail(c, actor, id)
	}

	notes, apierr := n.NoteService.GetNotes(actor)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, contract.OK("retrieved successfully", notes))
}

func (n *DefaultNoteRoute) GetNote(c echo.Context) error {
	actor, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}
	return n.detail(c, actor, id)
}

func (n *DefaultNoteRoute) detail(c echo.Context, actor *entity.Account, id int) error {
	note, apierr := n.NoteService.GetNote(c.Request().Context(), actor, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, contract.OK("retrieved successfully", note))
}

func (n *DefaultNoteRoute) CreateNote(c echo.Context) error {
	actor, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.NoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	note, apierr := n.NoteService.CreateNote(c.Request().Context(), actor, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, contract.OK("created successfully", note))
}

// UpdateNote serves both PUT and PATCH; absent fields are left untouched.
func (n *DefaultNoteRoute) UpdateNote(c echo.Context) error {
	actor, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	var req contract.UpdateNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	note, apierr := n.NoteService.UpdateNote(c.Request().Context(), actor, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, contract.OK("updated successfully", note))
}

func (n *DefaultNoteRoute) DeleteNote(c echo.Context) error {
	actor, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	if apierr := n.NoteService.DeleteNote(c.Request().Context(), actor, id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}

func (n *DefaultNoteRoute) AttachImage(c echo.Context) error {
	actor, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "int"))
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewSimple(400, "Image file is required"))
	}

	note, apierr := n.NoteService.AttachImage(c.Request().Context(), actor, id, fileHeader)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, contract.OK("image attached", note))
}

func (n *DefaultNoteRoute) GetPinnedNotes(c echo.Context) error {
	return n.listing(c, n.NoteService.GetPinnedNotes)
}

func (n *DefaultNoteRoute) GetArchivedNotes(c echo.Context) error {
	return n.listing(c, n.NoteService.GetArchivedNotes)
}

func (n *DefaultNoteRoute) GetTrashedNotes(c echo.Context) error {
	actor, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	if pk := c.QueryParam("pk"); pk != "" {
		id, err := strconv.Atoi(pk)
		if err != nil {
			return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("pk", "int"))
		}

		note, apierr := n.NoteService.GetTrashedNote(actor, id)
		if apierr != nil {
			return c.JSON(apierr.Code(), apierr)
		}
		return c.JSON(http.StatusOK, contract.OK("retrieved successfully", note))
	}

	notes, apierr := n.NoteService.GetTrashedNotes(actor)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, contract.OK("retrieved successfully", notes))
}

func (n *DefaultNoteRoute) SearchNotes(c echo.Context) error {
	actor, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	notes, apierr := n.NoteService.SearchNotes(actor, c.QueryParam("q"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, contract.OK("retrieved successfully", notes))
}

func (n *DefaultNoteRoute) listing(c echo.Context, fetch func(*entity.Account) ([]*contract.NoteResponse, apierror.ErrorResponse)) error {
	actor, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	notes, apierr := fetch(actor)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, contract.OK("retrieved successfully", notes))
}
