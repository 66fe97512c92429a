package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

// APIError serializes to the uniform failure envelope
// {"status": false, "message": ...}.
type APIError struct {
	Ok         bool   `json:"status"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.HTTPStatus
}

// StructuredError carries per-field validation problems on top of the
// uniform envelope.
type StructuredError struct {
	Ok         bool                `json:"status"`
	Message    string              `json:"message"`
	Errors     map[string][]string `json:"errors"`
	HTTPStatus int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.HTTPStatus
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

var (
	MalformedBodyError = NewSimple(400, "Malformed request body")
	UnexpectedError    = NewSimple(400, "Something went wrong. Please try again.")

	NoteNotFoundError  = NewSimple(404, "Note not found")
	LabelNotFoundError = NewSimple(404, "Label not found")

	/*
	 * Used for authentication
	 */
	CredentialsNotProvidedError = NewSimple(401, "User credentials not provided")
	InvalidTokenError           = NewSimple(401, "Please enter a valid token")
	TokenExpiredError           = NewSimple(401, "Token has expired, please log in again")
	SessionNotFoundError        = NewSimple(401, "Session not found, please log in again")
	AccountNotFoundError        = NewSimple(400, "Account does not exist")
	InvalidCredentialsError     = NewSimple(400, "Invalid credentials")
	UnverifiedAccountError      = NewSimple(400, "Please verify your email to activate your account")
	EmailExistsError            = NewSimple(400, "Email already exists")
	ResetTokenInvalidError      = NewSimple(400, "Token is not valid, please request a new one")

	/*
	 * Referenced-resource resolution on note create/update
	 */
	CollaboratorNotFoundError = NewSimple(400, "No such user account exists")
	LabelRefNotFoundError     = NewSimple(400, "No such label exists")
	DuplicateLabelError       = NewSimple(400, "Label name already exists")
)

func FromValidationError(err error) ErrorResponse {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return UnexpectedError
	}

	problems := map[string][]string{}
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())

		switch fe.Tag() {
		case "required":
			problems[field] = append(problems[field], "This field is required")
		case "min":
			problems[field] = append(problems[field], "Value is too short, min: "+fe.Param())
		case "max":
			problems[field] = append(problems[field], "Value is too long, max: "+fe.Param())
		case "hasupper":
			problems[field] = append(problems[field], "Value must have at least one uppercase character")
		case "haslower":
			problems[field] = append(problems[field], "Value must have at least one lowercase character")
		case "hasdigit":
			problems[field] = append(problems[field], "Value must have at least one number")
		case "hasspecial":
			problems[field] = append(problems[field], "Value must have at least one special character")
		case "email":
			problems[field] = append(problems[field], "Value must be a valid email address")
		case "datetime":
			problems[field] = append(problems[field], "Value must be an RFC 3339 timestamp")

		default:
			problems[field] = append(problems[field], "Invalid value provided")
		}
	}

	return &StructuredError{
		Message:    "Please enter proper details for each field",
		Errors:     problems,
		HTTPStatus: http.StatusBadRequest,
	}
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{HTTPStatus: status, Message: msg}
}

func NewInvalidParamTypeError(name, dataType string) *APIError {
	return NewSimple(http.StatusBadRequest, "Parameter '%s' has invalid type, expected: %s", name, dataType)
}

func NewInvalidFileExtError(ext string) *APIError {
	return NewSimple(http.StatusBadRequest, "File extension '%s' is not an accepted image type", ext)
}
