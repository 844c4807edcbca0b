package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrBadRequest         = errors.New("bad request")
	ErrInvalidDocument    = errors.New("invalid CPF/CNPJ")
	ErrVendorNotFound     = errors.New("document not found")
	ErrProspectNotFound   = errors.New("document not found in prospect sheet")
	ErrSubmissionExists   = errors.New("submission already exists for this document")
	ErrMissingIdentifier  = errors.New("merchant identifier required for edit")
	ErrMissingVendorID    = errors.New("vendorId is required")
	ErrVendorNotConfirmed = errors.New("vendor is not confirmed")
	ErrStorage            = errors.New("storage unavailable")
	ErrPersistence        = errors.New("persistence failure")
	ErrPartialWrite       = errors.New("submission partially written")
	ErrSubmissionInFlight = errors.New("submission already in progress")
	ErrStepOutOfOrder     = errors.New("wizard step not reachable")
	ErrStepIncomplete     = errors.New("wizard steps incomplete")
	ErrSessionNotFound    = errors.New("wizard session not found")
)

// Error codes returned to clients
const (
	CodeBadRequest       = "ERR_BAD_REQUEST"
	CodeInvalidInput     = "ERR_INVALID_INPUT"
	CodeNotFound         = "ERR_NOT_FOUND"
	CodeInternalError    = "ERR_INTERNAL"
	CodeInvalidDocument  = "ERR_INVALID_DOCUMENT"
	CodeMissingID        = "ERR_MISSING_IDENTIFIER"
	CodeSubmissionExists = "ERR_SUBMISSION_EXISTS"
	CodeInFlight         = "ERR_SUBMISSION_IN_FLIGHT"
	CodeStorage          = "ERR_STORAGE"
	CodeForbidden        = "ERR_FORBIDDEN"
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, ErrInvalidInput)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

// ValidationError reports malformed or missing input. Field is empty when the
// problem is not tied to a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError builds a ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// StorageError wraps a read failure of the underlying store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error {
	return []error{ErrStorage, e.Err}
}

// NewStorageError wraps err, keeping the cause available to errors.Is/As.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// PersistenceError wraps a write failure of one reconciliation step.
// Completed lists the steps that finished before Step failed; when it is not
// empty the error also matches ErrPartialWrite.
type PersistenceError struct {
	Step      string
	Completed []string
	Err       error
}

func (e *PersistenceError) Error() string {
	if len(e.Completed) > 0 {
		return fmt.Sprintf("persistence error at %s (after %s): %v", e.Step, strings.Join(e.Completed, ", "), e.Err)
	}
	return fmt.Sprintf("persistence error at %s: %v", e.Step, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	errs := []error{ErrPersistence, e.Err}
	if e.Partial() {
		errs = append(errs, ErrPartialWrite)
	}
	return errs
}

// Partial reports whether at least one step finished before the failure.
func (e *PersistenceError) Partial() bool {
	return len(e.Completed) > 0
}

// FromDomain translates a domain error into the AppError shown to clients.
// Storage and persistence causes are never exposed.
func FromDomain(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		return NewAppError(http.StatusBadRequest, CodeInvalidInput, vErr.Error(), err)
	case errors.Is(err, ErrInvalidDocument):
		return NewAppError(http.StatusBadRequest, CodeInvalidDocument, "CPF/CNPJ inválido", err)
	case errors.Is(err, ErrMissingVendorID):
		return NewAppError(http.StatusBadRequest, CodeInvalidInput, "vendorId obrigatório", err)
	case errors.Is(err, ErrMissingIdentifier):
		return NewAppError(http.StatusBadRequest, CodeMissingID, "merchantId obrigatório para edição", err)
	case errors.Is(err, ErrStepOutOfOrder), errors.Is(err, ErrStepIncomplete):
		return NewAppError(http.StatusBadRequest, CodeBadRequest, err.Error(), err)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrBadRequest):
		return NewAppError(http.StatusBadRequest, CodeInvalidInput, err.Error(), err)
	case errors.Is(err, ErrVendorNotFound), errors.Is(err, ErrProspectNotFound):
		return NewAppError(http.StatusNotFound, CodeNotFound, "Documento não encontrado. Entre em contato com o suporte.", err)
	case errors.Is(err, ErrSessionNotFound):
		return NewAppError(http.StatusNotFound, CodeNotFound, "Sessão não encontrada", err)
	case errors.Is(err, ErrVendorNotConfirmed):
		return NewAppError(http.StatusForbidden, CodeForbidden, "Cadastro ainda não confirmado", err)
	case errors.Is(err, ErrSubmissionExists):
		return NewAppError(http.StatusConflict, CodeSubmissionExists, "Cadastro já foi enviado anteriormente para este documento.", err)
	case errors.Is(err, ErrSubmissionInFlight):
		return NewAppError(http.StatusConflict, CodeInFlight, "Envio já em andamento", err)
	case errors.Is(err, ErrStorage), errors.Is(err, ErrPersistence):
		return NewAppError(http.StatusInternalServerError, CodeStorage, "Erro ao acessar os dados. Tente novamente.", err)
	case errors.Is(err, ErrNotFound):
		return NewAppError(http.StatusNotFound, CodeNotFound, "Registro não encontrado", err)
	default:
		return InternalError(err)
	}
}
