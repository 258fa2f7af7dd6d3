package constants

import "net/http"

type CodedError struct {
	msg  string
	code int
}

func NewCodedError(msg string, code int) *CodedError {
	return &CodedError{msg: msg, code: code}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrInvalidArgument  = NewCodedError("invalid argument", http.StatusBadRequest)
	ErrNotFound         = NewCodedError("not found", http.StatusNotFound)
	ErrPriceUnresolved  = NewCodedError("price unresolved", http.StatusUnprocessableEntity)
	ErrDBNotFound       = NewCodedError("not found in db", http.StatusNotFound)
	ErrUnauthorized     = NewCodedError("unauthorized", http.StatusUnauthorized)
	ErrUpstream         = NewCodedError("game backend unavailable", http.StatusBadGateway)
	ErrCatalogNotLoaded = NewCodedError("reference catalog is not loaded yet", http.StatusServiceUnavailable)
	ErrJournalDisabled  = NewCodedError("settlement journal is not configured", http.StatusNotImplemented)
)
