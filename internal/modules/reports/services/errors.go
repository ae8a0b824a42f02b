package services

import (
	"errors"
	"net/http"
)

// ErrorKind classifies export failures for the transport layer
type ErrorKind int

const (
	KindAggregation ErrorKind = iota
	KindAuthorization
	KindValidation
)

// Messages returned to callers
const (
	MsgAuthRequired      = "Debe iniciar sesión"
	MsgUnsupportedFormat = "Formato no soportado. Use pdf o excel"
	MsgExportFailed      = "Error al exportar reporte"
)

// ReportError is returned by the export service for every failed export.
// Message is safe to show; Err is the cause and is only logged.
type ReportError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to an HTTP status
func (e *ReportError) StatusCode() int {
	switch e.Kind {
	case KindAuthorization:
		return http.StatusUnauthorized
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func unauthorized() *ReportError {
	return &ReportError{Kind: KindAuthorization, Message: MsgAuthRequired}
}

func unsupportedFormat() *ReportError {
	return &ReportError{Kind: KindValidation, Message: MsgUnsupportedFormat}
}

func exportFailed(err error) *ReportError {
	return &ReportError{Kind: KindAggregation, Message: MsgExportFailed, Err: err}
}

// AsReportError extracts a ReportError from err. Any other error is treated
// as an aggregation failure.
func AsReportError(err error) *ReportError {
	var re *ReportError
	if errors.As(err, &re) {
		return re
	}
	return exportFailed(err)
}
