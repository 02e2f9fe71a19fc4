package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/2beens/coachdesk/pkg"

	log "github.com/sirupsen/logrus"
)

const UnavailableMessage = "Service is unavailable right now."

type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthenticated
	KindNotFound
	KindUnavailable
	KindTooManyRequests
)

func (k Kind) HTTPStatus() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusServiceUnavailable
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error is the error type surfaced at the HTTP edge. Err holds the cause and
// is only logged.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func BadRequest(code, message string) *Error {
	return &Error{Kind: KindBadRequest, Code: code, Message: message}
}

func NotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func Unauthenticated(code, message string) *Error {
	return &Error{Kind: KindUnauthenticated, Code: code, Message: message}
}

func Unavailable(code string, err error) *Error {
	return &Error{Kind: KindUnavailable, Code: code, Message: UnavailableMessage, Err: err}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Code: "INTERNAL_ERROR", Message: UnavailableMessage, Err: err}
}

func (e *Error) WithDetails(details any) *Error {
	e.Details = details
	return e
}

type envelope struct {
	Error body `json:"error"`
}

type body struct {
	Code          string `json:"code"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId"`
	Details       any    `json:"details,omitempty"`
}

// From converts any error into an *Error; unknown errors become internal.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Internal(err)
}

// Write renders err as the error envelope. 5xx messages never carry details
// of the cause, those go to the log only.
func Write(w http.ResponseWriter, correlationID string, err error) {
	apiErr := From(err)
	status := apiErr.Kind.HTTPStatus()

	b := body{
		Code:          apiErr.Code,
		Message:       apiErr.Message,
		CorrelationID: correlationID,
		Details:       apiErr.Details,
	}
	if status >= http.StatusInternalServerError {
		b.Message = UnavailableMessage
		b.Details = nil
		log.WithField("correlationId", correlationID).Errorf("request failed: %s", apiErr)
	} else {
		log.WithField("correlationId", correlationID).Debugf("request rejected: %s", apiErr)
	}

	respJson, marshalErr := json.Marshal(envelope{Error: b})
	if marshalErr != nil {
		log.Errorf("marshal error envelope: %s", marshalErr)
		http.Error(w, UnavailableMessage, http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, status)
}
