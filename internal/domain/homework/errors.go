// internal/domain/homework/errors.go
package homework

import (
	"errors"
	"fmt"
)

// Kind classifies a poll-cycle failure so the loop can decide how to react.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork          // request never got an HTTP response
	KindUpstream         // API answered with a non-200 status
	KindSchema           // payload has the wrong shape
	KindUnknownStatus    // homework status outside the verdict table
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUpstream:
		return "upstream"
	case KindSchema:
		return "schema"
	case KindUnknownStatus:
		return "unknown_status"
	default:
		return "unknown"
	}
}

// Error is a classified poll-cycle error.
type Error struct {
	Kind   Kind
	Detail string
	Err    error

	// Set for KindUpstream only.
	HTTPStatus int
	Code       string
	Message    string
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.Err)
	}
	return e.Detail
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func NewNetworkError(err error) *Error {
	return &Error{Kind: KindNetwork, Detail: "Сбой при запросе к сервису API", Err: err}
}

func NewUpstreamError(httpStatus int, code, message string) *Error {
	return &Error{
		Kind:       KindUpstream,
		Detail:     fmt.Sprintf("Ошибка запроса к API Yandex.Practicum: HTTP %d, код ответа: %s, ответ сервера: %s", httpStatus, code, message),
		HTTPStatus: httpStatus,
		Code:       code,
		Message:    message,
	}
}

func NewSchemaError(detail string) *Error {
	return &Error{Kind: KindSchema, Detail: detail}
}

func NewUnknownStatusError(status any) *Error {
	return &Error{Kind: KindUnknownStatus, Detail: fmt.Sprintf("Неизвестный статус домашней работы: %v", status)}
}
