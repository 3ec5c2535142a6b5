package service

import (
	"context"
	"github.com/limchewyew/CompanyDirectory/pkg/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type ErrorCode string

const (
	ErrorCodeInvalidBody    ErrorCode = "INVALID_BODY"
	ErrorCodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	ErrorCodeForbidden      ErrorCode = "FORBIDDEN"
	ErrorCodeNotFound       ErrorCode = "NOT_FOUND"
	ErrorCodeNotImplemented ErrorCode = "NOT_IMPLEMENTED"
	ErrorCodeUnspecified    ErrorCode = "UNSPECIFIED"
)

type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

func (e *Error) Error() string {
	return e.Message
}

// asError unwraps the *Error returned from a transaction body. Any other
// error is reported as unspecified.
func asError(ctx context.Context, err error, message string) *Error {
	if err == nil {
		return nil
	}

	var res *Error
	if errors.As(err, &res) {
		return res
	}

	logger.FromContext(ctx).Error(message, zap.Error(err))
	return NewError(ErrorCodeUnspecified, message)
}
