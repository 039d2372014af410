package errors

import (
	"errors"
	"fmt"
)

// ErrorCode định nghĩa mã lỗi
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken ErrorCode = "MISSING_TOKEN"
	ErrCodeInvalidRole  ErrorCode = "INVALID_ROLE"

	// Attendance errors
	ErrCodeWrongCompany     ErrorCode = "WRONG_COMPANY"
	ErrCodeTokenExpired     ErrorCode = "TOKEN_EXPIRED"
	ErrCodeAlreadyCheckedIn ErrorCode = "ALREADY_CHECKED_IN"
	ErrCodeInvalidCompanyID ErrorCode = "INVALID_COMPANY_ID"
	ErrCodeInvalidEmployee  ErrorCode = "INVALID_EMPLOYEE"
	ErrCodeTooManyRequests  ErrorCode = "TOO_MANY_REQUESTS"
	ErrCodeTokenGeneration  ErrorCode = "TOKEN_GENERATION"

	// Database errors
	ErrCodeDBError     ErrorCode = "DB_ERROR"
	ErrCodeDBNotFound  ErrorCode = "DB_NOT_FOUND"
	ErrCodeDBDuplicate ErrorCode = "DB_DUPLICATE"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	ErrCodeInvalidDate   ErrorCode = "INVALID_DATE"
)

// AppError định nghĩa lỗi của ứng dụng
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError kiểm tra xem error có phải là AppError không
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError lấy AppError từ error
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return nil
}

// IsRetryable kiểm tra lỗi có retry được không (lỗi hạ tầng, không phải lỗi nghiệp vụ)
func IsRetryable(err error) bool {
	appErr := GetAppError(err)
	if appErr == nil {
		return false
	}
	return appErr.Code == ErrCodeDBError
}

var (
	// Token errors
	ErrTokenNotFound = errors.New("token not found")
	ErrTokenInactive = errors.New("token inactive")

	// Attendance errors
	ErrAlreadyCheckedIn = errors.New("already checked in today")
	ErrRecordNotFound   = errors.New("check-in record not found")

	// Validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingRequired = errors.New("missing required field")
	ErrInvalidFormat   = errors.New("invalid format")
)
