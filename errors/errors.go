package errors

import (
	"errors"
	"fmt"
)

// ErrorCode định danh loại lỗi trả về cho client
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken    ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken    ErrorCode = "MISSING_TOKEN"
	ErrCodeInvalidPassword ErrorCode = "INVALID_PASSWORD"

	// Room errors
	ErrCodeInvalidRoomID ErrorCode = "INVALID_ROOM_ID"
	ErrCodeInvalidHost   ErrorCode = "INVALID_HOST"
	ErrCodeInvalidPhone  ErrorCode = "INVALID_PHONE"
	ErrCodeInvalidDate   ErrorCode = "INVALID_DATE"
	ErrCodeInvalidAmount ErrorCode = "INVALID_AMOUNT"

	// Storage errors
	ErrCodeDBError     ErrorCode = "DB_ERROR"
	ErrCodeDBNotFound  ErrorCode = "DB_NOT_FOUND"
	ErrCodeDBDuplicate ErrorCode = "DB_DUPLICATE"
	ErrCodeIOError     ErrorCode = "IO_ERROR"

	// Validation errors
	ErrCodeValidation     ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField  ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat  ErrorCode = "INVALID_FORMAT"
	ErrCodeImportRejected ErrorCode = "IMPORT_REJECTED"

	// Business errors
	ErrCodeInvalidOperation ErrorCode = "INVALID_OPERATION"
	ErrCodeFeatureDisabled  ErrorCode = "FEATURE_DISABLED"
)

// AppError là lỗi nghiệp vụ kèm mã lỗi
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

func (e *AppError) Unwrap() error {
	return e.Err
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
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError lấy AppError từ chuỗi lỗi
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode kiểm tra err có mang mã lỗi code không
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

var (
	ErrUnauthorized = errors.New("unauthorized")

	// Room errors
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomNotAvailable = errors.New("room not available")
	ErrHostNotFound     = errors.New("host not found")

	// Settings errors
	ErrSettingNotFound = errors.New("setting not found")

	// Validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingRequired = errors.New("missing required field")
	ErrInvalidFormat   = errors.New("invalid format")
)

// Is và As chuyển tiếp sang thư viện chuẩn để các package khác không phải import hai gói errors
func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target interface{}) bool { return errors.As(err, target) }
