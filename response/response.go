package response

import (
	"net/http"

	"rentalsite/errors"

	"github.com/gin-gonic/gin"
)

// Response định nghĩa cấu trúc response
type Response struct {
	Code int         `json:"code"`
	Mess string      `json:"mess"`
	Data interface{} `json:"data,omitempty"`
}

type ResponseTotal struct {
	Code  int         `json:"code"`
	Mess  string      `json:"mess"`
	Data  interface{} `json:"data,omitempty"`
	Total int         `json:"total"`
}

// Success trả về response thành công
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Success",
		Data: data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code: 1,
		Mess: "Created",
		Data: data,
	})
}

func SuccessWithTotal(c *gin.Context, data interface{}, total int) {
	c.JSON(http.StatusOK, ResponseTotal{
		Code:  1,
		Mess:  "Success",
		Total: total,
		Data:  data,
	})
}

// Error trả về response lỗi
func Error(c *gin.Context, code int, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code: code,
		Mess: message,
	})
}

// ServerError trả về response lỗi server
func ServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Response{
		Code: 0,
		Mess: "Internal server error",
	})
}

// Unauthorized trả về response chưa xác thực
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Response{
		Code: 0,
		Mess: "Unauthorized",
	})
}

// Forbidden trả về response không có quyền
func Forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, Response{
		Code: 0,
		Mess: "Forbidden",
	})
}

// NotFound trả về response không tìm thấy
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Response{
		Code: 0,
		Mess: "Not found",
	})
}

// ValidationError trả về response lỗi validation
func ValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code: 0,
		Mess: message,
	})
}

// BadRequest trả về response lỗi bad request
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code: 0,
		Mess: message,
	})
}

// Conflict trả về response conflict (409)
func Conflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, Response{
		Code: 0,
		Mess: message,
	})
}

// ServiceUnavailable dùng khi tính năng chưa được cấu hình
func ServiceUnavailable(c *gin.Context, message string) {
	c.JSON(http.StatusServiceUnavailable, Response{
		Code: 0,
		Mess: message,
	})
}

// FromError chọn response theo loại lỗi. Lỗi I/O và DB chỉ trả thông báo chung.
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errors.ErrRoomNotFound),
		errors.Is(err, errors.ErrHostNotFound),
		errors.Is(err, errors.ErrSettingNotFound):
		NotFound(c)
		return
	case errors.Is(err, errors.ErrUnauthorized):
		Unauthorized(c)
		return
	}

	appErr := errors.GetAppError(err)
	if appErr == nil {
		ServerError(c)
		return
	}
	switch appErr.Code {
	case errors.ErrCodeUnauthorized, errors.ErrCodeInvalidToken,
		errors.ErrCodeMissingToken, errors.ErrCodeInvalidPassword:
		Unauthorized(c)
	case errors.ErrCodeDBNotFound:
		NotFound(c)
	case errors.ErrCodeDBDuplicate:
		Conflict(c, appErr.Message)
	case errors.ErrCodeFeatureDisabled:
		ServiceUnavailable(c, appErr.Message)
	case errors.ErrCodeDBError, errors.ErrCodeIOError:
		ServerError(c)
	default:
		ValidationError(c, appErr.Message)
	}
}
