package middleware

import (
	"rentalsite/constants"
	"rentalsite/errors"
	"rentalsite/response"
	"rentalsite/services"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware chỉ cho qua request có Bearer token admin hợp lệ
func AdminMiddleware(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		username, err := auth.Verify(authHeader)
		if err != nil {
			if errors.HasCode(err, errors.ErrCodeFeatureDisabled) {
				response.ServiceUnavailable(c, "Admin login is not configured")
			} else {
				response.Unauthorized(c)
			}
			c.Abort()
			return
		}

		c.Set(constants.AdminContextKey, username)
		c.Next()
	}
}

// ErrorHandler trả response cho lỗi được handler đẩy vào c.Errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			response.FromError(c, c.Errors.Last().Err)
		}
	}
}
