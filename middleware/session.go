package middleware

import (
	"rentalsite/constants"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionMiddleware tạo sessionId nếu chưa có và gán vào context
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionId := c.GetHeader(constants.SessionHeader)
		if _, err := uuid.Parse(sessionId); err != nil {
			sessionId = uuid.NewString()
		}

		c.Set(constants.SessionContextKey, sessionId)
		c.Writer.Header().Set(constants.SessionHeader, sessionId)

		c.Next()
	}
}
