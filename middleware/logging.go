package middleware

import (
	"strconv"
	"time"

	"rentalsite/constants"
	"rentalsite/services"
	"rentalsite/services/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger ghi method, path, status, latency và session của mỗi request
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		session := c.GetString(constants.SessionContextKey)
		line := "%s %s status=%d latency=%s session=%s"
		args := []interface{}{c.Request.Method, c.Request.URL.Path, status, time.Since(start), session}
		switch {
		case status >= 500:
			log.Error(line, args...)
		case status >= 400:
			log.Warn(line, args...)
		default:
			log.Info(line, args...)
		}
	}
}

// Metrics đếm request và đo latency theo route
func Metrics(m *services.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
