package middleware

import (
	"github.com/gin-gonic/gin"

	"musicstore/internal/busy"
)

// TrackBusy counts the request as an in-flight operation while it runs.
func TrackBusy(counter *busy.Counter) gin.HandlerFunc {
	return func(c *gin.Context) {
		done := counter.Track()
		defer done()
		c.Next()
	}
}
