package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"musicstore/internal/pkg/delay"
)

// SimulatedLatency delays every request by d to mimic a slow backend in
// development. The wait is bound to the request context: a client that goes
// away cancels it and the handler never runs.
func SimulatedLatency(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		if err := delay.Wait(c.Request.Context(), d); err != nil {
			// 499 is the de-facto "client closed request" status
			c.AbortWithStatus(499)
			return
		}
		c.Next()
	}
}
