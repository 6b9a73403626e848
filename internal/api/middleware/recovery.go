package middleware

import (
	"errors"
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"strings"

	"seopilot/internal/logger"

	"github.com/gin-gonic/gin"
)

// Recovery converts panics into a 500 JSON response. A client that hung up
// mid-write surfaces as a net.OpError; there is nobody left to answer, so
// those are aborted without a response or a stack dump.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		if isBrokenPipe(recovered) {
			log.Warn("client gone during %s %s", c.Request.Method, c.Request.URL.Path)
			c.Abort()
			return
		}

		log.Error("panic on %s %s: %v\n%s",
			c.Request.Method, c.Request.URL.Path, recovered, debug.Stack())
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "internal server error",
		})
	})
}

func isBrokenPipe(recovered interface{}) bool {
	ne, ok := recovered.(*net.OpError)
	if !ok {
		return false
	}
	var se *os.SyscallError
	if !errors.As(ne.Err, &se) {
		return false
	}
	msg := strings.ToLower(se.Error())
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}
