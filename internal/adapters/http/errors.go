package http

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotes-service/internal/adapters/http/dto"
)

// routeNotFound answers unknown paths with the standard error body.
func routeNotFound(c *gin.Context) {
	dto.AbortWithErrorCode(c, dto.ErrorCodeNotFound, "no route for "+c.Request.Method+" "+c.Request.URL.Path)
}

// methodNotAllowed answers a known path with an unsupported method. The
// service is read-only, so this is what writes to /quotes receive.
func methodNotAllowed(c *gin.Context) {
	dto.AbortWithErrorCode(c, dto.ErrorCodeMethodNotAllowed, "method "+c.Request.Method+" is not allowed")
}
