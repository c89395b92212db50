package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HelloMessage is the body of GET /hello.
const HelloMessage = "Hello with Go and Gin!"

// Hello handles GET /hello with a fixed JSON string greeting.
func Hello(c *gin.Context) {
	c.JSON(http.StatusOK, HelloMessage)
}
