package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func weightHandler(scale scaleReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"grams": scale.Read()})
	}
}
