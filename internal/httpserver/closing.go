package httpserver

import (
	"net/http"

	"pos-terminal/internal/domain"

	"github.com/gin-gonic/gin"
)

type closingRequest struct {
	Period string `json:"period"`
}

func closingHandler(svc closingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req closingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid closing payload")
			return
		}
		period, err := domain.ParseClosingPeriod(req.Period)
		if err != nil {
			respondBadRequest(c, err.Error())
			return
		}

		result, err := svc.Run(c.Request.Context(), period)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
