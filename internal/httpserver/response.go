package httpserver

import (
	"errors"
	"net/http"

	"pos-terminal/internal/domain"

	"github.com/gin-gonic/gin"
)

// respondError maps domain sentinels onto HTTP statuses. Gating
// violations (second payment, second closing) come back as conflicts so
// the UI can simply ignore them.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNoSession):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrPaymentInFlight),
		errors.Is(err, domain.ErrClosingInFlight),
		errors.Is(err, domain.ErrNoActivePayment):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}

func respondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
