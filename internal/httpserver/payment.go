package httpserver

import (
	"net/http"

	"pos-terminal/internal/domain"

	"github.com/gin-gonic/gin"
)

type selectMethodRequest struct {
	Method string `json:"method"`
}

func paymentStatusHandler(pay paymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, pay.Status())
	}
}

func selectMethodHandler(pay paymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req selectMethodRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid payment payload")
			return
		}
		method, err := domain.ParsePaymentMethod(req.Method)
		if err != nil {
			respondBadRequest(c, err.Error())
			return
		}

		status, err := pay.Select(c.Request.Context(), method)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, status)
	}
}

func confirmPaymentHandler(pay paymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, err := pay.Confirm(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, status)
	}
}

func cancelPaymentHandler(pay paymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, err := pay.Cancel()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, status)
	}
}

func queuePaymentHandler(pay paymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := pay.QueueLastFailed(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
