package httpserver

import (
	"net/http"
	"strings"

	"pos-terminal/internal/domain"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	SellerID   string `json:"sellerId"`
	SellerName string `json:"sellerName"`
}

func loginHandler(sessions sessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid login payload")
			return
		}
		if strings.TrimSpace(req.SellerID) == "" {
			respondBadRequest(c, "sellerId required")
			return
		}

		sess, err := sessions.Login(c.Request.Context(), domain.Seller{
			ID:   strings.TrimSpace(req.SellerID),
			Name: strings.TrimSpace(req.SellerName),
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"seller":   sess.Seller,
			"branchId": sess.BranchID,
			"policy":   sess.Policy,
		})
	}
}

func currentSessionHandler(sessions sessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := sessions.Current()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"seller":   sess.Seller,
			"branchId": sess.BranchID,
			"policy":   sess.Policy,
		})
	}
}

func logoutHandler(sessions sessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions.Logout()
		c.Status(http.StatusNoContent)
	}
}
