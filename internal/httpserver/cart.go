package httpserver

import (
	"net/http"
	"strings"

	"pos-terminal/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type addLineRequest struct {
	ProductID string `json:"productId"`
	// Quantity is units for piece products, grams for weight products
	// entered manually. Empty with UseScale set means take the scale
	// sample instead.
	Quantity string `json:"quantity,omitempty"`
	UseScale bool   `json:"useScale,omitempty"`
}

func getCartHandler(cart cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, cart.Snapshot())
	}
}

func addLineHandler(cart cartService, catalog catalogService, scale scaleReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addLineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid line payload")
			return
		}
		if strings.TrimSpace(req.ProductID) == "" {
			respondBadRequest(c, "productId required")
			return
		}

		product, err := catalog.Get(c.Request.Context(), req.ProductID)
		if err != nil {
			respondError(c, err)
			return
		}

		var line domain.CartLine
		switch {
		case product.Unit == domain.UnitKilogram && req.UseScale:
			line, err = cart.AddWeighed(*product, scale.Read())
		case product.Unit == domain.UnitKilogram:
			grams, parseErr := decimal.NewFromString(req.Quantity)
			if parseErr != nil {
				respondBadRequest(c, "quantity must be a number of grams")
				return
			}
			line, err = cart.AddWeighed(*product, grams.IntPart())
		default:
			qty, parseErr := decimal.NewFromString(req.Quantity)
			if parseErr != nil {
				respondBadRequest(c, "quantity must be a number")
				return
			}
			line, err = cart.AddLine(*product, qty)
		}
		if err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		c.JSON(http.StatusCreated, line)
	}
}

func removeLineHandler(cart cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := cart.Remove(c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func clearCartHandler(cart cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart.Clear()
		c.Status(http.StatusNoContent)
	}
}
