package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func searchProductsHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.Search(c.Request.Context(), c.Query("query"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func refreshProductsHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := catalog.Refresh(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func barcodeHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := catalog.GetByBarcode(c.Request.Context(), c.Param("code"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
