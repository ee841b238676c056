package httpserver

import (
	"context"
	"log"

	"pos-terminal/internal/domain"
	"pos-terminal/internal/service/closing"
	"pos-terminal/internal/service/payment"
	"pos-terminal/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

type cartService interface {
	AddLine(product domain.Product, quantity decimal.Decimal) (domain.CartLine, error)
	AddWeighed(product domain.Product, grams int64) (domain.CartLine, error)
	Remove(lineID string) error
	Clear()
	Snapshot() domain.Cart
}

type paymentService interface {
	Select(ctx context.Context, method domain.PaymentMethod) (payment.Status, error)
	Confirm(ctx context.Context) (payment.Status, error)
	Cancel() (payment.Status, error)
	QueueLastFailed(ctx context.Context) error
	Status() payment.Status
}

type closingService interface {
	Run(ctx context.Context, period domain.ClosingPeriod) (closing.Result, error)
}

type catalogService interface {
	Refresh(ctx context.Context) error
	Search(ctx context.Context, query string) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	GetByBarcode(ctx context.Context, code string) (*domain.Product, error)
}

type sessionManager interface {
	Login(ctx context.Context, seller domain.Seller) (*session.Session, error)
	Current() (*session.Session, error)
	Logout()
}

type scaleReader interface {
	Read() int64
}

// Deps carries the services the routes are built on.
type Deps struct {
	Cart     cartService
	Payment  paymentService
	Closing  closingService
	Catalog  catalogService
	Sessions sessionManager
	Scale    scaleReader
}

// buildRouter wires routes for the terminal API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, uiOrigin string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if uiOrigin != "" {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = []string{uiOrigin}
		cfg.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
		router.Use(cors.New(cfg))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/session", loginHandler(deps.Sessions))
	router.GET("/session", currentSessionHandler(deps.Sessions))
	router.DELETE("/session", logoutHandler(deps.Sessions))

	router.GET("/products", searchProductsHandler(deps.Catalog))
	router.POST("/products/refresh", refreshProductsHandler(deps.Catalog))
	router.GET("/products/barcode/:code", barcodeHandler(deps.Catalog))

	router.GET("/cart", getCartHandler(deps.Cart))
	router.POST("/cart/lines", addLineHandler(deps.Cart, deps.Catalog, deps.Scale))
	router.DELETE("/cart/lines/:id", removeLineHandler(deps.Cart))
	router.DELETE("/cart", clearCartHandler(deps.Cart))

	router.GET("/scale/weight", weightHandler(deps.Scale))

	router.GET("/payment", paymentStatusHandler(deps.Payment))
	router.POST("/payment/select", selectMethodHandler(deps.Payment))
	router.POST("/payment/confirm", confirmPaymentHandler(deps.Payment))
	router.POST("/payment/cancel", cancelPaymentHandler(deps.Payment))
	router.POST("/payment/queue", queuePaymentHandler(deps.Payment))

	router.POST("/closings", closingHandler(deps.Closing))

	return router
}
