package server

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"storefront-backend/internal/client"
	"storefront-backend/internal/config"
	"storefront-backend/internal/handler"
	appmw "storefront-backend/internal/middleware"
	"storefront-backend/internal/service"
)

type Server struct {
	echo *echo.Echo

	productHandler  *handler.ProductHandler
	cartHandler     *handler.CartHandler
	addressHandler  *handler.AddressHandler
	couponHandler   *handler.CouponHandler
	paymentHandler  *handler.PaymentHandler
	settingsHandler *handler.SettingsHandler
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	guard client.GuardClient,
	productService service.ProductService,
	cartService service.CartService,
	addressService service.AddressService,
	couponService service.CouponService,
	orderService service.OrderService,
	settingsService service.SettingsService,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Error(v.Error),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		productHandler:  handler.NewProductHandler(productService),
		cartHandler:     handler.NewCartHandler(cartService),
		addressHandler:  handler.NewAddressHandler(addressService),
		couponHandler:   handler.NewCouponHandler(couponService),
		paymentHandler:  handler.NewPaymentHandler(orderService),
		settingsHandler: handler.NewSettingsHandler(settingsService),
	}

	s.setupRoutes(cfg, logger, guard)
	return s
}

func (s *Server) setupRoutes(cfg *config.Config, logger *zap.Logger, guard client.GuardClient) {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	auth := appmw.AuthenticateJWT(cfg.JWT.Secret, cfg.JWT.CookieName)
	admin := appmw.RequireSuperAdmin()
	gate := appmw.Guard(guard, logger)

	// -------- products --------
	products := api.Group("/products", auth)
	products.GET("/fetch-client-products", s.productHandler.FetchProductsForClient)
	products.GET("/fetch-admin-products", s.productHandler.FetchAllProductsForAdmin, admin)
	products.POST("/create", s.productHandler.CreateProduct, admin, gate)
	products.GET("/:id", s.productHandler.GetProductByID)
	products.PUT("/:id", s.productHandler.UpdateProduct, admin)
	products.DELETE("/:id", s.productHandler.DeleteProduct, admin)

	// -------- cart --------
	cart := api.Group("/cart", auth)
	cart.POST("/add-to-cart", s.cartHandler.AddToCart, gate)
	cart.GET("", s.cartHandler.GetCart)
	cart.PUT("/update/:id", s.cartHandler.UpdateCartItemQuantity)
	cart.DELETE("/remove/:id", s.cartHandler.RemoveFromCart)
	cart.DELETE("/clear", s.cartHandler.ClearCart)

	// -------- addresses --------
	address := api.Group("/address", auth)
	address.POST("/add-address", s.addressHandler.CreateAddress)
	address.GET("/get-address", s.addressHandler.GetAddresses)
	address.PUT("/update-address/:id", s.addressHandler.UpdateAddress)
	address.DELETE("/delete-address/:id", s.addressHandler.DeleteAddress)

	// -------- coupons --------
	coupon := api.Group("/coupon", auth)
	coupon.GET("/fetch-all-coupon", s.couponHandler.FetchAllCoupons)
	coupon.POST("/create-coupon", s.couponHandler.CreateCoupon, admin)
	coupon.DELETE("/:id", s.couponHandler.DeleteCoupon, admin)

	// -------- payments / orders --------
	payment := api.Group("/payment", auth)
	payment.POST("/create-paypal-order", s.paymentHandler.CreateGatewayOrder, gate)
	payment.POST("/capture-paypal-order", s.paymentHandler.CaptureGatewayOrder, gate)
	payment.POST("/create-final-order", s.paymentHandler.CreateFinalOrder, gate)
	payment.GET("/get-single-order/:orderId", s.paymentHandler.GetOrder)
	payment.GET("/get-order-by-user-id", s.paymentHandler.GetOrdersByUser)
	payment.GET("/get-all-order-for-admin", s.paymentHandler.GetAllOrdersForAdmin, admin)
	payment.PUT("/:orderId/status", s.paymentHandler.UpdateOrderStatus, admin)

	// -------- settings --------
	settings := api.Group("/settings", auth)
	settings.GET("/get-banners", s.settingsHandler.FetchFeatureBanners)
	settings.GET("/get-feature-products", s.settingsHandler.GetFeaturedProducts)
	settings.POST("/add-banners", s.settingsHandler.AddFeatureBanners, admin)
	settings.POST("/update-feature-products", s.settingsHandler.UpdateFeatureProducts, admin)
}

// errorHandler collapses every unhandled error to the uniform
// {success:false, message} envelope.
func errorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "Some error occured!"
		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			}
		}
		if status >= http.StatusInternalServerError {
			logger.Error("request failed", zap.Error(err))
		}

		_ = c.JSON(status, map[string]interface{}{
			"success": false,
			"message": message,
		})
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
