package router

import (
	"github.com/gin-gonic/gin"
	"github.com/paikari/paikariworld-backend/config"
	"github.com/paikari/paikariworld-backend/internal/app/controller"
	"github.com/paikari/paikariworld-backend/internal/middleware"
)

type Router struct {
	productController  *controller.ProductController
	cartController     *controller.CartController
	checkoutController *controller.CheckoutController
	config             *config.Config
}

func NewRouter(
	productController *controller.ProductController,
	cartController *controller.CartController,
	checkoutController *controller.CheckoutController,
	cfg *config.Config,
) *Router {
	return &Router{
		productController:  productController,
		cartController:     cartController,
		checkoutController: checkoutController,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))
	router.Use(middleware.SessionMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Paikari World API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", r.productController.GetAllProducts)
			products.GET("/:id", r.productController.GetProductByID)
		}

		cartGroup := v1.Group("/cart")
		{
			cartGroup.GET("", r.cartController.GetCart)
			cartGroup.POST("", r.cartController.AddToCart)
			cartGroup.DELETE("", r.cartController.ClearCart)
			cartGroup.GET("/ws", r.cartController.Subscribe)
			cartGroup.PUT("/drawer", r.cartController.SetDrawer)
			cartGroup.PUT("/:product_id", r.cartController.UpdateQuantity)
			cartGroup.DELETE("/:product_id", r.cartController.RemoveFromCart)
		}

		v1.POST("/checkout", r.checkoutController.PlaceOrder)

		orders := v1.Group("/orders")
		{
			orders.GET("", r.checkoutController.GetOrders)
			orders.GET("/:id", r.checkoutController.GetOrderByID)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Accept, Origin, Cache-Control, X-Requested-With, X-Viewport-Width")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
