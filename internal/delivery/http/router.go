package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orderhub/catalog-service/internal/entity"
	"github.com/orderhub/catalog-service/internal/service"
)

// RouterConfig carries the delivery-level settings the router needs.
type RouterConfig struct {
	JWTSecret      string
	AllowedOrigins []string
}

// NewRouter wires all handlers and middleware into a gin engine. Reads are
// public; mutations require an admin or manager token.
func NewRouter(
	cfg RouterConfig,
	categorySvc *service.CategoryService,
	productSvc *service.ProductService,
	toppingSvc *service.ToppingService,
	logger *slog.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(CORS(cfg.AllowedOrigins))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Hello from catalog service"})
	})

	authenticate := Authenticate(cfg.JWTSecret)
	manage := CanAccess(entity.RoleAdmin, entity.RoleManager)

	categoryHandler := NewCategoryHandler(categorySvc, logger)
	categories := r.Group("/categories")
	{
		categories.GET("", categoryHandler.GetAll)
		categories.GET("/:categoryId", categoryHandler.GetOne)
		categories.POST("", authenticate, manage, categoryHandler.Create)
		categories.PUT("/:categoryId", authenticate, manage, categoryHandler.Update)
		categories.DELETE("/:categoryId", authenticate, manage, categoryHandler.Delete)
	}

	productHandler := NewProductHandler(productSvc, logger)
	products := r.Group("/products")
	{
		products.GET("", productHandler.GetAll)
		products.GET("/:productId", productHandler.GetOne)
		products.POST("", authenticate, manage, productHandler.Create)
		products.PUT("/:productId", authenticate, manage, productHandler.Update)
		products.DELETE("/:productId", authenticate, manage, productHandler.Delete)
	}

	toppingHandler := NewToppingHandler(toppingSvc, logger)
	toppings := r.Group("/toppings")
	{
		toppings.GET("", toppingHandler.GetAll)
		toppings.GET("/:toppingId", toppingHandler.GetOne)
		toppings.POST("", authenticate, manage, toppingHandler.Create)
		toppings.PUT("/:toppingId", authenticate, manage, toppingHandler.Update)
		toppings.DELETE("/:toppingId", authenticate, manage, toppingHandler.Delete)
	}

	return r
}
