package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/luu-sac/ceramics-api/internal/metrics"
)

// Deps collects everything the router mounts.
type Deps struct {
	Auth       *AuthHandler
	Categories *CategoryHandler
	Products   *ProductHandler
	Orders     *OrderHandler
	Tokens     TokenParser
	CORSOrigin string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logger(), CORS(d.CORSOrigin), metrics.Middleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	auth := Auth(d.Tokens)
	admin := RequireAdmin()

	api := r.Group("/api")
	d.Auth.Register(api)
	d.Categories.Register(api, auth, admin)
	d.Products.Register(api, auth, admin)
	d.Orders.Register(api, auth, admin)

	return r
}
