package api

import (
	"log"
	stdhttp "net/http"

	intconfig "travelbackend/internal/config"
	h "travelbackend/internal/http/handlers"
	"travelbackend/internal/http/middleware"
	"travelbackend/internal/services"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	secret := []byte(env.JWTSecret)

	agentSvc := services.AgentService{}
	pricingSvc := services.PricingService{}
	quoteSvc := services.QuoteService{Pricing: pricingSvc, ValidDays: env.QuoteValidDays}
	catalogSvc := services.CatalogService{}
	rateSvc := services.RateService{}

	authH := h.AuthHandler{Agents: agentSvc, Secret: secret}
	quoteH := h.QuoteHandler{Quotes: quoteSvc, Pricing: pricingSvc, Agents: agentSvc}
	packageH := h.PackageHandler{Catalog: catalogSvc}
	catalogH := h.CatalogHandler{Catalog: catalogSvc}
	rateH := h.RateHandler{Rates: rateSvc, Pricing: pricingSvc}
	agentH := h.AgentHandler{Agents: agentSvc}

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", authH.Login)

		// The viewed acknowledgment comes from the client-facing quote link,
		// outside the authenticated surface.
		api.POST("/quotes/:id/view", quoteH.View)

		quotes := api.Group("/quotes", middleware.RequireAgent(secret))
		quotes.POST("", quoteH.Create)
		quotes.GET("", quoteH.List)
		quotes.POST("/calculate", quoteH.Calculate)
		quotes.POST("/bulk-calculate", quoteH.BulkCalculate)
		quotes.GET("/:id", quoteH.Get)
		quotes.PUT("/:id", quoteH.Update)
		quotes.DELETE("/:id", quoteH.Delete)
		quotes.POST("/:id/send", quoteH.Send)
		quotes.POST("/:id/confirm", quoteH.Confirm)
		quotes.POST("/:id/duplicate", quoteH.Duplicate)

		packages := api.Group("/packages", middleware.RequireAgent(secret))
		packages.GET("", packageH.List)
		packages.GET("/:id", packageH.Get)
		packages.POST("", middleware.RequireAdmin(), packageH.Create)
		packages.PUT("/:id", middleware.RequireAdmin(), packageH.Update)
		packages.DELETE("/:id", middleware.RequireAdmin(), packageH.Delete)
		packages.POST("/bulk-import", middleware.RequireAdmin(), packageH.BulkImport)

		api.GET("/hotels", middleware.RequireAgent(secret), catalogH.Hotels)
		api.GET("/add-ons", middleware.RequireAgent(secret), catalogH.AddOns)

		rates := api.Group("/seasonal-rates", middleware.RequireAgent(secret))
		rates.GET("", rateH.List)
		rates.GET("/package/:id/price", rateH.PackagePrice)
		rates.GET("/:id", rateH.Get)
		rates.POST("", middleware.RequireAdmin(), rateH.Create)
		rates.PUT("/:id", middleware.RequireAdmin(), rateH.Update)
		rates.DELETE("/:id", middleware.RequireAdmin(), rateH.Delete)

		agents := api.Group("/agents", middleware.RequireAgent(secret))
		agents.GET("/me", agentH.Me)
		agents.GET("/me/tier-progress", agentH.TierProgress)
		agents.PUT("/:id/tier", middleware.RequireAdmin(), agentH.UpdateTier)
	}

	return r
}
