package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sorteocloud/raffle-backend/internal/service"
	"github.com/sorteocloud/raffle-backend/pkg/middleware"
)

// RouterDeps bundles everything the route table needs
type RouterDeps struct {
	Health     *HealthHandler
	Tenant     *TenantHandler
	Raffle     *RaffleHandler
	Package    *PackageHandler
	Offer      *OfferHandler
	Provider   *ProviderHandler
	Order      *OrderHandler
	Referral   *ReferralHandler
	Storefront *StorefrontHandler

	JWTSecret string
}

// RegisterRoutes wires all routes onto the engine. Storefront routes are
// public and resolve their tenant from the X-Tenant header; admin routes
// require a JWT and derive the tenant scope from its claims.
func RegisterRoutes(r *gin.Engine, deps *RouterDeps, tenants service.TenantService) {
	r.GET("/health", deps.Health.Liveness)
	r.GET("/health/ready", deps.Health.Readiness)

	api := r.Group("/api/v1")

	storefront := api.Group("/storefront")
	storefront.Use(StorefrontScope(tenants))
	{
		storefront.GET("/:slug/packages", deps.Storefront.GetCatalog)
		storefront.POST("/:slug/checkout", deps.Storefront.Checkout)
		storefront.POST("/orders/:id/confirm", deps.Storefront.ConfirmPayment)
		storefront.POST("/:slug/ref/:code", deps.Referral.TrackVisit)
	}

	jwtCfg := &middleware.JWTConfig{Secret: deps.JWTSecret}

	admin := api.Group("/admin")
	admin.Use(middleware.JWTMiddleware(jwtCfg), AuthScope())
	{
		admin.POST("/raffles", deps.Raffle.Create)
		admin.GET("/raffles", deps.Raffle.List)
		admin.GET("/raffles/:id", deps.Raffle.GetByID)
		admin.PUT("/raffles/:id", deps.Raffle.Update)
		admin.DELETE("/raffles/:id", deps.Raffle.Delete)
		admin.GET("/raffles/:id/packages", deps.Package.ListByRaffle)
		admin.GET("/raffles/:id/preview", deps.Package.Preview)
		admin.GET("/raffles/:id/referrals", deps.Referral.ListByRaffle)

		admin.POST("/packages", deps.Package.Create)
		admin.PUT("/packages/reorder", deps.Package.Reorder)
		admin.GET("/packages/:id", deps.Package.GetByID)
		admin.PUT("/packages/:id", deps.Package.Update)
		admin.DELETE("/packages/:id", deps.Package.Delete)
		admin.GET("/packages/:id/offers", deps.Offer.ListByPackage)

		admin.POST("/offers", deps.Offer.Create)
		admin.GET("/offers/:id", deps.Offer.GetByID)
		admin.PUT("/offers/:id", deps.Offer.Update)
		admin.DELETE("/offers/:id", deps.Offer.Delete)

		admin.POST("/providers", deps.Provider.Create)
		admin.GET("/providers", deps.Provider.List)
		admin.GET("/providers/:id", deps.Provider.GetByID)
		admin.PUT("/providers/:id", deps.Provider.Update)
		admin.DELETE("/providers/:id", deps.Provider.Delete)

		admin.GET("/orders", deps.Order.List)
		admin.GET("/orders/:id", deps.Order.GetByID)

		admin.POST("/referrals", deps.Referral.Create)
	}

	tenantsGroup := api.Group("/tenants")
	tenantsGroup.Use(middleware.JWTMiddleware(jwtCfg), middleware.RequireRole(middleware.RolePlatformAdmin), AuthScope())
	{
		tenantsGroup.POST("", deps.Tenant.Create)
		tenantsGroup.GET("", deps.Tenant.List)
		tenantsGroup.GET("/:id", deps.Tenant.GetByID)
		tenantsGroup.GET("/slug/:slug", deps.Tenant.GetBySlug)
		tenantsGroup.PUT("/:id", deps.Tenant.Update)
		tenantsGroup.DELETE("/:id", deps.Tenant.Delete)
	}
}
