package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sorteocloud/raffle-backend/internal/service"
	"github.com/sorteocloud/raffle-backend/internal/tenancy"
	"github.com/sorteocloud/raffle-backend/pkg/middleware"
	"github.com/sorteocloud/raffle-backend/pkg/response"
)

// AuthScope builds the tenant scope from the JWT claims extracted by the
// JWT middleware and threads it through the request context. Platform
// admins without a tenant claim get the global cross-tenant view.
func AuthScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := middleware.GetRole(c)
		tenantID, _ := middleware.GetTenantID(c)

		var scope tenancy.Scope
		switch {
		case role == middleware.RolePlatformAdmin && tenantID == "":
			scope = tenancy.GlobalScope()
		case role == middleware.RolePlatformAdmin:
			scope = tenancy.AdminTenantScope(tenantID)
		case tenantID != "":
			scope = tenancy.TenantScope(tenantID)
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(response.ErrCodeScopeNotSet, "Token carries no tenant"))
			return
		}

		ctx := tenancy.WithScope(c.Request.Context(), scope)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// StorefrontScope resolves the tenant of a public storefront request from
// the X-Tenant header (the tenant's slug) and installs a plain tenant
// scope. Storefront requests never get admin or global scopes.
func StorefrontScope(tenantService service.TenantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.GetHeader("X-Tenant")
		if slug == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, response.BadRequest("X-Tenant header is required"))
			return
		}

		tenant, err := tenantService.GetBySlug(c.Request.Context(), slug)
		if err != nil {
			if errors.Is(err, service.ErrTenantNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, response.NotFound("Unknown tenant"))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.InternalError(err.Error()))
			return
		}

		ctx := tenancy.WithScope(c.Request.Context(), tenancy.TenantScope(tenant.ID))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
