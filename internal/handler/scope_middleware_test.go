package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorteocloud/raffle-backend/internal/dto"
	"github.com/sorteocloud/raffle-backend/internal/service"
	"github.com/sorteocloud/raffle-backend/internal/tenancy"
	"github.com/sorteocloud/raffle-backend/pkg/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// scopeProbe records the tenancy scope seen by the downstream handler
func scopeProbe(got *tenancy.Scope, found *bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := tenancy.FromContext(c.Request.Context())
		*got = s
		*found = ok
		c.Status(http.StatusOK)
	}
}

func TestAuthScope(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		tenantID   string
		wantStatus int
		wantGlobal bool
		wantTenant string
		wantAdmin  bool
	}{
		{
			name:       "platform admin without tenant gets global view",
			role:       middleware.RolePlatformAdmin,
			wantStatus: http.StatusOK,
			wantGlobal: true,
		},
		{
			name:       "platform admin with tenant stays scoped",
			role:       middleware.RolePlatformAdmin,
			tenantID:   "t-1",
			wantStatus: http.StatusOK,
			wantTenant: "t-1",
			wantAdmin:  true,
		},
		{
			name:       "organizer with tenant",
			role:       middleware.RoleOrganizer,
			tenantID:   "t-2",
			wantStatus: http.StatusOK,
			wantTenant: "t-2",
		},
		{
			name:       "organizer without tenant is rejected",
			role:       middleware.RoleOrganizer,
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got tenancy.Scope
			var found bool

			router := gin.New()
			router.Use(func(c *gin.Context) {
				c.Set(middleware.ContextKeyRole, tt.role)
				c.Set(middleware.ContextKeyTenantID, tt.tenantID)
			})
			router.Use(AuthScope())
			router.GET("/", scopeProbe(&got, &found))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			require.True(t, found)
			assert.Equal(t, tt.wantGlobal, got.Global())
			assert.Equal(t, tt.wantAdmin || tt.wantGlobal, got.IsAdmin)
			if tt.wantTenant != "" {
				require.NotNil(t, got.TenantID)
				assert.Equal(t, tt.wantTenant, *got.TenantID)
			}
		})
	}
}

type stubTenantService struct {
	tenant *dto.TenantResponse
}

func (s *stubTenantService) Create(ctx context.Context, req *dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	return nil, nil
}
func (s *stubTenantService) GetByID(ctx context.Context, id string) (*dto.TenantResponse, error) {
	return nil, nil
}
func (s *stubTenantService) GetBySlug(ctx context.Context, slug string) (*dto.TenantResponse, error) {
	if s.tenant != nil && s.tenant.Slug == slug {
		return s.tenant, nil
	}
	return nil, service.ErrTenantNotFound
}
func (s *stubTenantService) List(ctx context.Context, page, limit int) (*dto.TenantListResponse, error) {
	return nil, nil
}
func (s *stubTenantService) Update(ctx context.Context, id string, req *dto.UpdateTenantRequest) (*dto.TenantResponse, error) {
	return nil, nil
}
func (s *stubTenantService) Delete(ctx context.Context, id string) error { return nil }

func TestStorefrontScope(t *testing.T) {
	tenants := &stubTenantService{tenant: &dto.TenantResponse{ID: "t-9", Slug: "acme"}}

	newRouter := func(got *tenancy.Scope, found *bool) *gin.Engine {
		router := gin.New()
		router.Use(StorefrontScope(tenants))
		router.GET("/", scopeProbe(got, found))
		return router
	}

	t.Run("resolves tenant from header", func(t *testing.T) {
		var got tenancy.Scope
		var found bool
		router := newRouter(&got, &found)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Tenant", "acme")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.True(t, found)
		require.NotNil(t, got.TenantID)
		assert.Equal(t, "t-9", *got.TenantID)
		assert.False(t, got.IsAdmin)
	})

	t.Run("missing header", func(t *testing.T) {
		var got tenancy.Scope
		var found bool
		router := newRouter(&got, &found)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		var got tenancy.Scope
		var found bool
		router := newRouter(&got, &found)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Tenant", "nobody")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
