package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sorteocloud/raffle-backend/internal/tenancy"
	"github.com/sorteocloud/raffle-backend/pkg/response"
)

// parsePagination reads page and limit query parameters with defaults
func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// respondScopeError writes the tenant scope failure response and reports
// whether it handled the error
func respondScopeError(c *gin.Context, err error) bool {
	if !errors.Is(err, tenancy.ErrScopeNotSet) {
		return false
	}
	c.JSON(http.StatusForbidden, response.Error(response.ErrCodeScopeNotSet, "Tenant scope is not set for this request"))
	return true
}
