package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sorteocloud/raffle-backend/internal/domain"
	"github.com/sorteocloud/raffle-backend/internal/dto"
	"github.com/sorteocloud/raffle-backend/internal/service"
	"github.com/sorteocloud/raffle-backend/pkg/response"
)

// StorefrontHandler handles the public buyer-facing HTTP requests
type StorefrontHandler struct {
	catalogService  service.CatalogService
	checkoutService service.CheckoutService
}

// NewStorefrontHandler creates a new StorefrontHandler
func NewStorefrontHandler(catalogService service.CatalogService, checkoutService service.CheckoutService) *StorefrontHandler {
	return &StorefrontHandler{catalogService: catalogService, checkoutService: checkoutService}
}

// GetCatalog handles retrieving the resolved package catalog of a raffle
// GET /api/v1/storefront/:slug/packages
func (h *StorefrontHandler) GetCatalog(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Raffle slug is required"))
		return
	}

	result, err := h.catalogService.GetStorefrontCatalog(c.Request.Context(), slug)
	if err != nil {
		if respondScopeError(c, err) {
			return
		}
		if errors.Is(err, service.ErrRaffleNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Raffle not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Checkout handles opening a pending order for one package
// POST /api/v1/storefront/:slug/checkout
func (h *StorefrontHandler) Checkout(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Raffle slug is required"))
		return
	}

	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.Error(response.ErrCodeValidationFailed, msg))
		return
	}

	result, err := h.checkoutService.Checkout(c.Request.Context(), slug, &req)
	if err != nil {
		if respondScopeError(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrRaffleNotFound), errors.Is(err, service.ErrPackageNotFound):
			c.JSON(http.StatusNotFound, response.NotFound(err.Error()))
		case errors.Is(err, service.ErrRaffleNotPurchasable), errors.Is(err, service.ErrPackageUnavailable):
			c.JSON(http.StatusConflict, response.Error(response.ErrCodePackageUnavailable, err.Error()))
		case errors.Is(err, domain.ErrSoldOut):
			c.JSON(http.StatusConflict, response.SoldOut(""))
		case errors.Is(err, service.ErrPurchaseLimitReached):
			c.JSON(http.StatusTooManyRequests, response.Error(response.ErrCodeMaxLimitReached, err.Error()))
		case errors.Is(err, service.ErrNoPaymentProvider):
			c.JSON(http.StatusServiceUnavailable, response.Error(response.ErrCodeServiceUnavailable, err.Error()))
		case errors.Is(err, service.ErrPaymentFailed):
			c.JSON(http.StatusPaymentRequired, response.PaymentFailed(""))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		}
		return
	}

	c.JSON(http.StatusCreated, response.Success(result))
}

// ConfirmPayment handles reconciling an order after client-side payment
// POST /api/v1/storefront/orders/:id/confirm
func (h *StorefrontHandler) ConfirmPayment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Order ID is required"))
		return
	}

	result, err := h.checkoutService.ConfirmPayment(c.Request.Context(), id)
	if err != nil {
		if respondScopeError(c, err) {
			return
		}
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Order not found"))
		case errors.Is(err, service.ErrNoPaymentProvider):
			c.JSON(http.StatusServiceUnavailable, response.Error(response.ErrCodeServiceUnavailable, err.Error()))
		case errors.Is(err, service.ErrPaymentFailed):
			c.JSON(http.StatusPaymentRequired, response.PaymentFailed(""))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}
