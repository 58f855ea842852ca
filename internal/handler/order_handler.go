package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sorteocloud/raffle-backend/internal/domain"
	"github.com/sorteocloud/raffle-backend/internal/service"
	"github.com/sorteocloud/raffle-backend/pkg/response"
)

// OrderHandler handles the admin order view HTTP requests
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GetByID handles retrieving an order by ID
// GET /api/v1/admin/orders/:id
func (h *OrderHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Order ID is required"))
		return
	}

	result, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		if respondScopeError(c, err) {
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Order not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// List handles retrieving orders with pagination
// GET /api/v1/admin/orders
func (h *OrderHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	status := c.Query("status")

	result, err := h.orderService.List(c.Request.Context(), page, limit, status)
	if err != nil {
		if respondScopeError(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}
