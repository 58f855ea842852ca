package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sorteocloud/raffle-backend/internal/dto"
	"github.com/sorteocloud/raffle-backend/internal/service"
	"github.com/sorteocloud/raffle-backend/pkg/response"
)

// RaffleHandler handles raffle management HTTP requests
type RaffleHandler struct {
	raffleService service.RaffleService
}

// NewRaffleHandler creates a new RaffleHandler
func NewRaffleHandler(raffleService service.RaffleService) *RaffleHandler {
	return &RaffleHandler{raffleService: raffleService}
}

// Create handles raffle creation
// POST /api/v1/admin/raffles
func (h *RaffleHandler) Create(c *gin.Context) {
	var req dto.CreateRaffleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.Error(response.ErrCodeValidationFailed, msg))
		return
	}

	result, err := h.raffleService.Create(c.Request.Context(), &req)
	if err != nil {
		if respondScopeError(c, err) {
			return
		}
		if errors.Is(err, service.ErrRaffleSlugTaken) {
			c.JSON(http.StatusConflict, response.Error(response.ErrCodeConflict, "Raffle with this slug already exists"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(result))
}

// GetByID handles retrieving a raffle by ID
// GET /api/v1/admin/raffles/:id
func (h *RaffleHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Raffle ID is required"))
		return
	}

	result, err := h.raffleService.GetByID(c.Request.Context(), id)
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

// List handles retrieving raffles with pagination
// GET /api/v1/admin/raffles
func (h *RaffleHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	status := c.Query("status")

	result, err := h.raffleService.List(c.Request.Context(), page, limit, status)
	if err != nil {
		if respondScopeError(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Update handles raffle update
// PUT /api/v1/admin/raffles/:id
func (h *RaffleHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Raffle ID is required"))
		return
	}

	var req dto.UpdateRaffleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.Error(response.ErrCodeValidationFailed, msg))
		return
	}

	result, err := h.raffleService.Update(c.Request.Context(), id, &req)
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

// Delete handles raffle soft deletion
// DELETE /api/v1/admin/raffles/:id
func (h *RaffleHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Raffle ID is required"))
		return
	}

	if err := h.raffleService.Delete(c.Request.Context(), id); err != nil {
		if respondScopeError(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Raffle deleted successfully"}))
}
