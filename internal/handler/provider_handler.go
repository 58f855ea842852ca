package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sorteocloud/raffle-backend/internal/dto"
	"github.com/sorteocloud/raffle-backend/internal/service"
	"github.com/sorteocloud/raffle-backend/pkg/response"
)

// ProviderHandler handles provider credential management HTTP requests.
// Responses never include full secrets, only a hint.
type ProviderHandler struct {
	providerService service.ProviderService
}

// NewProviderHandler creates a new ProviderHandler
func NewProviderHandler(providerService service.ProviderService) *ProviderHandler {
	return &ProviderHandler{providerService: providerService}
}

// Create handles provider config creation
// POST /api/v1/admin/providers
func (h *ProviderHandler) Create(c *gin.Context) {
	var req dto.CreateProviderConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.Error(response.ErrCodeValidationFailed, msg))
		return
	}

	result, err := h.providerService.Create(c.Request.Context(), &req)
	if err != nil {
		if respondScopeError(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(result))
}

// GetByID handles retrieving a provider config by ID
// GET /api/v1/admin/providers/:id
func (h *ProviderHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Provider config ID is required"))
		return
	}

	result, err := h.providerService.GetByID(c.Request.Context(), id)
	if err != nil {
		if respondScopeError(c, err) {
			return
		}
		if errors.Is(err, service.ErrProviderNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Provider config not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// List handles retrieving all provider configs of the tenant
// GET /api/v1/admin/providers
func (h *ProviderHandler) List(c *gin.Context) {
	result, err := h.providerService.List(c.Request.Context())
	if err != nil {
		if respondScopeError(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Update handles provider config update
// PUT /api/v1/admin/providers/:id
func (h *ProviderHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Provider config ID is required"))
		return
	}

	var req dto.UpdateProviderConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.Error(response.ErrCodeValidationFailed, msg))
		return
	}

	result, err := h.providerService.Update(c.Request.Context(), id, &req)
	if err != nil {
		if respondScopeError(c, err) {
			return
		}
		if errors.Is(err, service.ErrProviderNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Provider config not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Delete handles provider config deletion
// DELETE /api/v1/admin/providers/:id
func (h *ProviderHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Provider config ID is required"))
		return
	}

	if err := h.providerService.Delete(c.Request.Context(), id); err != nil {
		if respondScopeError(c, err) {
			return
		}
		if errors.Is(err, service.ErrProviderNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Provider config not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Provider config deleted successfully"}))
}
