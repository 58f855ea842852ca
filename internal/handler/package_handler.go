package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sorteocloud/raffle-backend/internal/dto"
	"github.com/sorteocloud/raffle-backend/internal/service"
	"github.com/sorteocloud/raffle-backend/pkg/response"
)

// PackageHandler handles ticket package management HTTP requests
type PackageHandler struct {
	packageService service.PackageService
	catalogService service.CatalogService
}

// NewPackageHandler creates a new PackageHandler
func NewPackageHandler(packageService service.PackageService, catalogService service.CatalogService) *PackageHandler {
	return &PackageHandler{packageService: packageService, catalogService: catalogService}
}

// Create handles package creation
// POST /api/v1/admin/packages
func (h *PackageHandler) Create(c *gin.Context) {
	var req dto.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.Error(response.ErrCodeValidationFailed, msg))
		return
	}

	result, err := h.packageService.Create(c.Request.Context(), &req)
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

	c.JSON(http.StatusCreated, response.Success(result))
}

// GetByID handles retrieving a package by ID
// GET /api/v1/admin/packages/:id
func (h *PackageHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Package ID is required"))
		return
	}

	result, err := h.packageService.GetByID(c.Request.Context(), id)
	if err != nil {
		if respondScopeError(c, err) {
			return
		}
		if errors.Is(err, service.ErrPackageNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Package not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// ListByRaffle handles retrieving all packages of a raffle
// GET /api/v1/admin/raffles/:id/packages
func (h *PackageHandler) ListByRaffle(c *gin.Context) {
	raffleID := c.Param("id")
	if raffleID == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Raffle ID is required"))
		return
	}
	includeInactive := c.Query("include_inactive") == "true"

	result, err := h.packageService.ListByRaffle(c.Request.Context(), raffleID, includeInactive)
	if err != nil {
		if respondScopeError(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Preview handles resolving a raffle's packages with promotions applied,
// including unavailable packages
// GET /api/v1/admin/raffles/:id/preview
func (h *PackageHandler) Preview(c *gin.Context) {
	raffleID := c.Param("id")
	if raffleID == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Raffle ID is required"))
		return
	}

	resolved, err := h.catalogService.ResolveForAdmin(c.Request.Context(), raffleID)
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

	c.JSON(http.StatusOK, response.Success(resolved))
}

// Update handles package update
// PUT /api/v1/admin/packages/:id
func (h *PackageHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Package ID is required"))
		return
	}

	var req dto.UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.Error(response.ErrCodeValidationFailed, msg))
		return
	}

	result, err := h.packageService.Update(c.Request.Context(), id, &req)
	if err != nil {
		if respondScopeError(c, err) {
			return
		}
		if errors.Is(err, service.ErrPackageNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Package not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Reorder handles batch repositioning of packages
// PUT /api/v1/admin/packages/reorder
func (h *PackageHandler) Reorder(c *gin.Context) {
	var req dto.ReorderPackagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.Error(response.ErrCodeValidationFailed, msg))
		return
	}

	if err := h.packageService.Reorder(c.Request.Context(), &req); err != nil {
		if respondScopeError(c, err) {
			return
		}
		if errors.Is(err, service.ErrPackageNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("One or more packages were not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Packages reordered successfully"}))
}

// Delete handles package soft deletion
// DELETE /api/v1/admin/packages/:id
func (h *PackageHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Package ID is required"))
		return
	}

	if err := h.packageService.Delete(c.Request.Context(), id); err != nil {
		if respondScopeError(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Package deleted successfully"}))
}
