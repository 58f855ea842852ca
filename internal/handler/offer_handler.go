package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sorteocloud/raffle-backend/internal/dto"
	"github.com/sorteocloud/raffle-backend/internal/service"
	"github.com/sorteocloud/raffle-backend/pkg/response"
)

// OfferHandler handles time-limited offer management HTTP requests
type OfferHandler struct {
	offerService service.OfferService
}

// NewOfferHandler creates a new OfferHandler
func NewOfferHandler(offerService service.OfferService) *OfferHandler {
	return &OfferHandler{offerService: offerService}
}

// Create handles offer creation
// POST /api/v1/admin/offers
func (h *OfferHandler) Create(c *gin.Context) {
	var req dto.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.Error(response.ErrCodeValidationFailed, msg))
		return
	}

	result, err := h.offerService.Create(c.Request.Context(), &req)
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

	c.JSON(http.StatusCreated, response.Success(result))
}

// GetByID handles retrieving an offer by ID
// GET /api/v1/admin/offers/:id
func (h *OfferHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Offer ID is required"))
		return
	}

	result, err := h.offerService.GetByID(c.Request.Context(), id)
	if err != nil {
		if respondScopeError(c, err) {
			return
		}
		if errors.Is(err, service.ErrOfferNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Offer not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// ListByPackage handles retrieving all offers of a package
// GET /api/v1/admin/packages/:id/offers
func (h *OfferHandler) ListByPackage(c *gin.Context) {
	packageID := c.Param("id")
	if packageID == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Package ID is required"))
		return
	}

	result, err := h.offerService.ListByPackage(c.Request.Context(), packageID)
	if err != nil {
		if respondScopeError(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Update handles offer update
// PUT /api/v1/admin/offers/:id
func (h *OfferHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Offer ID is required"))
		return
	}

	var req dto.UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.Error(response.ErrCodeValidationFailed, msg))
		return
	}

	result, err := h.offerService.Update(c.Request.Context(), id, &req)
	if err != nil {
		if respondScopeError(c, err) {
			return
		}
		if errors.Is(err, service.ErrOfferNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Offer not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Delete handles offer deletion
// DELETE /api/v1/admin/offers/:id
func (h *OfferHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Offer ID is required"))
		return
	}

	if err := h.offerService.Delete(c.Request.Context(), id); err != nil {
		if respondScopeError(c, err) {
			return
		}
		if errors.Is(err, service.ErrOfferNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Offer not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Offer deleted successfully"}))
}
