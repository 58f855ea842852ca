package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sorteocloud/raffle-backend/internal/dto"
	"github.com/sorteocloud/raffle-backend/internal/service"
	"github.com/sorteocloud/raffle-backend/pkg/response"
)

// ReferralHandler handles referral code HTTP requests
type ReferralHandler struct {
	referralService service.ReferralService
}

// NewReferralHandler creates a new ReferralHandler
func NewReferralHandler(referralService service.ReferralService) *ReferralHandler {
	return &ReferralHandler{referralService: referralService}
}

// Create handles referral code creation
// POST /api/v1/admin/referrals
func (h *ReferralHandler) Create(c *gin.Context) {
	var req dto.CreateReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.Error(response.ErrCodeValidationFailed, msg))
		return
	}

	result, err := h.referralService.Create(c.Request.Context(), &req)
	if err != nil {
		if respondScopeError(c, err) {
			return
		}
		if errors.Is(err, service.ErrRaffleNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Raffle not found"))
			return
		}
		if errors.Is(err, service.ErrReferralCodeTaken) {
			c.JSON(http.StatusConflict, response.Error(response.ErrCodeDuplicateEntry, "Referral code already exists for this raffle"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(result))
}

// ListByRaffle handles retrieving all referral codes of a raffle
// GET /api/v1/admin/raffles/:id/referrals
func (h *ReferralHandler) ListByRaffle(c *gin.Context) {
	raffleID := c.Param("id")
	if raffleID == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Raffle ID is required"))
		return
	}

	result, err := h.referralService.ListByRaffle(c.Request.Context(), raffleID)
	if err != nil {
		if respondScopeError(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// TrackVisit handles a storefront landing through a referral link
// POST /api/v1/storefront/:slug/ref/:code
func (h *ReferralHandler) TrackVisit(c *gin.Context) {
	slug := c.Param("slug")
	code := c.Param("code")
	if slug == "" || code == "" {
		c.JSON(http.StatusBadRequest, response.BadRequest("Raffle slug and referral code are required"))
		return
	}

	result, err := h.referralService.TrackVisit(c.Request.Context(), slug, code)
	if err != nil {
		if respondScopeError(c, err) {
			return
		}
		if errors.Is(err, service.ErrRaffleNotFound) || errors.Is(err, service.ErrReferralNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Referral not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}
