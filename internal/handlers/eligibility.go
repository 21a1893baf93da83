package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uyeplus/app-campaign/internal/models"
)

// CheckEligibility godoc
// @Summary Check campaign eligibility
// @Description Validates the identity number, checks membership and duplicate-application state, and on success returns a short-lived session token scoped to the target campaign.
// @Tags eligibility
// @Accept json
// @Produce json
// @Param data body models.EligibilityRequest true "Identity number and optional campaign id"
// @Success 200 {object} models.EligibilityResult
// @Failure 400 {object} ErrorResponse
// @Router /eligibility [post]
func (h *Handler) CheckEligibility(c *gin.Context) {
	var req models.EligibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	result := h.eligibility.CheckEligibility(c.Request.Context(), req.IdentityNumber, req.CampaignID)
	c.JSON(http.StatusOK, result)
}
