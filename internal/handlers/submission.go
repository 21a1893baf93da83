package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uyeplus/app-campaign/internal/models"
	"github.com/uyeplus/app-campaign/internal/services"
)

// SubmitApplication godoc
// @Summary Submit a campaign application
// @Description Accepts the filled application form as a flat key/value payload including identityNumber, sessionToken and campaignId, re-verifies the session token and commits the application. The operation is guarded by the backend's uniqueness constraint on identity and campaign.
// @Tags applications
// @Accept json
// @Produce json
// @Param data body map[string]interface{} true "Flat form payload"
// @Success 200 {object} models.SubmissionResult
// @Failure 400 {object} models.SubmissionResult
// @Router /applications [post]
func (h *Handler) SubmitApplication(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, models.SubmissionResult{
			Message: "Invalid request body",
		})
		return
	}

	result := h.submission.Submit(c.Request.Context(), services.SubmissionInput{
		Payload:   payload,
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if result.Success {
		c.JSON(http.StatusOK, result)
		return
	}
	c.JSON(http.StatusBadRequest, result)
}
