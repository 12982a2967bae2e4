package handlers

import (
	"net/http"

	"smart_plant/internal/service"

	"github.com/gin-gonic/gin"
)

// OverrideRequest forces the actuators for the override validity window.
type OverrideRequest struct {
	// Lamp intensity in percent, 0..100
	LampIntensity *int `json:"lamp_intensity_pct" binding:"required" example:"80"`
	// Whether the water pump should run
	WaterPump *bool `json:"water_pump_on" binding:"required" example:"true"`
}

// @Summary      Override the actuators
// @Tags         app
// @Accept       json
// @Produce      json
// @Param        Plant-Id  header  string           true  "Plant identifier"
// @Param        body      body    OverrideRequest  true  "Override payload"
// @Success      200  {object}  statusResponse
// @Failure      400  {object}  statusResponse
// @Failure      500  {object}  statusResponse
// @Router       /Override [post]
func (h *Handler) override(c *gin.Context) {
	var req OverrideRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	plantID := plantIDFrom(c)

	err := h.services.Submit(c.Request.Context(), plantID, service.OverrideParams{
		LampIntensity: *req.LampIntensity,
		WaterPump:     *req.WaterPump,
	})
	if err != nil {
		h.respondError(c, err, "override_submit_failed", "plant_id", plantID)
		return
	}
	c.JSON(http.StatusOK, statusResponse{Status: http.StatusOK, Response: msgOverrideMade})
}

// @Summary      Remove all overrides
// @Description  count is the number of override records left and is 0 on success.
// @Tags         app
// @Produce      json
// @Param        Plant-Id  header  string  true  "Plant identifier"
// @Success      200  {object}  countResponse
// @Failure      400  {object}  statusResponse
// @Failure      500  {object}  statusResponse
// @Router       /RemoveOverride [delete]
func (h *Handler) removeOverride(c *gin.Context) {
	plantID := plantIDFrom(c)
	left, err := h.services.Overrides.Remove(c.Request.Context(), plantID)
	if err != nil {
		h.respondError(c, err, "override_remove_failed", "plant_id", plantID)
		return
	}
	c.JSON(http.StatusOK, countResponse{Status: http.StatusOK, Response: msgOverridesRemoved, Count: left})
}
