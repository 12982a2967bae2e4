package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BindTokenRequest registers a push token for the plant.
type BindTokenRequest struct {
	Token string `json:"token" example:"ExponentPushToken[xxxxxxxxxxxxxxxxxxxxxx]"`
}

type tokensResponse struct {
	Status int      `json:"status"`
	Tokens []string `json:"tokens"`
}

// @Summary      Bind a push token to the plant
// @Description  Binding the same token twice is a no-op.
// @Tags         app
// @Accept       json
// @Produce      json
// @Param        Plant-Id  header  string            true  "Plant identifier"
// @Param        body      body    BindTokenRequest  true  "Push token"
// @Success      200  {object}  tokensResponse
// @Failure      400  {object}  statusResponse
// @Failure      500  {object}  statusResponse
// @Router       /BindPlantIdToken [post]
func (h *Handler) bindPlantIdToken(c *gin.Context) {
	var req BindTokenRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	plantID := plantIDFrom(c)

	tokens, err := h.services.Bind(c.Request.Context(), plantID, req.Token)
	if err != nil {
		h.respondError(c, err, "token_bind_failed", "plant_id", plantID)
		return
	}
	c.JSON(http.StatusOK, tokensResponse{Status: http.StatusOK, Tokens: tokens})
}
