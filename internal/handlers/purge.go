package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OperatorTokenRequest exchanges the operator key for a short-lived token.
type OperatorTokenRequest struct {
	OperatorKey string `json:"operator_key" binding:"required"`
}

// ConfirmRemovalRequest is the operator decision on a pending removal.
type ConfirmRemovalRequest struct {
	Ticket  string `json:"ticket" binding:"required" example:"0b6f9c1e-8f53-4f0b-9a55-5c2f7d1d3a10"`
	Approve *bool  `json:"approve" binding:"required" example:"true"`
}

type operatorTokenResponse struct {
	Status int    `json:"status"`
	Token  string `json:"token"`
}

type removalTicketResponse struct {
	Status   int    `json:"status"`
	Response string `json:"response"`
	Ticket   string `json:"ticket"`
	Count    int    `json:"count"`
}

// @Summary      Issue an operator token
// @Description  Only available in debug mode.
// @Tags         operator
// @Accept       json
// @Produce      json
// @Param        body  body  OperatorTokenRequest  true  "Operator key"
// @Success      200  {object}  operatorTokenResponse
// @Failure      400  {object}  statusResponse
// @Failure      401  {object}  statusResponse
// @Failure      403  {object}  statusResponse
// @Router       /admin/token [post]
func (h *Handler) issueOperatorToken(c *gin.Context) {
	var req OperatorTokenRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	token, err := h.services.IssueOperatorToken(req.OperatorKey)
	if err != nil {
		if h.log != nil {
			h.log.Infow("operator_token_denied", "err", err)
		}
		h.respondError(c, err, "operator_token_failed")
		return
	}
	c.JSON(http.StatusOK, operatorTokenResponse{Status: http.StatusOK, Token: token})
}

// @Summary      Request removal of all readings
// @Description  Opens a ticket an operator must confirm via /RemoveEntries/confirm. Only available in debug mode.
// @Tags         operator
// @Produce      json
// @Param        Plant-Id  header  string  true  "Plant identifier"
// @Success      202  {object}  removalTicketResponse
// @Failure      400  {object}  statusResponse
// @Failure      403  {object}  statusResponse
// @Failure      500  {object}  statusResponse
// @Router       /RemoveEntries [delete]
func (h *Handler) removeEntries(c *gin.Context) {
	plantID := plantIDFrom(c)
	ticket, count, err := h.services.RequestPurge(c.Request.Context(), plantID)
	if err != nil {
		h.respondError(c, err, "purge_request_failed", "plant_id", plantID)
		return
	}
	if h.log != nil {
		h.log.Infow("purge_requested", "plant_id", plantID, "ticket", ticket.ID, "count", count)
	}
	c.JSON(http.StatusAccepted, removalTicketResponse{
		Status:   http.StatusAccepted,
		Response: msgRemovalPending,
		Ticket:   ticket.ID,
		Count:    count,
	})
}

// @Summary      Confirm or deny a removal request
// @Description  A denied request answers 500 with the remaining count.
// @Tags         operator
// @Accept       json
// @Produce      json
// @Param        body  body  ConfirmRemovalRequest  true  "Decision"
// @Success      200  {object}  countResponse
// @Failure      400  {object}  statusResponse
// @Failure      401  {object}  statusResponse
// @Failure      404  {object}  statusResponse
// @Failure      500  {object}  countResponse
// @Router       /RemoveEntries/confirm [post]
// @Security     BearerAuth
func (h *Handler) confirmRemoveEntries(c *gin.Context) {
	var req ConfirmRemovalRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	res, err := h.services.ConfirmPurge(c.Request.Context(), req.Ticket, *req.Approve)
	if err != nil {
		h.respondError(c, err, "purge_confirm_failed", "ticket", req.Ticket)
		return
	}
	if h.log != nil {
		h.log.Infow("purge_decided", "plant_id", res.PlantID, "approved", res.Approved, "count", res.Count)
	}

	if !res.Approved {
		c.JSON(http.StatusInternalServerError, countResponse{
			Status:   http.StatusInternalServerError,
			Response: msgRemovalDenied,
			Count:    res.Count,
		})
		return
	}
	c.JSON(http.StatusOK, countResponse{Status: http.StatusOK, Response: msgRemovalAccepted, Count: res.Count})
}
