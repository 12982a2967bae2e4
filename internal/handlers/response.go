package handlers

import (
	"errors"
	"net/http"

	"smart_plant/internal/service"

	"github.com/gin-gonic/gin"
)

const docsURL = "https://github.com/OmarSinoussy/SmartPlantAPI"

// Response messages shared by the endpoints.
const (
	msgEntryAdded        = "Entry Added"
	msgOverrideMade      = "override request made"
	msgOverridesRemoved  = "Records have been removed sucessfully"
	msgRemovalPending    = "Removal request is awaiting operator confirmation"
	msgRemovalAccepted   = "Removal request has been accepted"
	msgRemovalDenied     = "Removal request has been denied"
	msgMissingPlantID    = "No Plant-Id provided in the request header"
	msgInvalidBodyPrefix = "Bad request. Invalid payload: "
	msgInternal          = "Internal server error"
)

// statusResponse is the body of every error and of plain acknowledgements.
type statusResponse struct {
	Status   int    `json:"status"`
	Response string `json:"response"`
}

type countResponse struct {
	Status   int    `json:"status"`
	Response string `json:"response"`
	Count    int    `json:"count"`
}

// docsMessage appends the documentation pointer to an error message.
func docsMessage(msg string) string {
	return msg + ". Please visit " + docsURL + " for API documentation and more information on this error"
}

func abortWithError(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, statusResponse{Status: code, Response: docsMessage(msg)})
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, service.ErrNoData):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrInvalidOperatorKey):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrTicketNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body. Internal errors are logged under logKey
// and their details are not exposed.
func (h *Handler) respondError(c *gin.Context, err error, logKey string, kv ...interface{}) {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		if h.log != nil {
			fields := append([]interface{}{"err", err}, kv...)
			h.log.Errorw(logKey, fields...)
		}
		msg = msgInternal
	}
	abortWithError(c, code, msg)
}

// bindJSONOrBadRequest binds the request body into dst and writes a 400 on failure.
// Returns false if the request was already handled.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		abortWithError(c, http.StatusBadRequest, msgInvalidBodyPrefix+err.Error())
		return false
	}
	return true
}
