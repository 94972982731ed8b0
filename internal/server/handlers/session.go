package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rfdevuser/InventoryManagement/internal/service/fabricform"
)

// acquireSession returns the caller's form controller, issuing a session cookie for new sessions.
func acquireSession(c *gin.Context, sessions *fabricform.SessionRegistry, cookie string) *fabricform.Controller {
	existing, _ := c.Cookie(cookie)
	id, ctrl := sessions.Acquire(existing)
	if id != existing {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookie, id, 0, "/", "", false, true)
	}
	return ctrl
}

func submitStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, fabricform.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, fabricform.ErrSubmitInFlight):
		return http.StatusConflict
	case errors.Is(err, fabricform.ErrControllerClosed):
		return http.StatusGone
	case errors.Is(err, fabricform.ErrUnknownField):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}
