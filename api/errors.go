package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/servicehub/internal/service/auth"
	"github.com/Domenick1991/servicehub/internal/service/booking"
	"github.com/Domenick1991/servicehub/internal/service/contact"
	"github.com/Domenick1991/servicehub/internal/service/providers"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var errForbidden = errors.New("admin access required")

func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrNotAuthenticated),
		errors.Is(err, booking.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, errForbidden):
		return http.StatusForbidden
	case errors.Is(err, auth.ErrEmailTaken),
		errors.Is(err, booking.ErrSlotTaken):
		return http.StatusConflict
	case errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, booking.ErrProviderNotFound),
		errors.Is(err, providers.ErrProviderNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrInvalidInput),
		errors.Is(err, auth.ErrInvalidRole),
		errors.Is(err, booking.ErrUnknownSlot),
		errors.Is(err, contact.ErrInvalidInput):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeError hides internal failures behind a generic message.
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.AbortWithStatusJSON(status, gin.H{"error": "internal error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
