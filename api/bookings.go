package api

import (
	"net/http"

	"github.com/Domenick1991/servicehub/internal/domain"
	"github.com/Domenick1991/servicehub/internal/service/auth"
	"github.com/Domenick1991/servicehub/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	ProviderID string `json:"provider_id" binding:"required"`
	Slot       string `json:"slot"`
	Notes      string `json:"notes"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

// Register mounts the routes of the signed-in user.
func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.listMine)
	router.GET("/:id", h.get)
}

func (h *BookingHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.GET("", h.listAll)
	router.DELETE("/:id", h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		writeError(c, auth.ErrNotAuthenticated)
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		UserID:     user.ID,
		ProviderID: req.ProviderID,
		Slot:       req.Slot,
		Notes:      req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *BookingHandler) listMine(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		writeError(c, auth.ErrNotAuthenticated)
		return
	}

	bookings, err := h.service.ListUserBookings(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// get hides bookings of other users behind a 404; admins see all.
func (h *BookingHandler) get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		writeError(c, auth.ErrNotAuthenticated)
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if b.UserID != user.ID && user.Role != domain.RoleAdmin {
		writeError(c, booking.ErrBookingNotFound)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) listAll(c *gin.Context) {
	bookings, err := h.service.ListBookings(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	b, err := h.service.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
