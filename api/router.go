package api

import (
	"github.com/Domenick1991/servicehub/internal/domain"
	"github.com/Domenick1991/servicehub/internal/service/auth"
	"github.com/Domenick1991/servicehub/internal/service/booking"
	"github.com/Domenick1991/servicehub/internal/service/contact"
	"github.com/Domenick1991/servicehub/internal/service/providers"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Auth      auth.AuthUseCase
	Providers providers.ProviderUseCase
	Bookings  booking.BookingUseCase
	Contact   contact.ContactUseCase
}

// RegisterRoutes mounts the /api/v1 tree on router.
func RegisterRoutes(router gin.IRouter, services Services) {
	v1 := router.Group("/api/v1")

	authHandler := NewAuthHandler(services.Auth)
	providerHandler := NewProviderHandler(services.Providers)
	bookingHandler := NewBookingHandler(services.Bookings)
	contactHandler := NewContactHandler(services.Contact)

	requireUser := RequireUser(services.Auth)
	authHandler.Register(v1.Group("/auth"), requireUser)
	providerHandler.Register(v1.Group("/providers"))
	contactHandler.Register(v1.Group("/contact"))

	user := v1.Group("", requireUser)
	bookingHandler.Register(user.Group("/bookings"))

	admin := user.Group("/admin", RequireRole(domain.RoleAdmin))
	bookingHandler.RegisterAdmin(admin.Group("/bookings"))
	providerHandler.RegisterAdmin(admin.Group("/providers"))
}
