package store

import (
	"context"

	"github.com/Domenick1991/servicehub/internal/domain"
)

func seedUsers() []domain.User {
	return []domain.User{
		{ID: "admin", Name: "Admin", Email: "admin@servicehub.local", Role: domain.RoleAdmin, Password: "admin", Verified: true},
	}
}

func seedProviders() []domain.Provider {
	return []domain.Provider{
		{ID: "prov1", Name: "Ravi Kumar", Category: "Plumbing", Rating: 4.7, Verified: true, Charges: 500, Location: "Chennai", Slots: []string{"2025-11-12T09:00", "2025-11-12T13:00"}},
		{ID: "prov2", Name: "Geeta Sharma", Category: "Electrician", Rating: 4.4, Verified: false, Charges: 400, Location: "Chennai", Slots: []string{"2025-11-13T10:00"}},
	}
}

// Seed writes the demo data into every collection that does not exist yet.
// Existing collections, even empty ones, are left alone.
func Seed(ctx context.Context, s Store, prefix string) error {
	if err := seedIfAbsent(ctx, NewCollection[domain.User](s, prefix, CollectionUsers), seedUsers()); err != nil {
		return err
	}
	if err := seedIfAbsent(ctx, NewCollection[domain.Provider](s, prefix, CollectionProviders), seedProviders()); err != nil {
		return err
	}
	if err := seedIfAbsent(ctx, NewCollection[domain.Booking](s, prefix, CollectionBookings), nil); err != nil {
		return err
	}
	return seedIfAbsent(ctx, NewCollection[domain.ContactMessage](s, prefix, CollectionContacts), nil)
}

func seedIfAbsent[T any](ctx context.Context, c *Collection[T], records []T) error {
	ok, err := c.Exists(ctx)
	if err != nil || ok {
		return err
	}
	return c.Write(ctx, records)
}
