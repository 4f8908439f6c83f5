package repository

import (
	"context"
	"time"

	"github.com/Domenick1991/servicehub/internal/domain"
	"github.com/Domenick1991/servicehub/internal/store"
)

type BookingRepository interface {
	List(ctx context.Context) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	// CreatePending appends booking. With exclusiveSlot set it fails with
	// ErrSlotTaken when a non-cancelled booking holds the same provider slot.
	CreatePending(ctx context.Context, booking *domain.Booking, exclusiveSlot bool) error
	// Modify applies fn to the stored booking and persists the result.
	Modify(ctx context.Context, id string, fn func(b *domain.Booking) error) (*domain.Booking, error)
	ListPendingBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error)
}

type StoreBookingRepository struct {
	bookings *store.Collection[domain.Booking]
}

func NewBookingRepository(s store.Store, prefix string) BookingRepository {
	return &StoreBookingRepository{bookings: store.NewCollection[domain.Booking](s, prefix, store.CollectionBookings)}
}

func (r *StoreBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	return r.bookings.Read(ctx)
}

func (r *StoreBookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	bookings, err := r.bookings.Read(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0)
	for _, b := range bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *StoreBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	bookings, err := r.bookings.Read(ctx)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		if bookings[i].ID == id {
			return &bookings[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *StoreBookingRepository) CreatePending(ctx context.Context, booking *domain.Booking, exclusiveSlot bool) error {
	booking.Status = domain.BookingStatusPending
	return r.bookings.Update(ctx, func(bookings []domain.Booking) ([]domain.Booking, error) {
		if exclusiveSlot {
			for _, b := range bookings {
				if b.ProviderID == booking.ProviderID && b.Slot == booking.Slot && b.Status != domain.BookingStatusCancelled {
					return nil, ErrSlotTaken
				}
			}
		}
		return append(bookings, *booking), nil
	})
}

func (r *StoreBookingRepository) Modify(ctx context.Context, id string, fn func(b *domain.Booking) error) (*domain.Booking, error) {
	var modified domain.Booking
	err := r.bookings.Update(ctx, func(bookings []domain.Booking) ([]domain.Booking, error) {
		for i := range bookings {
			if bookings[i].ID != id {
				continue
			}
			if err := fn(&bookings[i]); err != nil {
				return nil, err
			}
			modified = bookings[i]
			return bookings, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &modified, nil
}

func (r *StoreBookingRepository) ListPendingBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error) {
	bookings, err := r.bookings.Read(ctx)
	if err != nil {
		return nil, err
	}
	var pending []domain.Booking
	for _, b := range bookings {
		if b.Status == domain.BookingStatusPending && !b.CreatedAt.After(deadline) {
			pending = append(pending, b)
		}
	}
	return pending, nil
}

var _ BookingRepository = (*StoreBookingRepository)(nil)
