package domain

import (
	"errors"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusPaid      BookingStatus = "PAID"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

var ErrInvalidTransition = errors.New("invalid booking status transition")

type Booking struct {
	ID         string        `json:"id"`
	UserID     string        `json:"userId"`
	ProviderID string        `json:"providerId"`
	Slot       string        `json:"slot"`
	Amount     int64         `json:"amount"`
	Status     BookingStatus `json:"status"`
	Notes      string        `json:"notes"`
	CreatedAt  time.Time     `json:"createdAt,omitzero"`
	UpdatedAt  time.Time     `json:"updatedAt,omitzero"`
}

// CanTransition reports whether a booking may move from s to next.
// Status only moves forward: PENDING -> PAID -> CANCELLED, with PENDING ->
// CANCELLED allowed directly. CANCELLED is terminal.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return next == BookingStatusPaid || next == BookingStatusCancelled
	case BookingStatusPaid:
		return next == BookingStatusCancelled
	default:
		return false
	}
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusPaid, BookingStatusCancelled:
		return true
	}
	return false
}

// MarkPaid completes the simulated payment.
func (b *Booking) MarkPaid(now time.Time) error {
	return b.transition(BookingStatusPaid, now)
}

// Cancel is idempotent: cancelling a cancelled booking is not an error and
// leaves UpdatedAt untouched.
func (b *Booking) Cancel(now time.Time) error {
	if b.Status == BookingStatusCancelled {
		return nil
	}
	return b.transition(BookingStatusCancelled, now)
}

func (b *Booking) transition(next BookingStatus, now time.Time) error {
	if !b.Status.CanTransition(next) {
		return ErrInvalidTransition
	}
	b.Status = next
	b.UpdatedAt = now
	return nil
}
