package booking

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/servicehub/internal/domain"
	"github.com/Domenick1991/servicehub/internal/kafka"
	"github.com/Domenick1991/servicehub/internal/repository"
	"github.com/rs/zerolog/log"
)

var (
	ErrNotAuthenticated = errors.New("please login to book")
	ErrProviderNotFound = errors.New("provider not found")
	ErrUnknownSlot      = errors.New("slot is not offered by provider")
	ErrSlotTaken        = errors.New("slot is already booked")
	ErrBookingNotFound  = errors.New("booking not found")
)

const completionTimeout = 5 * time.Second

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	CompletePayment(ctx context.Context, id string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id string) (*domain.Booking, error)
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	ListUserBookings(ctx context.Context, userID string) ([]domain.Booking, error)
	CompleteOverduePayments(ctx context.Context) ([]domain.Booking, error)
}

type SlotLocker interface {
	AcquireSlotLock(ctx context.Context, providerID, slot string, ttl time.Duration) (bool, error)
	ReleaseSlotLock(ctx context.Context, providerID, slot string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	providers          repository.ProviderRepository
	users              repository.UserRepository
	producer           Producer
	locker             SlotLocker
	scheduler          *Scheduler
	bookingTopic       string
	notificationsTopic string
	paymentDelay       time.Duration
	slotLockTTL        time.Duration
	exclusiveSlots     bool
	now                func() time.Time
}

type CreateBookingInput struct {
	UserID     string `json:"user_id"`
	ProviderID string `json:"provider_id"`
	Slot       string `json:"slot"`
	Notes      string `json:"notes"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithExclusiveSlots rejects a second active booking of the same provider
// slot. locker may be nil; it only narrows the window between processes.
func WithExclusiveSlots(locker SlotLocker, lockTTL time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.exclusiveSlots = true
		s.locker = locker
		s.slotLockTTL = lockTTL
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

// NewBookingService wires the booking lifecycle. producer may be nil, in
// which case no events are published.
func NewBookingService(
	bookings repository.BookingRepository,
	providers repository.ProviderRepository,
	users repository.UserRepository,
	producer Producer,
	bookingTopic string,
	paymentDelay time.Duration,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		providers:    providers,
		users:        users,
		producer:     producer,
		scheduler:    NewScheduler(),
		bookingTopic: bookingTopic,
		paymentDelay: paymentDelay,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.UserID == "" {
		return nil, ErrNotAuthenticated
	}
	user, err := s.users.GetByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}

	provider, err := s.providers.GetByID(ctx, input.ProviderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}

	slot := input.Slot
	if slot == "" && len(provider.Slots) > 0 {
		slot = provider.Slots[0]
	}
	if !provider.OffersSlot(slot) {
		return nil, ErrUnknownSlot
	}

	if s.exclusiveSlots && s.locker != nil {
		ok, err := s.locker.AcquireSlotLock(ctx, provider.ID, slot, s.slotLockTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrSlotTaken
		}
		defer func() {
			if err := s.locker.ReleaseSlotLock(context.WithoutCancel(ctx), provider.ID, slot); err != nil {
				log.Warn().Err(err).Str("provider_id", provider.ID).Str("slot", slot).Msg("release slot lock")
			}
		}()
	}

	now := s.now()
	booking := &domain.Booking{
		ID:         domain.NewBookingID(),
		UserID:     user.ID,
		ProviderID: provider.ID,
		Slot:       slot,
		Amount:     provider.Charges,
		Notes:      input.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.bookings.CreatePending(ctx, booking, s.exclusiveSlots); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	log.Info().Str("booking_id", booking.ID).Str("provider_id", booking.ProviderID).Str("slot", booking.Slot).Msg("booking created")
	if err := s.publish(ctx, kafka.EventBookingCreated, booking, user.Email); err != nil {
		log.Warn().Err(err).Str("booking_id", booking.ID).Msg("failed to publish booking_created event")
	}

	s.schedulePayment(booking.ID)
	return booking, nil
}

// schedulePayment completes the simulated payment once paymentDelay has
// passed. The payment always succeeds.
func (s *BookingService) schedulePayment(id string) {
	s.scheduler.Schedule(id, s.paymentDelay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), completionTimeout)
		defer cancel()
		if _, err := s.CompletePayment(ctx, id); err != nil {
			log.Error().Err(err).Str("booking_id", id).Msg("complete payment")
		}
	})
}

// CompletePayment moves a PENDING booking to PAID. Bookings in any other
// state are returned unchanged.
func (s *BookingService) CompletePayment(ctx context.Context, id string) (*domain.Booking, error) {
	paid := false
	updated, err := s.bookings.Modify(ctx, id, func(b *domain.Booking) error {
		if b.Status != domain.BookingStatusPending {
			return nil
		}
		paid = true
		return b.MarkPaid(s.now())
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !paid {
		return updated, nil
	}

	s.scheduler.Cancel(id)
	log.Info().Str("booking_id", id).Int64("amount", updated.Amount).Msg("payment successful, booking confirmed")
	if err := s.publish(ctx, kafka.EventBookingPaid, updated, s.userEmail(ctx, updated.UserID)); err != nil {
		log.Warn().Err(err).Str("booking_id", id).Msg("failed to publish booking_paid event")
	}
	return updated, nil
}

// CancelBooking is idempotent. Paid bookings may be cancelled; there is no
// refund step.
func (s *BookingService) CancelBooking(ctx context.Context, id string) (*domain.Booking, error) {
	cancelled := false
	updated, err := s.bookings.Modify(ctx, id, func(b *domain.Booking) error {
		if b.Status == domain.BookingStatusCancelled {
			return nil
		}
		cancelled = true
		return b.Cancel(s.now())
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !cancelled {
		return updated, nil
	}

	s.scheduler.Cancel(id)
	log.Info().Str("booking_id", id).Msg("booking cancelled")
	if err := s.publish(ctx, kafka.EventBookingCancelled, updated, s.userEmail(ctx, updated.UserID)); err != nil {
		log.Warn().Err(err).Str("booking_id", id).Msg("failed to publish booking_cancelled event")
	}
	return updated, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *BookingService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

func (s *BookingService) ListUserBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// CompleteOverduePayments pays bookings still PENDING after the payment
// delay, e.g. when a restart dropped their timers.
func (s *BookingService) CompleteOverduePayments(ctx context.Context) ([]domain.Booking, error) {
	pending, err := s.bookings.ListPendingBefore(ctx, s.now().Add(-s.paymentDelay))
	if err != nil {
		return nil, err
	}

	completed := make([]domain.Booking, 0, len(pending))
	for _, b := range pending {
		updated, err := s.CompletePayment(ctx, b.ID)
		if err != nil {
			log.Error().Err(err).Str("booking_id", b.ID).Msg("complete overdue payment")
			continue
		}
		if updated.Status == domain.BookingStatusPaid {
			completed = append(completed, *updated)
		}
	}
	return completed, nil
}

// Close cancels pending payment timers.
func (s *BookingService) Close() {
	s.scheduler.Stop()
}

func (s *BookingService) userEmail(ctx context.Context, userID string) string {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return ""
	}
	return u.Email
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking, email string) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		ProviderID: booking.ProviderID,
		Email:      email,
		Slot:       booking.Slot,
		Amount:     booking.Amount,
		Status:     string(booking.Status),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.ID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
