package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/servicehub/config"
	"github.com/Domenick1991/servicehub/internal/kafka"
	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type Sender struct {
	from   string
	dialer dialer
}

// NewSender returns a sender that only logs when no SMTP host is configured.
func NewSender(cfg config.SMTPConfig) *Sender {
	s := &Sender{from: cfg.From}
	if cfg.Host != "" {
		s.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	}
	return s
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	subject, body, ok := render(event)
	if !ok {
		log.Debug().Str("type", event.Type).Msg("no email template for event")
		return nil
	}
	if event.Email == "" {
		log.Warn().Str("booking_id", event.BookingID).Msg("booking event without recipient")
		return nil
	}

	if s.dialer == nil {
		log.Info().Str("to", event.Email).Str("subject", subject).Msg("email (smtp disabled)")
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", event.Email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email for booking %s: %w", event.BookingID, err)
	}
	log.Info().Str("to", event.Email).Str("booking_id", event.BookingID).Msg("email sent")
	return nil
}

func render(event kafka.BookingEvent) (string, string, bool) {
	switch event.Type {
	case kafka.EventBookingCreated:
		return "Booking received",
			fmt.Sprintf("<p>Your booking %s for slot %s is awaiting payment of %d.</p>", event.BookingID, event.Slot, event.Amount), true
	case kafka.EventBookingPaid:
		return "Booking confirmed",
			fmt.Sprintf("<p>Payment of %d received. Booking %s for slot %s is confirmed.</p>", event.Amount, event.BookingID, event.Slot), true
	case kafka.EventBookingCancelled:
		return "Booking cancelled",
			fmt.Sprintf("<p>Booking %s for slot %s has been cancelled.</p>", event.BookingID, event.Slot), true
	}
	return "", "", false
}
