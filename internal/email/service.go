package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/hotelworks/hotel-api/internal/config"
)

// Service sends transactional mail. Delivery failures are reported to
// the caller; retry policy is the caller's concern.
type Service interface {
	SendPasswordReset(to, token string) error
	SendShiftAssigned(to, shiftName, date string) error
	SendBookingConfirmed(to, guestName, checkIn, checkOut string) error
}

type service struct {
	dialer *gomail.Dialer
	from   string
}

func NewService(cfg config.EmailConfig) Service {
	return &service{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *service) SendPasswordReset(to, token string) error {
	body := fmt.Sprintf(
		"A password reset was requested for your account.\n\nReset token: %s\n\nIf you did not request this, ignore this message.",
		token,
	)
	return s.send(to, "Password reset", body)
}

func (s *service) SendShiftAssigned(to, shiftName, date string) error {
	body := fmt.Sprintf("You have been assigned the %s shift on %s.", shiftName, date)
	return s.send(to, "New shift assignment", body)
}

func (s *service) SendBookingConfirmed(to, guestName, checkIn, checkOut string) error {
	body := fmt.Sprintf(
		"Dear %s,\n\nYour booking is confirmed.\nCheck-in: %s\nCheck-out: %s\n\nWe look forward to welcoming you.",
		guestName, checkIn, checkOut,
	)
	return s.send(to, "Booking confirmation", body)
}

func (s *service) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
