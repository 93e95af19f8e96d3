package notify

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/mentorship_api/internal/model"
	"gopkg.in/gomail.v2"
)

// MailSender реализует *gomail.Dialer
type MailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Email отправляет письмо на адрес профиля
type Email struct {
	sender MailSender
	from   string
}

func NewEmail(sender MailSender, from string) *Email {
	return &Email{sender: sender, from: from}
}

// NewSMTPEmail создаёт Email поверх SMTP
func NewSMTPEmail(host string, port int, username, password, from string) *Email {
	return NewEmail(gomail.NewDialer(host, port, username, password), from)
}

func (e *Email) Notify(ctx context.Context, recipient *model.Profile, msg Message) error {
	if recipient.Email == nil || *recipient.Email == "" {
		return ErrNoChannel
	}

	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetAddressHeader("To", *recipient.Email, recipient.DisplayName())
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)

	// DialAndSend без контекста, ждём результат или отмену ctx
	done := make(chan error, 1)
	go func() {
		done <- e.sender.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send email: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
