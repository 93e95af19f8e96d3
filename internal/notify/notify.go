// Package notify доставляет короткие текстовые уведомления профилям
// по каналам, которые у них настроены.
package notify

import (
	"context"
	"errors"

	"github.com/Freeeeeet/mentorship_api/internal/model"
)

// ErrNoChannel is returned when the recipient has no address for the channel
var ErrNoChannel = errors.New("recipient has no contact for channel")

// Message текст уведомления, Subject используется как заголовок
type Message struct {
	Subject string
	Text    string
}

type Notifier interface {
	Notify(ctx context.Context, recipient *model.Profile, msg Message) error
}

// Nop отбрасывает все сообщения
type Nop struct{}

func (Nop) Notify(context.Context, *model.Profile, Message) error { return nil }

// Multi отправляет через все каналы. Каналы без контакта получателя пропускаются,
// остальные ошибки объединяются. Если ни один канал не подошёл, возвращается ErrNoChannel.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, recipient *model.Profile, msg Message) error {
	var (
		errs    []error
		skipped int
	)
	for _, n := range m {
		err := n.Notify(ctx, recipient, msg)
		switch {
		case err == nil:
		case errors.Is(err, ErrNoChannel):
			skipped++
		default:
			errs = append(errs, err)
		}
	}

	if skipped == len(m) {
		return ErrNoChannel
	}
	return errors.Join(errs...)
}
