// Package lock сериализует проверку и запись, которые занимают несколько запросов
package lock

import (
	"context"
	"errors"
	"time"
)

// ErrNotAcquired is returned when the lock could not be taken before ctx ended
var ErrNotAcquired = errors.New("lock not acquired")

// Locker выдаёт эксклюзивные блокировки по ключу. Возвращённая функция снимает блокировку.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

const (
	defaultTTL   = 10 * time.Second
	defaultRetry = 25 * time.Millisecond
)
