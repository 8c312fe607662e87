package lock

import (
	"context"
	"sync"
	"time"
)

// ReleaseFunc libera um lock adquirido. Liberar um lock já expirado não é erro.
type ReleaseFunc func(ctx context.Context) error

// Locker coordena a rotação de tokens de uma mesma conta entre requisições.
// acquired=false significa que outro processo detém o lock; não é um erro.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release ReleaseFunc, acquired bool, err error)
}

// LocalLocker é usado quando não há Redis configurado. Só coordena goroutines do mesmo processo.
type LocalLocker struct {
	mu     sync.Mutex
	seq    uint64
	leases map[string]lease
	now    func() time.Time
}

type lease struct {
	id        uint64
	expiresAt time.Time
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{
		leases: make(map[string]lease),
		now:    time.Now,
	}
}

func (l *LocalLocker) Acquire(_ context.Context, key string, ttl time.Duration) (ReleaseFunc, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if current, ok := l.leases[key]; ok && now.Before(current.expiresAt) {
		return nil, false, nil
	}

	l.seq++
	held := lease{id: l.seq, expiresAt: now.Add(ttl)}
	l.leases[key] = held

	release := func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()

		// Só remove se o lease ainda for o nosso
		if current, ok := l.leases[key]; ok && current.id == held.id {
			delete(l.leases, key)
		}
		return nil
	}

	return release, true, nil
}
