package business

import (
	"fmt"
	"sync"
	"time"

	"github.com/openrelay/service-filerelay/service/types"
)

// keyLock enforces at-most-one-in-flight retrieval per (user, file key)
// pair, absorbing double-tapped retry buttons. Entries expire so an
// abandoned request can never wedge a key.
type keyLock struct {
	mu   sync.Mutex
	held map[string]time.Time
	ttl  time.Duration
}

func newKeyLock(ttl time.Duration) *keyLock {
	return &keyLock{
		held: make(map[string]time.Time),
		ttl:  ttl,
	}
}

func lockName(user types.UserID, key types.FileKey) string {
	return fmt.Sprintf("%d/%s", int64(user), string(key))
}

func (l *keyLock) TryAcquire(user types.UserID, key types.FileKey) bool {
	name := lockName(user, key)
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if acquiredAt, ok := l.held[name]; ok && now.Sub(acquiredAt) < l.ttl {
		return false
	}
	l.held[name] = now
	return true
}

func (l *keyLock) Release(user types.UserID, key types.FileKey) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, lockName(user, key))
}
