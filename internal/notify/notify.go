// Package notify collects toasts raised by a form until the next page render.
package notify

import (
	"sync"

	"go.uber.org/zap"

	"github.com/academlist/seller-portal/internal/domain"
	"github.com/academlist/seller-portal/internal/ports"
)

// maxPending bounds a queue nobody drains; the oldest toasts are dropped.
const maxPending = 8

// Queue is an in-memory Notifier drained by the renderer.
type Queue struct {
	mu      sync.Mutex
	pending []domain.Notice
}

// Notify appends n.
func (q *Queue) Notify(n domain.Notice) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, n)
	if len(q.pending) > maxPending {
		q.pending = q.pending[len(q.pending)-maxPending:]
	}
}

// Drain returns and forgets every pending notice, oldest first.
func (q *Queue) Drain() []domain.Notice {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

// Logged wraps next so every notice is also written to log.
func Logged(next ports.Notifier, log *zap.Logger) ports.Notifier {
	return loggedNotifier{next: next, log: log}
}

type loggedNotifier struct {
	next ports.Notifier
	log  *zap.Logger
}

func (l loggedNotifier) Notify(n domain.Notice) {
	l.log.Info("notice", zap.String("kind", string(n.Kind)), zap.String("title", n.Title))
	l.next.Notify(n)
}
