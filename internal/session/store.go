// Package session keeps one submission form per browser, keyed by a cookie.
package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/academlist/seller-portal/internal/form"
	"github.com/academlist/seller-portal/internal/notify"
	"github.com/academlist/seller-portal/internal/ports"
)

// CookieName carries the session ID.
const CookieName = "academlist_sell"

// DefaultTTL is how long an untouched session lives.
const DefaultTTL = 30 * time.Minute

// Session is one browser's form and its pending toasts.
type Session struct {
	ID     string
	Form   *form.Form
	Toasts *notify.Queue

	lastSeen time.Time
}

// FormFactory builds the form for a new session around its notifier.
type FormFactory func(n ports.Notifier) *form.Form

// Store is an in-memory session table.
type Store struct {
	newForm FormFactory
	ttl     time.Duration
	log     *zap.Logger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore returns an empty store. ttl <= 0 selects DefaultTTL.
func NewStore(newForm FormFactory, ttl time.Duration, log *zap.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		newForm:  newForm,
		ttl:      ttl,
		log:      log,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Get returns the live session id, refreshing its expiry.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if ok {
		sess.lastSeen = s.now()
	}
	return sess, ok
}

// Create starts a session with a blank form.
func (s *Store) Create() *Session {
	q := &notify.Queue{}
	sess := &Session{
		ID:     uuid.NewString(),
		Toasts: q,
	}
	sess.Form = s.newForm(notify.Logged(q, s.log.With(zap.String("session", sess.ID))))

	s.mu.Lock()
	sess.lastSeen = s.now()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Load returns the session named by r's cookie, creating one (and setting
// the cookie on w) when it is missing or expired.
func (s *Store) Load(w http.ResponseWriter, r *http.Request) *Session {
	if c, err := r.Cookie(CookieName); err == nil {
		if sess, ok := s.Get(c.Value); ok {
			return sess
		}
	}
	sess := s.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep discards sessions idle for longer than the TTL and closes their forms.
func (s *Store) Sweep() int {
	cutoff := s.now().Add(-s.ttl)
	var expired []*Session

	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.Form.Close()
	}
	if len(expired) > 0 {
		s.log.Debug("sessions expired", zap.Int("count", len(expired)))
	}
	return len(expired)
}

// Run sweeps every half TTL until ctx is done, then closes every form.
func (s *Store) Run(ctx context.Context) {
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.closeAll()
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Store) closeAll() {
	s.mu.Lock()
	all := s.sessions
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()
	for _, sess := range all {
		sess.Form.Close()
	}
}
