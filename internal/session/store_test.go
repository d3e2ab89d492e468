package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/academlist/seller-portal/internal/domain"
	"github.com/academlist/seller-portal/internal/form"
	"github.com/academlist/seller-portal/internal/ports"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type okSubmitter struct{}

func (okSubmitter) Submit(context.Context, domain.SubmissionRequest) (domain.SubmissionResult, error) {
	return domain.SubmissionResult{}, nil
}

func newTestStore(ttl time.Duration) (*Store, *time.Time) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	s := NewStore(func(n ports.Notifier) *form.Form {
		return form.New(okSubmitter{}, n)
	}, ttl, nil)
	s.now = func() time.Time { return now }
	return s, &now
}

func TestLoad_SetsCookieOnce(t *testing.T) {
	s, _ := newTestStore(time.Minute)

	rec := httptest.NewRecorder()
	sess := s.Load(rec, httptest.NewRequest(http.MethodGet, "/sell", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, sess.ID, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/sell", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	again := s.Load(rec, req)
	assert.Same(t, sess, again)
	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, 1, s.Len())
}

func TestLoad_UnknownCookieStartsFresh(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	req := httptest.NewRequest(http.MethodGet, "/sell", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "stale"})
	rec := httptest.NewRecorder()

	sess := s.Load(rec, req)
	assert.NotEqual(t, "stale", sess.ID)
	assert.Len(t, rec.Result().Cookies(), 1)
}

func TestNotifierFeedsSessionToasts(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	sess := s.Create()
	_, err := sess.Form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Notice{domain.FixFieldsNotice()}, sess.Toasts.Drain())
}

func TestSweep_ExpiresIdleSessions(t *testing.T) {
	s, now := newTestStore(time.Minute)
	old := s.Create()
	*now = now.Add(45 * time.Second)
	fresh := s.Create()
	*now = now.Add(30 * time.Second)

	assert.Equal(t, 1, s.Sweep())
	_, ok := s.Get(old.ID)
	assert.False(t, ok)
	_, ok = s.Get(fresh.ID)
	assert.True(t, ok)

	_, err := old.Form.Submit(context.Background())
	assert.ErrorIs(t, err, form.ErrClosed, "expired forms are closed")
}

func TestGet_RefreshesExpiry(t *testing.T) {
	s, now := newTestStore(time.Minute)
	sess := s.Create()
	*now = now.Add(50 * time.Second)
	_, ok := s.Get(sess.ID)
	require.True(t, ok)
	*now = now.Add(50 * time.Second)
	assert.Zero(t, s.Sweep())
}

func TestRun_ClosesOnCancel(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	sess := s.Create()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	cancel()
	<-done

	assert.Zero(t, s.Len())
	_, err := sess.Form.Submit(context.Background())
	assert.ErrorIs(t, err, form.ErrClosed)
}
