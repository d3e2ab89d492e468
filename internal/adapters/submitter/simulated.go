// Package submitter delivers accepted forms. There is no remote receiver yet:
// Simulated waits out a fixed latency and optionally records the submission.
package submitter

import (
	"context"
	"fmt"
	"html"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/academlist/seller-portal/internal/domain"
	"github.com/academlist/seller-portal/internal/ports"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Simulated stands in for the network round trip of a real submission.
type Simulated struct {
	delay time.Duration
	repo  ports.SubmissionRepository
	log   *zap.Logger
}

// NewSimulated returns a submitter that answers after delay. repo may be nil,
// in which case nothing is recorded and results carry no ID.
func NewSimulated(delay time.Duration, repo ports.SubmissionRepository, log *zap.Logger) *Simulated {
	if log == nil {
		log = zap.NewNop()
	}
	return &Simulated{delay: delay, repo: repo, log: log}
}

func (s *Simulated) Submit(ctx context.Context, req domain.SubmissionRequest) (domain.SubmissionResult, error) {
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return domain.SubmissionResult{}, ctx.Err()
	case <-t.C:
	}

	if s.repo == nil {
		return domain.SubmissionResult{}, nil
	}
	sub := &domain.Submission{
		Fields: domain.FormFields{
			Name:          s.clean("name", req.Fields.Name),
			Email:         strings.TrimSpace(req.Fields.Email),
			Title:         s.clean("title", req.Fields.Title),
			Summary:       s.clean("summary", req.Fields.Summary),
			TermsAccepted: req.Fields.TermsAccepted,
		},
		File: domain.SelectedFile{
			Name:      s.clean("file_name", req.File.Name),
			MediaType: req.File.MediaType,
			Size:      req.File.Size,
		},
	}
	if err := s.repo.CreateSubmission(ctx, sub); err != nil {
		return domain.SubmissionResult{}, fmt.Errorf("record submission: %w", err)
	}
	s.log.Info("submission recorded",
		zap.Int64("id", sub.ID),
		zap.String("file", sub.File.Name),
		zap.Int64("size", sub.File.Size))
	return domain.SubmissionResult{ID: sub.ID}, nil
}

// clean returns the text recorded for one input. Anything the sanitizer
// removes beyond surrounding space is logged, since the ledger row then
// differs from what the seller typed.
func (s *Simulated) clean(field, raw string) string {
	out := plainText(raw)
	if out != strings.TrimSpace(raw) {
		s.log.Warn("markup removed from seller input",
			zap.String("field", field),
			zap.Int("typed_len", len(raw)),
			zap.Int("recorded_len", len(out)))
	}
	return out
}

// plainText strips any markup from seller input and leaves unescaped text.
func plainText(raw string) string {
	return strings.TrimSpace(html.UnescapeString(textSanitizer().Sanitize(raw)))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
