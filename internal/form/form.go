// Package form holds the seller-submission form: its fields, inline errors,
// file selection and the Idle -> Submitting -> Success lifecycle.
//
// A Form is safe for concurrent use. Every transition happens under one
// mutex, except the submitter call itself, which runs unlocked while the
// form sits in StateSubmitting.
package form

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/academlist/seller-portal/internal/domain"
	"github.com/academlist/seller-portal/internal/ports"
)

var (
	// ErrSubmitInFlight is returned by Submit while a submission is running.
	ErrSubmitInFlight = errors.New("form: submission already in flight")
	// ErrClosed is returned once the form has been discarded.
	ErrClosed = errors.New("form: closed")
	// ErrUnknownField is returned by Edit for names outside domain.Fields.
	ErrUnknownField = errors.New("form: unknown field")
)

// Outcome reports how a Submit call ended.
type Outcome int

const (
	// OutcomeInvalid: field rules failed, errors populated.
	OutcomeInvalid Outcome = iota
	// OutcomeFileMissing: fields passed but no file was selected.
	OutcomeFileMissing
	// OutcomeRejected: the submitter returned per-field errors.
	OutcomeRejected
	// OutcomeFailed: the submitter returned an error.
	OutcomeFailed
	// OutcomeSubmitted: the form reached StateSuccess.
	OutcomeSubmitted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInvalid:
		return "invalid"
	case OutcomeFileMissing:
		return "file_missing"
	case OutcomeRejected:
		return "rejected"
	case OutcomeFailed:
		return "failed"
	case OutcomeSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Option configures a Form.
type Option func(*Form)

// WithClock replaces the runtime timer, mainly for tests.
func WithClock(c Clock) Option {
	return func(f *Form) { f.clock = c }
}

// WithSuccessDisplay sets how long StateSuccess lasts before the form
// returns to Idle on its own.
func WithSuccessDisplay(d time.Duration) Option {
	return func(f *Form) { f.successDisplay = d }
}

// WithLogger attaches a logger for transition tracing.
func WithLogger(l *zap.Logger) Option {
	return func(f *Form) { f.log = l }
}

// Form is one seller's submission form.
type Form struct {
	submitter ports.Submitter
	notifier  ports.Notifier

	clock          Clock
	successDisplay time.Duration
	log            *zap.Logger

	mu         sync.Mutex
	fields     domain.FormFields
	errs       domain.ValidationErrors
	file       *domain.SelectedFile
	fileErr    string
	dragActive bool
	state      domain.SubmissionState
	lastID     int64
	resetTimer Timer
	// successGen identifies the current success window so a stale auto-reset
	// callback cannot end a later one.
	successGen uint64
	closed     bool
}

// New returns a blank Idle form. notifier may be nil.
func New(submitter ports.Submitter, notifier ports.Notifier, opts ...Option) *Form {
	f := &Form{
		submitter:      submitter,
		notifier:       notifier,
		clock:          RealClock(),
		successDisplay: domain.DefaultSuccessDisplay,
		log:            zap.NewNop(),
		errs:           domain.ValidationErrors{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Edit sets a text field, or the terms checkbox for domain.FieldTerms, and
// drops that field's error.
func (f *Form) Edit(field domain.Field, value string) error {
	if field == domain.FieldTerms {
		f.SetTerms(domain.CheckboxChecked(value))
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	switch field {
	case domain.FieldName:
		f.fields.Name = value
	case domain.FieldEmail:
		f.fields.Email = value
	case domain.FieldTitle:
		f.fields.Title = value
	case domain.FieldSummary:
		f.fields.Summary = value
	default:
		return ErrUnknownField
	}
	f.errs = domain.ClearFieldError(f.errs, field)
	return nil
}

// SetTerms sets the terms checkbox and drops its error.
func (f *Form) SetTerms(accepted bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields.TermsAccepted = accepted
	f.errs = domain.ClearFieldError(f.errs, domain.FieldTerms)
}

// Apply copies every field of in that differs from the current value,
// clearing the error of each changed field.
func (f *Form) Apply(in domain.FormFields) {
	f.mu.Lock()
	defer f.mu.Unlock()
	set := func(field domain.Field, dst *string, v string) {
		if *dst != v {
			*dst = v
			f.errs = domain.ClearFieldError(f.errs, field)
		}
	}
	set(domain.FieldName, &f.fields.Name, in.Name)
	set(domain.FieldEmail, &f.fields.Email, in.Email)
	set(domain.FieldTitle, &f.fields.Title, in.Title)
	set(domain.FieldSummary, &f.fields.Summary, in.Summary)
	if f.fields.TermsAccepted != in.TermsAccepted {
		f.fields.TermsAccepted = in.TermsAccepted
		f.errs = domain.ClearFieldError(f.errs, domain.FieldTerms)
	}
}

// DragEnter highlights the drop zone.
func (f *Form) DragEnter() {
	f.mu.Lock()
	f.dragActive = true
	f.mu.Unlock()
}

// DragLeave removes the drop zone highlight.
func (f *Form) DragLeave() {
	f.mu.Lock()
	f.dragActive = false
	f.mu.Unlock()
}

// SelectFile runs a candidate through domain.ValidateFile. Picker and drop
// share this path; source only ends the drag highlight for drops.
func (f *Form) SelectFile(meta domain.FileMeta, source domain.FileSource) domain.FileDecision {
	d := domain.ValidateFile(meta)

	f.mu.Lock()
	defer f.mu.Unlock()
	if source == domain.SourceDrop {
		f.dragActive = false
	}
	if d.Accepted() {
		f.file = &domain.SelectedFile{Name: meta.Name, MediaType: meta.MediaType, Size: meta.Size}
		f.fileErr = ""
	} else {
		f.file = nil
		f.fileErr = d.Reason.Message()
	}
	f.log.Debug("file selected",
		zap.String("source", source.String()),
		zap.String("media_type", meta.MediaType),
		zap.Int64("size", meta.Size),
		zap.Stringer("reject", d.Reason))
	return d
}

// RemoveFile clears the selection.
func (f *Form) RemoveFile() {
	f.mu.Lock()
	f.file = nil
	f.mu.Unlock()
}

// Submit runs one submission attempt. Field rules are checked first, then
// the presence of a file, and only then is the submitter called. The call is
// not cancellable: ctx values are kept but its cancellation is dropped.
//
// The returned error is ErrSubmitInFlight or ErrClosed; every other failure
// is reported through the Outcome, the form's errors and a notice.
func (f *Form) Submit(ctx context.Context) (Outcome, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return OutcomeFailed, ErrClosed
	}
	if f.state == domain.StateSubmitting {
		f.mu.Unlock()
		return OutcomeFailed, ErrSubmitInFlight
	}
	f.errs = domain.ValidationErrors{}

	if errs := domain.ValidateFields(f.fields); len(errs) > 0 {
		f.errs = errs
		f.leaveSuccess()
		f.mu.Unlock()
		f.log.Debug("submit rejected by field rules", zap.Int("errors", len(errs)))
		f.notify(domain.FixFieldsNotice())
		return OutcomeInvalid, nil
	}
	if f.file == nil {
		f.fileErr = domain.MsgFileRequired
		f.leaveSuccess()
		f.mu.Unlock()
		f.log.Debug("submit rejected: no file")
		f.notify(domain.UnexpectedErrorNotice())
		return OutcomeFileMissing, nil
	}

	f.leaveSuccess()
	f.state = domain.StateSubmitting
	req := domain.SubmissionRequest{Fields: f.fields, File: *f.file}
	f.mu.Unlock()

	f.log.Debug("submitting", zap.String("file", req.File.Name))
	res, err := f.submitter.Submit(context.WithoutCancel(ctx), req)

	f.mu.Lock()
	f.state = domain.StateIdle
	switch {
	case err != nil:
		f.mu.Unlock()
		f.log.Warn("submission failed", zap.Error(err))
		f.notify(domain.UnexpectedErrorNotice())
		return OutcomeFailed, nil
	case len(res.FieldErrors) > 0:
		f.errs = res.FieldErrors.Clone()
		f.mu.Unlock()
		f.log.Debug("submission rejected by receiver", zap.Int("errors", len(res.FieldErrors)))
		f.notify(domain.FixFieldsNotice())
		return OutcomeRejected, nil
	}

	f.fields = domain.FormFields{}
	f.file = nil
	f.fileErr = ""
	f.lastID = res.ID
	if !f.closed {
		f.enterSuccess()
	}
	f.mu.Unlock()
	f.log.Debug("submission accepted", zap.Int64("id", res.ID))
	f.notify(domain.SubmittedNotice())
	return OutcomeSubmitted, nil
}

// Reset blanks the form: fields, file, file error, field errors and the
// success flag. An in-flight submission keeps running.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = domain.FormFields{}
	f.file = nil
	f.fileErr = ""
	f.errs = domain.ValidationErrors{}
	f.dragActive = false
	f.leaveSuccess()
}

// Close stops the auto-reset timer. Further submits return ErrClosed.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.leaveSuccess()
}

// Snapshot returns a copy of the current state for rendering.
func (f *Form) Snapshot() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := View{
		Fields:       f.fields,
		Errors:       f.errs.Clone(),
		FileError:    f.fileErr,
		DragActive:   f.dragActive,
		State:        f.state,
		SubmissionID: f.lastID,
	}
	if f.file != nil {
		file := *f.file
		v.File = &file
	}
	return v
}

// enterSuccess must be called with mu held.
func (f *Form) enterSuccess() {
	f.state = domain.StateSuccess
	f.successGen++
	gen := f.successGen
	f.resetTimer = f.clock.AfterFunc(f.successDisplay, func() { f.expireSuccess(gen) })
}

// leaveSuccess must be called with mu held. It leaves StateSubmitting alone.
func (f *Form) leaveSuccess() {
	if f.resetTimer != nil {
		f.resetTimer.Stop()
		f.resetTimer = nil
	}
	if f.state == domain.StateSuccess {
		f.state = domain.StateIdle
	}
	f.successGen++
}

func (f *Form) expireSuccess(gen uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.successGen || f.state != domain.StateSuccess {
		return
	}
	f.state = domain.StateIdle
	f.resetTimer = nil
	f.log.Debug("success window elapsed")
}

func (f *Form) notify(n domain.Notice) {
	if f.notifier != nil {
		f.notifier.Notify(n)
	}
}
