package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	sqliteadapter "github.com/academlist/seller-portal/internal/adapters/sqlite"
	"github.com/academlist/seller-portal/internal/domain"
	"github.com/academlist/seller-portal/internal/form"
	"github.com/academlist/seller-portal/internal/ports"
	"github.com/academlist/seller-portal/internal/session"
	"github.com/academlist/seller-portal/internal/templates"
)

// Upload bodies are read in two budgets: the file part up to one byte past
// domain.MaxFileSize, and every other part together up to fieldBudget.
// framingSlack covers boundaries and part headers.
const (
	fieldBudget  = 4 << 20
	framingSlack = 64 << 10
)

// errUploadTooLarge means the parts around the file, not the file itself,
// went past their budget. No decision is made about the file.
var errUploadTooLarge = errors.New("upload: form fields too large")

// resetSlack keeps the success panel's refresh from racing the server-side
// auto-reset timer.
const resetSlack = 250 * time.Millisecond

// Config wires a Handler.
type Config struct {
	Sessions *session.Store
	// Repo and Receipts together enable receipt downloads; either may be nil.
	Repo           ports.SubmissionRepository
	Receipts       ports.ReceiptGenerator
	SuccessDisplay time.Duration
	Log            *zap.Logger
}

type Handler struct {
	sessions   *session.Store
	repo       ports.SubmissionRepository
	receipts   ports.ReceiptGenerator
	resetAfter time.Duration
	log        *zap.Logger
}

func New(cfg Config) *Handler {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	display := cfg.SuccessDisplay
	if display <= 0 {
		display = domain.DefaultSuccessDisplay
	}
	return &Handler{
		sessions:   cfg.Sessions,
		repo:       cfg.Repo,
		receipts:   cfg.Receipts,
		resetAfter: display + resetSlack,
		log:        log,
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(h.log))
	r.Use(middleware.Recoverer)

	r.Get("/", h.index)
	r.Get("/healthz", h.healthz)
	r.Route("/sell", func(r chi.Router) {
		r.Get("/", h.sellPage)
		r.Get("/form", h.sellForm)
		r.Post("/fields/{field}", h.editField)
		r.Post("/drag/{state}", h.drag)
		r.Post("/file", h.selectFile)
		r.Delete("/file", h.removeFile)
		r.Post("/submit", h.submit)
		r.Post("/reset", h.reset)
		r.Get("/receipts/{id}", h.receipt)
	})
	r.NotFound(h.notFound)
	return r
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	render(w, r, templates.Home())
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "ok sessions=%d\n", h.sessions.Len())
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := templates.NotFound(r.URL.Path).Render(r.Context(), w); err != nil {
		h.log.Error("render not found page", zap.Error(err))
	}
}

func (h *Handler) sellPage(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(w, r)
	render(w, r, templates.Sell(h.sellData(sess)))
}

func (h *Handler) sellForm(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(w, r)
	render(w, r, templates.SellForm(h.sellData(sess)))
}

// editField records one input's new value and answers with its (now empty)
// inline error element.
func (h *Handler) editField(w http.ResponseWriter, r *http.Request) {
	field, ok := domain.ParseField(chi.URLParam(r, "field"))
	if !ok {
		http.Error(w, "unknown field", http.StatusNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess := h.sessions.Load(w, r)
	if err := sess.Form.Edit(field, r.FormValue(string(field))); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	render(w, r, templates.FieldError(field, sess.Form.Snapshot().Error(field)))
}

func (h *Handler) drag(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(w, r)
	switch chi.URLParam(r, "state") {
	case "enter":
		sess.Form.DragEnter()
	case "leave":
		sess.Form.DragLeave()
	default:
		http.Error(w, "unknown drag state", http.StatusNotFound)
		return
	}
	render(w, r, templates.Upload(h.sellData(sess)))
}

// selectFile inspects the "file" part of a multipart body. Only its name,
// declared type and length are kept; the bytes are discarded as they are
// counted, and counting stops one byte past the size limit.
func (h *Handler) selectFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxFileSize+1+fieldBudget+framingSlack)
	sess := h.sessions.Load(w, r)
	source := domain.ParseFileSource(r.URL.Query().Get("source"))

	meta, found, err := readUpload(r)
	if errors.Is(err, errUploadTooLarge) {
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if found {
		d := sess.Form.SelectFile(meta, source)
		h.log.Debug("upload inspected",
			zap.String("session", sess.ID),
			zap.Stringer("source", source),
			zap.Bool("accepted", d.Accepted()))
	} else if source == domain.SourceDrop {
		sess.Form.DragLeave()
	}
	render(w, r, templates.Upload(h.sellData(sess)))
}

func (h *Handler) removeFile(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(w, r)
	sess.Form.RemoveFile()
	render(w, r, templates.Upload(h.sellData(sess)))
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess := h.sessions.Load(w, r)
	sess.Form.Apply(domain.FormFields{
		Name:          r.FormValue(string(domain.FieldName)),
		Email:         r.FormValue(string(domain.FieldEmail)),
		Title:         r.FormValue(string(domain.FieldTitle)),
		Summary:       r.FormValue(string(domain.FieldSummary)),
		TermsAccepted: domain.CheckboxChecked(r.FormValue(string(domain.FieldTerms))),
	})

	outcome, err := sess.Form.Submit(r.Context())
	switch {
	case errors.Is(err, form.ErrSubmitInFlight):
		h.log.Debug("duplicate submit ignored", zap.String("session", sess.ID))
	case errors.Is(err, form.ErrClosed):
		http.Error(w, "session closed", http.StatusServiceUnavailable)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	default:
		h.log.Info("submit", zap.String("session", sess.ID), zap.Stringer("outcome", outcome))
	}
	render(w, r, templates.SellForm(h.sellData(sess)))
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(w, r)
	sess.Form.Reset()
	render(w, r, templates.SellForm(h.sellData(sess)))
}

// receipt serves the PDF confirmation for the session's latest submission.
// Other IDs are reported as missing.
func (h *Handler) receipt(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	sess := h.sessions.Load(w, r)
	if !h.receiptsEnabled() || id == 0 || sess.Form.Snapshot().SubmissionID != id {
		h.notFound(w, r)
		return
	}
	s, err := h.repo.GetSubmission(r.Context(), id)
	if errors.Is(err, sqliteadapter.ErrNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := h.receipts.Generate(s, &buf); err != nil {
		h.log.Error("generate receipt", zap.Int64("id", id), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	filename := fmt.Sprintf("academlist_receipt_%d_%s.pdf", s.ID, s.CreatedAt.Format("20060102"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write(buf.Bytes())
}

func (h *Handler) receiptsEnabled() bool {
	return h.repo != nil && h.receipts != nil
}

// sellData drains the session's pending toasts, so each notice is shown by
// exactly one response.
func (h *Handler) sellData(sess *session.Session) templates.SellData {
	return templates.SellData{
		View:            sess.Form.Snapshot(),
		Notices:         sess.Toasts.Drain(),
		ResetAfter:      h.resetAfter,
		ReceiptsEnabled: h.receiptsEnabled(),
	}
}

// readUpload finds the "file" part. found is false when the body has no
// file part or the part names no file. Parts before the file are discarded
// against fieldBudget, so they never count toward the file's size.
func readUpload(r *http.Request) (meta domain.FileMeta, found bool, err error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return domain.FileMeta{}, false, err
	}
	budget := int64(fieldBudget)
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return domain.FileMeta{}, false, nil
		}
		if err != nil {
			return domain.FileMeta{}, false, uploadErr(err)
		}
		if part.FormName() != "file" {
			n, err := io.Copy(io.Discard, io.LimitReader(part, budget+1))
			if err != nil {
				return domain.FileMeta{}, false, uploadErr(err)
			}
			if budget -= n; budget < 0 {
				return domain.FileMeta{}, false, errUploadTooLarge
			}
			continue
		}
		if part.FileName() == "" {
			return domain.FileMeta{}, false, nil
		}
		meta = domain.FileMeta{
			Name:      part.FileName(),
			MediaType: part.Header.Get("Content-Type"),
		}
		n, err := io.Copy(io.Discard, io.LimitReader(part, domain.MaxFileSize+1))
		if err != nil {
			return domain.FileMeta{}, false, uploadErr(err)
		}
		meta.Size = n
		return meta, true, nil
	}
}

// uploadErr reports a body cut off by the request limit as errUploadTooLarge.
// The file part stops reading one byte past the limit, so only surrounding
// parts and framing can reach it.
func uploadErr(err error) error {
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		return errUploadTooLarge
	}
	return err
}

// render writes a templ component to the response.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), 500)
	}
}
