package ports

import (
	"context"
	"io"

	"github.com/academlist/seller-portal/internal/domain"
)

// Submitter delivers an accepted form to the receiving side.
type Submitter interface {
	// Submit blocks until the receiving side answers or ctx is done.
	// A result carrying FieldErrors is a rejection, not an error.
	Submit(ctx context.Context, req domain.SubmissionRequest) (domain.SubmissionResult, error)
}

// SubmissionRepository defines persistence operations for received papers.
type SubmissionRepository interface {
	CreateSubmission(ctx context.Context, s *domain.Submission) error
	GetSubmission(ctx context.Context, id int64) (*domain.Submission, error)
	ListSubmissions(ctx context.Context) ([]domain.Submission, error)
}

// Notifier receives user-facing notices. Delivery is fire-and-forget.
type Notifier interface {
	Notify(n domain.Notice)
}

// ReceiptGenerator renders a confirmation document for a recorded submission.
type ReceiptGenerator interface {
	Generate(s *domain.Submission, w io.Writer) error
}
