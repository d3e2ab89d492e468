package domain

import "time"

const (
	// MaxFileSize is the largest accepted upload, inclusive.
	MaxFileSize int64 = 20 * 1024 * 1024

	// AcceptHint is the suffix filter handed to the browser's file picker.
	// It is a hint only; ValidateFile decides on the declared media type.
	AcceptHint = ".pdf,.doc,.docx,.ppt,.pptx"

	// DefaultSubmitDelay stands in for the network round trip of a submission.
	DefaultSubmitDelay = 1500 * time.Millisecond

	// DefaultSuccessDisplay is how long the success panel stays up before the
	// form returns to its blank presentation on its own.
	DefaultSuccessDisplay = 5 * time.Second
)

// Accepted upload media types: PDF, Word (97-2003 and OOXML) and PowerPoint
// (97-2003 and OOXML). Matching is exact.
const (
	MediaTypePDF  = "application/pdf"
	MediaTypeDOC  = "application/msword"
	MediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MediaTypePPT  = "application/vnd.ms-powerpoint"
	MediaTypePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

// AcceptedMediaTypes returns the upload media types in display order.
func AcceptedMediaTypes() []string {
	return []string{MediaTypePDF, MediaTypeDOC, MediaTypeDOCX, MediaTypePPT, MediaTypePPTX}
}

// Field names a form input. The string value is the input's HTML name and
// the key used in ValidationErrors.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldTitle   Field = "title"
	FieldSummary Field = "summary"
	FieldTerms   Field = "terms"
)

// Fields lists the validated inputs in the order they appear on the page.
func Fields() []Field {
	return []Field{FieldName, FieldEmail, FieldTitle, FieldSummary, FieldTerms}
}

// ParseField maps an input name to its Field.
func ParseField(s string) (Field, bool) {
	for _, f := range Fields() {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// FormFields is the seller's input, owned by one form instance.
type FormFields struct {
	Name          string
	Email         string
	Title         string
	Summary       string
	TermsAccepted bool
}

// ValidationErrors maps a field to its message. A key is present only while
// the field fails its rule.
type ValidationErrors map[Field]string

// Has reports whether f currently has an error.
func (v ValidationErrors) Has(f Field) bool {
	_, ok := v[f]
	return ok
}

// Clone returns an independent copy; nil stays nil.
func (v ValidationErrors) Clone() ValidationErrors {
	if v == nil {
		return nil
	}
	out := make(ValidationErrors, len(v))
	for k, msg := range v {
		out[k] = msg
	}
	return out
}

// FileMeta is everything inspected about an upload. The bytes themselves are
// never read or kept.
type FileMeta struct {
	Name      string
	MediaType string
	Size      int64
}

// FileSource says which widget produced a file. It never affects the
// acceptance decision.
type FileSource int

const (
	SourcePicker FileSource = iota
	SourceDrop
)

func (s FileSource) String() string {
	switch s {
	case SourceDrop:
		return "drop"
	default:
		return "picker"
	}
}

// ParseFileSource maps the form value "drop" to SourceDrop and anything else
// to SourcePicker.
func ParseFileSource(s string) FileSource {
	if s == "drop" {
		return SourceDrop
	}
	return SourcePicker
}

// SelectedFile is the visible selection once a file passed validation.
type SelectedFile struct {
	Name      string
	MediaType string
	Size      int64
}

// SubmissionState is the lifecycle of one submission attempt.
type SubmissionState int

const (
	StateIdle SubmissionState = iota
	StateSubmitting
	StateSuccess
)

func (s SubmissionState) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	default:
		return "idle"
	}
}

// NoticeKind selects the toast styling.
type NoticeKind string

const (
	NoticeSuccess     NoticeKind = "default"
	NoticeDestructive NoticeKind = "destructive"
)

// Notice is a fire-and-forget toast.
type Notice struct {
	Kind        NoticeKind
	Title       string
	Description string
}

// SubmissionRequest is what a submitter receives: the fields plus a reference
// to the selected file.
type SubmissionRequest struct {
	Fields FormFields
	File   SelectedFile
}

// SubmissionResult is a submitter's answer. A non-empty FieldErrors means the
// receiving side rejected specific fields.
type SubmissionResult struct {
	ID          int64
	FieldErrors ValidationErrors
}

// Submission is an accepted, recorded submission.
type Submission struct {
	ID        int64
	Fields    FormFields
	File      SelectedFile
	CreatedAt time.Time
}

// CheckboxChecked interprets a posted checkbox value. Browsers omit unchecked
// boxes, so "" means false.
func CheckboxChecked(v string) bool {
	switch v {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}
