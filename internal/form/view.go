package form

import "github.com/academlist/seller-portal/internal/domain"

// View is an immutable copy of a form's state.
type View struct {
	Fields       domain.FormFields
	Errors       domain.ValidationErrors
	File         *domain.SelectedFile
	FileError    string
	DragActive   bool
	State        domain.SubmissionState
	SubmissionID int64 // last accepted submission, 0 if none or unrecorded
}

func (v View) Submitting() bool { return v.State == domain.StateSubmitting }

func (v View) Success() bool { return v.State == domain.StateSuccess }

// Error returns the message for field, or "".
func (v View) Error(field domain.Field) string { return v.Errors[field] }

// ShowFileError reports whether the inline file error should be visible:
// only while no file is selected.
func (v View) ShowFileError() bool { return v.FileError != "" && v.File == nil }
