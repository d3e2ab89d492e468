package domain

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf16"
)

const (
	minNameLen    = 2
	minTitleLen   = 5
	minSummaryLen = 20
)

// emailPattern accepts a dotted local part and at least one domain label
// followed by an alphabetic TLD. Leading dots and ".." are rejected
// separately since RE2 has no lookahead.
var emailPattern = regexp.MustCompile(`(?i)^[a-z0-9_'+\-.]*[a-z0-9_+\-]@([a-z0-9][a-z0-9\-]*\.)+[a-z]{2,}$`)

// ValidateFields checks f against the field rules and returns one message
// per failing field. The result is empty, never nil, when everything passes.
func ValidateFields(f FormFields) ValidationErrors {
	errs := ValidationErrors{}
	if textLen(f.Name) < minNameLen {
		errs[FieldName] = MsgNameTooShort
	}
	if !ValidEmail(f.Email) {
		errs[FieldEmail] = MsgEmailInvalid
	}
	if textLen(f.Title) < minTitleLen {
		errs[FieldTitle] = MsgTitleTooShort
	}
	if textLen(f.Summary) < minSummaryLen {
		errs[FieldSummary] = MsgSummaryTooShort
	}
	if !f.TermsAccepted {
		errs[FieldTerms] = MsgTermsRequired
	}
	return errs
}

// ValidEmail reports whether s is syntactically an email address.
func ValidEmail(s string) bool {
	if strings.HasPrefix(s, ".") || strings.Contains(s, "..") {
		return false
	}
	return emailPattern.MatchString(s)
}

// ClearFieldError returns errs without an entry for f. errs is not modified.
func ClearFieldError(errs ValidationErrors, f Field) ValidationErrors {
	if !errs.Has(f) {
		return errs
	}
	out := errs.Clone()
	delete(out, f)
	return out
}

// textLen counts the UTF-16 code units of s as typed, so a base letter plus
// a combining mark is two and an astral emoji is two.
func textLen(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// RejectReason says why a file was refused.
type RejectReason int

const (
	RejectNone RejectReason = iota
	RejectUnsupportedType
	RejectTooLarge
)

// Message is the inline error shown in the upload widget.
func (r RejectReason) Message() string {
	switch r {
	case RejectUnsupportedType:
		return MsgFileUnsupported
	case RejectTooLarge:
		return MsgFileTooLarge
	default:
		return ""
	}
}

func (r RejectReason) String() string {
	switch r {
	case RejectUnsupportedType:
		return "unsupported file type"
	case RejectTooLarge:
		return "exceeds size limit"
	default:
		return "none"
	}
}

// FileDecision is the outcome of ValidateFile.
type FileDecision struct {
	Reason RejectReason
}

// Accepted reports whether the file may be selected.
func (d FileDecision) Accepted() bool { return d.Reason == RejectNone }

// ValidateFile decides on a candidate upload from its declared media type and
// size. The type is checked first, so an unsupported type is reported as such
// whatever its size.
func ValidateFile(m FileMeta) FileDecision {
	if !slices.Contains(AcceptedMediaTypes(), m.MediaType) {
		return FileDecision{Reason: RejectUnsupportedType}
	}
	if m.Size > MaxFileSize {
		return FileDecision{Reason: RejectTooLarge}
	}
	return FileDecision{}
}
