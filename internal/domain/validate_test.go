package domain_test

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/academlist/seller-portal/internal/domain"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validFields() domain.FormFields {
	return domain.FormFields{
		Name:          "Dana Cohen",
		Email:         "dana@example.com",
		Title:         "A Sufficiently Long Title",
		Summary:       "An abstract that is comfortably over twenty characters.",
		TermsAccepted: true,
	}
}

func properties(t *testing.T) *gopter.Properties {
	t.Helper()
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1357)
	parameters.MinSuccessfulTests = 200
	return gopter.NewProperties(parameters)
}

func hebrewString() gopter.Gen {
	return gen.SliceOf(gen.RuneRange('א', 'ת')).Map(func(rs []rune) string { return string(rs) })
}

// ---------------------------------------------------------------------------
// Field validator
// ---------------------------------------------------------------------------

func TestValidateFields_AllValid(t *testing.T) {
	errs := domain.ValidateFields(validFields())
	require.NotNil(t, errs)
	assert.Empty(t, errs)
}

func TestValidateFields_AllInvalid(t *testing.T) {
	errs := domain.ValidateFields(domain.FormFields{
		Name:    "Y",
		Email:   "bad",
		Title:   "Hi",
		Summary: "short",
	})
	assert.Equal(t, domain.ValidationErrors{
		domain.FieldName:    domain.MsgNameTooShort,
		domain.FieldEmail:   domain.MsgEmailInvalid,
		domain.FieldTitle:   domain.MsgTitleTooShort,
		domain.FieldSummary: domain.MsgSummaryTooShort,
		domain.FieldTerms:   domain.MsgTermsRequired,
	}, errs)
}

func TestValidateFields_Boundaries(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*domain.FormFields)
		field domain.Field
		fails bool
	}{
		{"name 1 char", func(f *domain.FormFields) { f.Name = "D" }, domain.FieldName, true},
		{"name 2 chars", func(f *domain.FormFields) { f.Name = "Yo" }, domain.FieldName, false},
		{"name 2 hebrew chars", func(f *domain.FormFields) { f.Name = "דן" }, domain.FieldName, false},
		{"name empty", func(f *domain.FormFields) { f.Name = "" }, domain.FieldName, true},
		{"title 4 chars", func(f *domain.FormFields) { f.Title = "Abcd" }, domain.FieldTitle, true},
		{"title 5 chars", func(f *domain.FormFields) { f.Title = "Abcde" }, domain.FieldTitle, false},
		{"summary 19 chars", func(f *domain.FormFields) { f.Summary = strings.Repeat("x", 19) }, domain.FieldSummary, true},
		{"summary 20 chars", func(f *domain.FormFields) { f.Summary = strings.Repeat("x", 20) }, domain.FieldSummary, false},
		{"summary spaces count", func(f *domain.FormFields) { f.Summary = strings.Repeat(" ", 20) }, domain.FieldSummary, false},
		{"terms unset", func(f *domain.FormFields) { f.TermsAccepted = false }, domain.FieldTerms, true},
		{"decomposed accent counts two units", func(f *domain.FormFields) { f.Name = "e\u0301" }, domain.FieldName, false},
		{"precomposed accent counts one unit", func(f *domain.FormFields) { f.Name = "\u00e9" }, domain.FieldName, true},
		{"astral emoji counts two units", func(f *domain.FormFields) { f.Name = "\U0001F600" }, domain.FieldName, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := validFields()
			tc.edit(&f)
			errs := domain.ValidateFields(f)
			assert.Equal(t, tc.fails, errs.Has(tc.field))
			if !tc.fails {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{
		"a@b.com",
		"dana@example.com",
		"first.last+tag@sub.example.co.il",
		"o'brien_x@mail.org",
		"UPPER@EXAMPLE.COM",
	}
	invalid := []string{
		"",
		"bad",
		"a@b",
		"a@b.c",
		"@example.com",
		".dana@example.com",
		"da..na@example.com",
		"dana.@example.com",
		"dana@-example.com",
		"dana@example..com",
		"dana@example.c0m",
		"dana example@example.com",
		"דנה@example.com",
	}
	for _, s := range valid {
		assert.True(t, domain.ValidEmail(s), s)
	}
	for _, s := range invalid {
		assert.False(t, domain.ValidEmail(s), s)
	}
}

func TestValidateFields_Properties(t *testing.T) {
	props := properties(t)

	props.Property("ascii names fail exactly below two characters", prop.ForAll(
		func(s string) bool {
			f := validFields()
			f.Name = s
			return domain.ValidateFields(f).Has(domain.FieldName) == (len(s) < 2)
		},
		gen.AlphaString(),
	))

	props.Property("hebrew names fail exactly below two characters", prop.ForAll(
		func(s string) bool {
			f := validFields()
			f.Name = s
			return domain.ValidateFields(f).Has(domain.FieldName) == (len([]rune(s)) < 2)
		},
		hebrewString(),
	))

	props.Property("summaries fail exactly below twenty characters", prop.ForAll(
		func(s string) bool {
			f := validFields()
			f.Summary = s
			return domain.ValidateFields(f).Has(domain.FieldSummary) == (len(s) < 20)
		},
		gen.AlphaString(),
	))

	props.Property("strings without an at sign are never emails", prop.ForAll(
		func(s string) bool {
			return !domain.ValidEmail(s)
		},
		gen.AnyString().SuchThat(func(s string) bool { return !strings.Contains(s, "@") }),
	))

	props.Property("errors only name failing fields", prop.ForAll(
		func(name, title string, terms bool) bool {
			f := domain.FormFields{Name: name, Email: "a@b.com", Title: title, Summary: strings.Repeat("s", 25), TermsAccepted: terms}
			errs := domain.ValidateFields(f)
			return errs.Has(domain.FieldName) == (len(name) < 2) &&
				errs.Has(domain.FieldTitle) == (len(title) < 5) &&
				errs.Has(domain.FieldTerms) == !terms &&
				!errs.Has(domain.FieldEmail) && !errs.Has(domain.FieldSummary)
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.Bool(),
	))

	props.TestingRun(t)
}

func TestClearFieldError(t *testing.T) {
	errs := domain.ValidationErrors{
		domain.FieldName:  domain.MsgNameTooShort,
		domain.FieldEmail: domain.MsgEmailInvalid,
	}
	out := domain.ClearFieldError(errs, domain.FieldName)
	assert.Equal(t, domain.ValidationErrors{domain.FieldEmail: domain.MsgEmailInvalid}, out)
	assert.Len(t, errs, 2, "input must not be modified")

	same := domain.ClearFieldError(out, domain.FieldTitle)
	assert.Equal(t, out, same)
	assert.Nil(t, domain.ClearFieldError(nil, domain.FieldName))
}

// ---------------------------------------------------------------------------
// File validator
// ---------------------------------------------------------------------------

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name   string
		meta   domain.FileMeta
		reason domain.RejectReason
	}{
		{"pdf at limit", domain.FileMeta{MediaType: domain.MediaTypePDF, Size: 20 * 1024 * 1024}, domain.RejectNone},
		{"pdf one byte over", domain.FileMeta{MediaType: domain.MediaTypePDF, Size: 20*1024*1024 + 1}, domain.RejectTooLarge},
		{"empty pdf", domain.FileMeta{MediaType: domain.MediaTypePDF}, domain.RejectNone},
		{"doc", domain.FileMeta{MediaType: domain.MediaTypeDOC, Size: 10}, domain.RejectNone},
		{"docx", domain.FileMeta{MediaType: domain.MediaTypeDOCX, Size: 10}, domain.RejectNone},
		{"ppt", domain.FileMeta{MediaType: domain.MediaTypePPT, Size: 10}, domain.RejectNone},
		{"pptx", domain.FileMeta{MediaType: domain.MediaTypePPTX, Size: 10}, domain.RejectNone},
		{"png", domain.FileMeta{MediaType: "image/png", Size: 10}, domain.RejectUnsupportedType},
		{"png oversized", domain.FileMeta{MediaType: "image/png", Size: 1 << 40}, domain.RejectUnsupportedType},
		{"no type", domain.FileMeta{Name: "paper.pdf", Size: 10}, domain.RejectUnsupportedType},
		{"prefix only", domain.FileMeta{MediaType: "application/", Size: 10}, domain.RejectUnsupportedType},
		{"with parameters", domain.FileMeta{MediaType: "application/pdf; charset=binary", Size: 10}, domain.RejectUnsupportedType},
		{"upper case", domain.FileMeta{MediaType: "APPLICATION/PDF", Size: 10}, domain.RejectUnsupportedType},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := domain.ValidateFile(tc.meta)
			assert.Equal(t, tc.reason, d.Reason)
			assert.Equal(t, tc.reason == domain.RejectNone, d.Accepted())
		})
	}
}

func TestRejectReason_Message(t *testing.T) {
	assert.Equal(t, domain.MsgFileUnsupported, domain.RejectUnsupportedType.Message())
	assert.Equal(t, domain.MsgFileTooLarge, domain.RejectTooLarge.Message())
	assert.Empty(t, domain.RejectNone.Message())
}

func TestValidateFile_Properties(t *testing.T) {
	props := properties(t)

	props.Property("accepted types pass up to the limit", prop.ForAll(
		func(mediaType string, size int64) bool {
			return domain.ValidateFile(domain.FileMeta{MediaType: mediaType, Size: size}).Accepted()
		},
		gen.OneConstOf(domain.MediaTypePDF, domain.MediaTypeDOC, domain.MediaTypeDOCX, domain.MediaTypePPT, domain.MediaTypePPTX),
		gen.Int64Range(0, domain.MaxFileSize),
	))

	props.Property("accepted types fail above the limit", prop.ForAll(
		func(mediaType string, size int64) bool {
			return domain.ValidateFile(domain.FileMeta{MediaType: mediaType, Size: size}).Reason == domain.RejectTooLarge
		},
		gen.OneConstOf(domain.MediaTypePDF, domain.MediaTypeDOC, domain.MediaTypeDOCX, domain.MediaTypePPT, domain.MediaTypePPTX),
		gen.Int64Range(domain.MaxFileSize+1, 4*domain.MaxFileSize),
	))

	props.Property("other types fail regardless of size", prop.ForAll(
		func(mediaType string, size int64) bool {
			return domain.ValidateFile(domain.FileMeta{MediaType: mediaType, Size: size}).Reason == domain.RejectUnsupportedType
		},
		gen.OneConstOf("image/png", "image/jpeg", "text/plain", "application/zip", "application/octet-stream", ""),
		gen.Int64Range(0, 4*domain.MaxFileSize),
	))

	props.TestingRun(t)
}

func TestParseField(t *testing.T) {
	for _, f := range domain.Fields() {
		got, ok := domain.ParseField(string(f))
		require.True(t, ok)
		assert.Equal(t, f, got)
	}
	_, ok := domain.ParseField("file")
	assert.False(t, ok)
}

func TestCheckboxChecked(t *testing.T) {
	for _, v := range []string{"on", "true", "1", "yes"} {
		assert.True(t, domain.CheckboxChecked(v), v)
	}
	for _, v := range []string{"", "off", "false", "0", "ON"} {
		assert.False(t, domain.CheckboxChecked(v), v)
	}
}
