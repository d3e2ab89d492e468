package pdf

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/academlist/seller-portal/internal/domain"
)

func receiptFixture() *domain.Submission {
	return &domain.Submission{
		ID: 12,
		Fields: domain.FormFields{
			Name:          "Dana Cohen",
			Email:         "dana@example.com",
			Title:         "Attachment Styles in Early Adulthood",
			Summary:       "A review of longitudinal studies on attachment and relationship outcomes.",
			TermsAccepted: true,
		},
		File:      domain.SelectedFile{Name: "attachment.pdf", MediaType: domain.MediaTypePDF, Size: 3 * 1024 * 1024},
		CreatedAt: time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC),
	}
}

func TestGenerate_WritesPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReceipts("").Generate(receiptFixture(), &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 500)
}

func TestGenerate_HebrewWithoutFontDoesNotFail(t *testing.T) {
	s := receiptFixture()
	s.Fields.Name = "דנה כהן"
	s.Fields.Title = "סגנונות התקשרות בבגרות המוקדמת"
	var buf bytes.Buffer
	require.NoError(t, NewReceipts("").Generate(s, &buf))
}

func TestGenerate_MissingFont(t *testing.T) {
	var buf bytes.Buffer
	err := NewReceipts(filepath.Join(t.TempDir(), "missing.ttf")).Generate(receiptFixture(), &buf)
	assert.Error(t, err)
}

func TestSizeToDisplay(t *testing.T) {
	assert.Equal(t, "512 B", sizeToDisplay(512))
	assert.Equal(t, "1.5 KB", sizeToDisplay(1536))
	assert.Equal(t, "20.0 MB", sizeToDisplay(domain.MaxFileSize))
}

func TestFileKind(t *testing.T) {
	assert.Equal(t, "Word", fileKind(domain.MediaTypeDOCX))
	assert.Equal(t, "PowerPoint", fileKind(domain.MediaTypePPT))
	assert.Equal(t, "text/plain", fileKind("text/plain"))
}

func TestComposed(t *testing.T) {
	raw := composed(nil)
	assert.Equal(t, "\u00e9", raw("e\u0301"))
	assert.Equal(t, "דנה", raw("דנה"))

	cp1252 := composed(fpdf.New("P", "mm", "A4", "").UnicodeTranslatorFromDescriptor(""))
	assert.Equal(t, "\xe9", cp1252("e\u0301"), "decomposed accent maps to the cp1252 e-acute")
	assert.Equal(t, cp1252("\u00e9"), cp1252("e\u0301"))
}
