package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_GarbageBytesYieldDiagnostic(t *testing.T) {
	extractor := NewResumeExtractor()

	text := extractor.Extract([]byte("this is not a pdf"))

	assert.True(t, IsExtractionError(text))
	assert.Contains(t, text, "Error reading PDF: ")
}

func TestExtract_EmptyInputYieldsDiagnostic(t *testing.T) {
	extractor := NewResumeExtractor()

	text := extractor.Extract(nil)

	assert.True(t, IsExtractionError(text))
}

func TestExtract_TruncatedHeaderYieldsDiagnostic(t *testing.T) {
	extractor := NewResumeExtractor()

	// Valid magic bytes but nothing behind them; some parser paths
	// panic here, which must still come back as a diagnostic string.
	text := extractor.Extract([]byte("%PDF-1.4\n"))

	assert.True(t, IsExtractionError(text))
}

func TestIsExtractionError(t *testing.T) {
	assert.True(t, IsExtractionError("Error reading PDF: no text content found"))
	assert.False(t, IsExtractionError("John Doe\nSoftware Engineer"))
	assert.False(t, IsExtractionError(""))
}
