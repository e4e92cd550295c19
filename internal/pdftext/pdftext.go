// Package pdftext probes PDFs for a searchable text layer and extracts
// bounded excerpts for analysis. Extraction never mutates the file.
package pdftext

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	pdfcpu "github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/textutil"
)

// SampleLength is the number of runes of extracted text kept as a preview.
const SampleLength = 200

// Result summarizes the text layer of a single PDF.
type Result struct {
	Path      string `json:"path"`
	Pages     int    `json:"pages"`
	TextChars int    `json:"text_chars"`
	WordCount int    `json:"word_count"`
	HasText   bool   `json:"has_text"`
	Sample    string `json:"sample,omitempty"`
}

// Probe inspects the first samplePages pages of a PDF and reports whether it
// carries enough extractable text to count as searchable.
func Probe(path string, samplePages, minTextChars int) (Result, error) {
	result := Result{Path: path}

	pages, err := pdfcpu.PageCountFile(path)
	if err != nil {
		return result, fmt.Errorf("count pages: %w", err)
	}
	result.Pages = pages

	if samplePages <= 0 {
		samplePages = 1
	}
	text, err := extract(path, samplePages, 0)
	if err != nil {
		return result, err
	}

	result.TextChars, result.WordCount, result.HasText = EvaluateText(text, minTextChars)
	result.Sample = textutil.FlattenExcerpt(text, SampleLength)
	if result.Sample == "" {
		result.Sample = "NO TEXT FOUND"
	}
	return result, nil
}

// ExtractText returns up to maxChars of text from the first maxPages pages.
func ExtractText(path string, maxPages, maxChars int) (string, error) {
	if maxPages <= 0 {
		maxPages = 1
	}
	text, err := extract(path, maxPages, maxChars)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// EvaluateText applies the searchability threshold to extracted text.
func EvaluateText(text string, minChars int) (chars, words int, hasText bool) {
	trimmed := strings.TrimSpace(text)
	chars = len(trimmed)
	words = len(strings.Fields(trimmed))
	hasText = chars > minChars
	return chars, words, hasText
}

// extract pulls plain text from up to maxPages pages, stopping early once
// maxChars is reached (0 means unbounded). Pages that fail to decode are
// skipped, matching the tolerance scanned documents demand.
func extract(path string, maxPages, maxChars int) (text string, err error) {
	// The pdf library panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extract text from %s: %v", path, r)
		}
	}()

	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer file.Close()

	total := reader.NumPage()
	if maxPages > total {
		maxPages = total
	}

	var sb strings.Builder
	for i := 1; i <= maxPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
		if maxChars > 0 && sb.Len() >= maxChars {
			break
		}
	}

	text = sb.String()
	if maxChars > 0 && len(text) > maxChars {
		text = truncateRunes(text, maxChars)
	}
	return text, nil
}

// truncateRunes cuts text to at most max bytes without splitting a rune.
func truncateRunes(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := text[:max]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
