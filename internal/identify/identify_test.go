package identify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/naming"
)

type stubCompleter struct {
	response     string
	err          error
	systemPrompt string
	userPrompt   string
}

func (s *stubCompleter) CompleteJSON(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	s.systemPrompt = systemPrompt
	s.userPrompt = userPrompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestDetectCompilation(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		pages int
		want  bool
	}{
		{"plain letter", "Dear counsel, enclosed is the deed.", 3, false},
		{"three keywords", "Exhibit A, Attachment 2, and Appendix C follow.", 12, true},
		{"one keyword with many pages", "See exhibit 4 for details.", 80, true},
		{"many pages alone", "Quarterly financial summary.", 80, false},
		{"two keywords short doc", "Schedule B and Exhibit 1.", 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCompilation(tt.text, tt.pages); got != tt.want {
				t.Errorf("DetectCompilation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnalyzeGeneric(t *testing.T) {
	stub := &stubCompleter{response: `{
		"filename": "Invoice_AcmeCorp_7741_2026-01-10",
		"document_type": "Invoice",
		"key_info": "Acme Corp invoice 7741",
		"confidence": "HIGH"
	}`}
	analyzer := NewAnalyzer(stub)

	analysis, err := analyzer.AnalyzeGeneric(context.Background(), Document{
		CurrentName: "scan0041.pdf",
		Text:        "INVOICE\nAcme Corp\nInvoice #7741\nDate: 2026-01-10",
		Pages:       2,
	})
	if err != nil {
		t.Fatalf("AnalyzeGeneric: %v", err)
	}
	if analysis.Filename != "Invoice_AcmeCorp_7741_2026-01-10" {
		t.Errorf("filename = %q", analysis.Filename)
	}
	if analysis.Confidence != "high" {
		t.Errorf("confidence = %q, want normalized high", analysis.Confidence)
	}
	if !strings.Contains(stub.userPrompt, "scan0041.pdf") {
		t.Errorf("user prompt missing current filename: %q", stub.userPrompt)
	}
	if !strings.Contains(stub.systemPrompt, "DocumentType_MainSubject_KeyIdentifier_Date") {
		t.Error("system prompt missing naming format")
	}
}

func TestAnalyzeGenericRequiresText(t *testing.T) {
	analyzer := NewAnalyzer(&stubCompleter{})
	if _, err := analyzer.AnalyzeGeneric(context.Background(), Document{CurrentName: "x.pdf"}); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestAnalyzeGenericDefaultsEmptyFilename(t *testing.T) {
	stub := &stubCompleter{response: `{"filename": "", "confidence": "medium"}`}
	analyzer := NewAnalyzer(stub)
	analysis, err := analyzer.AnalyzeGeneric(context.Background(), Document{CurrentName: "x.pdf", Text: "some content"})
	if err != nil {
		t.Fatalf("AnalyzeGeneric: %v", err)
	}
	if analysis.Filename != "Unknown_Document" {
		t.Errorf("filename = %q, want Unknown_Document", analysis.Filename)
	}
}

func TestAnalyzeGenericPropagatesCompleterError(t *testing.T) {
	analyzer := NewAnalyzer(&stubCompleter{err: errors.New("api down")})
	if _, err := analyzer.AnalyzeGeneric(context.Background(), Document{CurrentName: "x.pdf", Text: "body"}); err == nil {
		t.Fatal("expected completer error to propagate")
	}
}

func TestAnalyzeEstate(t *testing.T) {
	stub := &stubCompleter{response: "```json\n" + `{
		"date": "20240115",
		"matter_id": "24-PR-371",
		"last_name": "Smith",
		"first_name": "John",
		"middle_name": "NA",
		"dept_code": "leg",
		"doc_type": "Will",
		"subtype": "Original",
		"lifecycle": "d1",
		"derivative_code": "",
		"security_tag": "c",
		"legal_description": "last will and testament",
		"confidence": "high",
		"reasoning": "signed will dated January 2024"
	}` + "\n```"}
	analyzer := NewAnalyzer(stub)

	analysis, err := analyzer.AnalyzeEstate(context.Background(), Document{
		CurrentName: "scan0001.pdf",
		Text:        "LAST WILL AND TESTAMENT of John Smith, dated January 15, 2024",
		Pages:       8,
	})
	if err != nil {
		t.Fatalf("AnalyzeEstate: %v", err)
	}
	c := analysis.Components
	if c.Department != "LEG" || c.Lifecycle != "D1" || c.SecurityTag != "C" {
		t.Errorf("codes not upper-cased: %+v", c)
	}
	if c.LegalDescription != "LastWillAndTestament" {
		t.Errorf("legal description = %q, want TitleCase without spaces", c.LegalDescription)
	}
	base := c.BaseName()
	if !strings.HasPrefix(base, "20240115_24_PR_371_Smith_John_NA_LEG_") {
		t.Errorf("BaseName() = %q", base)
	}
	if analysis.IsCompilation {
		t.Error("single will must not be flagged as compilation")
	}
}

func TestAnalyzeEstateFlagsCompilation(t *testing.T) {
	stub := &stubCompleter{response: `{
		"date": "20240301", "matter_id": "24_PR_371", "last_name": "Smith",
		"first_name": "John", "middle_name": "NA", "dept_code": "ADM",
		"doc_type": "Collection", "subtype": "Exhibits", "lifecycle": "F1",
		"security_tag": "C", "legal_description": "ProbateExhibitBundle",
		"confidence": "medium", "compilation_contents": "exhibits A through F"
	}`}
	analyzer := NewAnalyzer(stub)

	analysis, err := analyzer.AnalyzeEstate(context.Background(), Document{
		CurrentName: "bundle.pdf",
		Text:        "Exhibit A ... Attachment 2 ... Appendix C ... Schedule 1",
		Pages:       120,
	})
	if err != nil {
		t.Fatalf("AnalyzeEstate: %v", err)
	}
	if !analysis.IsCompilation {
		t.Error("expected compilation flag")
	}
	if !strings.Contains(stub.systemPrompt, "Is compilation: true") {
		t.Error("system prompt missing compilation flag")
	}
	if analysis.CompilationContents != "exhibits A through F" {
		t.Errorf("compilation contents = %q", analysis.CompilationContents)
	}
}

func TestFallbackGeneric(t *testing.T) {
	ts := time.Date(2026, 2, 1, 18, 4, 5, 0, time.UTC)
	fallback := FallbackGeneric(ts)
	if fallback.Filename != "Document_20260201_180405" {
		t.Errorf("fallback filename = %q", fallback.Filename)
	}
	if fallback.Confidence != "low" {
		t.Errorf("fallback confidence = %q", fallback.Confidence)
	}
}

func TestFallbackEstate(t *testing.T) {
	ts := time.Date(2026, 2, 1, 18, 4, 5, 0, time.UTC)
	fallback := FallbackEstate(ts)
	base := fallback.Components.BaseName()
	want := "20260201_UNKNOWN_Unknown_Unknown_NA_ADM_Document_General_F1_C_AIAnalysisFailed"
	if base != want {
		t.Errorf("fallback base = %q, want %q", base, want)
	}
	if !naming.ValidateEstate(base + ".pdf") {
		t.Errorf("fallback name %q must pass convention validation", base+".pdf")
	}
	if fallback.Confidence != "low" {
		t.Errorf("fallback confidence = %q", fallback.Confidence)
	}
}
