package identify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/naming"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/services/llm"
	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/textutil"
)

const (
	genericExcerptLimit = 2000
	estateExcerptLimit  = 1500

	// compilationPageThreshold is the page count above which a document
	// gets extra weight toward being classified as a compilation.
	compilationPageThreshold = 50
)

// compilationIndicators are the keywords that suggest a file bundles
// multiple distinct documents.
var compilationIndicators = []string{
	"exhibit", "attachment", "appendix", "schedule",
	"compiled", "collection", "bundle", "packet",
}

var titleCaser = cases.Title(language.English)

// Completer is the subset of the LLM client the analyzers need.
type Completer interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

var _ Completer = (*llm.Client)(nil)

// Document carries the extracted material an analyzer works from.
type Document struct {
	CurrentName string
	Text        string
	Pages       int
}

// GenericAnalysis is the model's proposal under the generic convention.
type GenericAnalysis struct {
	Filename     string `json:"filename"`
	DocumentType string `json:"document_type"`
	KeyInfo      string `json:"key_info"`
	Confidence   string `json:"confidence"`
}

// EstateAnalysis is the model's proposal under the estate convention.
type EstateAnalysis struct {
	Components          naming.EstateComponents
	Confidence          string
	Reasoning           string
	IsCompilation       bool
	CompilationContents string
}

// Analyzer proposes filenames for extracted document text.
type Analyzer struct {
	completer Completer
}

// NewAnalyzer constructs an Analyzer on top of an LLM completer.
func NewAnalyzer(completer Completer) *Analyzer {
	return &Analyzer{completer: completer}
}

// DetectCompilation reports whether text and page count suggest the file
// bundles several distinct documents. Indicator keywords each count once;
// crossing the page threshold counts double; three or more hits flag it.
func DetectCompilation(text string, pages int) bool {
	lower := strings.ToLower(text)
	count := 0
	for _, indicator := range compilationIndicators {
		if strings.Contains(lower, indicator) {
			count++
		}
	}
	if pages > compilationPageThreshold {
		count += 2
	}
	return count >= 3
}

const genericSystemPrompt = `You analyze document content and suggest a descriptive filename.

Rules:
1. Use format: DocumentType_MainSubject_KeyIdentifier_Date
2. Keep under 60 characters
3. Use underscores, no spaces
4. Include date if found (YYYY-MM-DD format)
5. Be specific about document type (Invoice, Report, Contract, Manual, etc.)
6. Include key identifiers (company names, invoice numbers, etc.)

Return JSON with:
{
    "filename": "suggested_filename_without_extension",
    "document_type": "type of document",
    "key_info": "brief summary of key information",
    "confidence": "high/medium/low"
}`

// AnalyzeGeneric asks the model for a generic-convention name proposal.
func (a *Analyzer) AnalyzeGeneric(ctx context.Context, doc Document) (GenericAnalysis, error) {
	var analysis GenericAnalysis
	excerpt := textutil.FlattenExcerpt(doc.Text, genericExcerptLimit)
	if excerpt == "" {
		return analysis, fmt.Errorf("analyze %s: no text content", doc.CurrentName)
	}
	userPrompt := fmt.Sprintf("Current filename: %s\nContent excerpt:\n%s", doc.CurrentName, excerpt)
	content, err := a.completer.CompleteJSON(ctx, genericSystemPrompt, userPrompt)
	if err != nil {
		return analysis, fmt.Errorf("analyze %s: %w", doc.CurrentName, err)
	}
	if err := llm.DecodeLLMJSON(content, &analysis); err != nil {
		return analysis, fmt.Errorf("analyze %s: parse payload: %w", doc.CurrentName, err)
	}
	if strings.TrimSpace(analysis.Filename) == "" {
		analysis.Filename = "Unknown_Document"
	}
	analysis.Confidence = normalizeConfidence(analysis.Confidence)
	return analysis, nil
}

const estateSystemPromptFormat = `You generate filenames for an estate research document archive.

NAMING STRUCTURE (use underscore between ALL fields):
YYYYMMDD_MatterID_LastName_FirstName_MiddleName_Dept_DocType_Subtype_Lifecycle_SecTag_LegalDescription

SPECIAL RULES:
1. MiddleName: Use "NA" if not applicable/available
2. MatterID: Convert hyphens to underscores (24-PR-371 becomes 24_PR_371)
3. Compilation files: Use DocType "Collection" with appropriate subtype
4. Is compilation: %t

FIELD REQUIREMENTS:
- Date: YYYYMMDD (use 00000000 if undated)
- MatterID: Alphanumeric with underscores only
- Dept codes: LEG, FIN, ADM, TAX, INS, REI
- Lifecycle: D#, S#, A#, F#, R# (plus _OCR, _BK, _RED derivatives)
- Security: P, I, C, S, R (based on content sensitivity)
- LegalDescription: TitleCase, no spaces, max 50 chars

Return JSON with ALL these fields:
{
    "date": "YYYYMMDD format",
    "matter_id": "case ID with hyphens converted to underscores",
    "last_name": "last name",
    "first_name": "first name",
    "middle_name": "middle name or NA",
    "dept_code": "3-letter department code",
    "doc_type": "document type (use Collection if compilation)",
    "subtype": "document subtype",
    "lifecycle": "lifecycle code with number",
    "derivative_code": "_OCR, _BK, or _RED if applicable, empty otherwise",
    "security_tag": "1-letter security code",
    "legal_description": "concise description in TitleCase with underscores",
    "confidence": "high/medium/low",
    "reasoning": "brief explanation of naming choices",
    "compilation_contents": "list primary contents if compilation"
}`

type estatePayload struct {
	Date                string `json:"date"`
	MatterID            string `json:"matter_id"`
	LastName            string `json:"last_name"`
	FirstName           string `json:"first_name"`
	MiddleName          string `json:"middle_name"`
	DeptCode            string `json:"dept_code"`
	DocType             string `json:"doc_type"`
	Subtype             string `json:"subtype"`
	Lifecycle           string `json:"lifecycle"`
	DerivativeCode      string `json:"derivative_code"`
	SecurityTag         string `json:"security_tag"`
	LegalDescription    string `json:"legal_description"`
	Confidence          string `json:"confidence"`
	Reasoning           string `json:"reasoning"`
	CompilationContents string `json:"compilation_contents"`
}

// AnalyzeEstate asks the model for an estate-convention component set.
func (a *Analyzer) AnalyzeEstate(ctx context.Context, doc Document) (EstateAnalysis, error) {
	var analysis EstateAnalysis
	analysis.IsCompilation = DetectCompilation(doc.Text, doc.Pages)

	excerpt := textutil.FlattenExcerpt(doc.Text, estateExcerptLimit)
	if excerpt == "" {
		excerpt = "No text content"
	}
	systemPrompt := fmt.Sprintf(estateSystemPromptFormat, analysis.IsCompilation)
	userPrompt := fmt.Sprintf("Current filename: %s\nPages: %d\nContent excerpt:\n%s", doc.CurrentName, doc.Pages, excerpt)

	content, err := a.completer.CompleteJSON(ctx, systemPrompt, userPrompt)
	if err != nil {
		return analysis, fmt.Errorf("analyze %s: %w", doc.CurrentName, err)
	}
	var payload estatePayload
	if err := llm.DecodeLLMJSON(content, &payload); err != nil {
		return analysis, fmt.Errorf("analyze %s: parse payload: %w", doc.CurrentName, err)
	}

	analysis.Components = naming.EstateComponents{
		Date:             strings.TrimSpace(payload.Date),
		MatterID:         strings.TrimSpace(payload.MatterID),
		LastName:         strings.TrimSpace(payload.LastName),
		FirstName:        strings.TrimSpace(payload.FirstName),
		MiddleName:       strings.TrimSpace(payload.MiddleName),
		Department:       strings.ToUpper(strings.TrimSpace(payload.DeptCode)),
		DocType:          strings.TrimSpace(payload.DocType),
		Subtype:          strings.TrimSpace(payload.Subtype),
		Lifecycle:        strings.ToUpper(strings.TrimSpace(payload.Lifecycle)),
		DerivativeCode:   strings.ToUpper(strings.TrimSpace(payload.DerivativeCode)),
		SecurityTag:      strings.ToUpper(strings.TrimSpace(payload.SecurityTag)),
		LegalDescription: normalizeLegalDescription(payload.LegalDescription),
	}
	analysis.Confidence = normalizeConfidence(payload.Confidence)
	analysis.Reasoning = strings.TrimSpace(payload.Reasoning)
	analysis.CompilationContents = strings.TrimSpace(payload.CompilationContents)
	return analysis, nil
}

// FallbackGeneric produces the timestamped name used when analysis fails.
func FallbackGeneric(now time.Time) GenericAnalysis {
	return GenericAnalysis{
		Filename:     naming.FallbackBaseName(now),
		DocumentType: "Unknown",
		KeyInfo:      "Analysis failed",
		Confidence:   "low",
	}
}

// FallbackEstate produces the placeholder component set used when estate
// analysis fails. The resulting name still passes convention validation so
// the file gets filed rather than stranded.
func FallbackEstate(now time.Time) EstateAnalysis {
	return EstateAnalysis{
		Components: naming.EstateComponents{
			Date:             now.Format("20060102"),
			MatterID:         "UNKNOWN",
			LastName:         "Unknown",
			FirstName:        "Unknown",
			MiddleName:       "NA",
			Department:       "ADM",
			DocType:          "Document",
			Subtype:          "General",
			Lifecycle:        "F1",
			SecurityTag:      "C",
			LegalDescription: "AIAnalysisFailed",
		},
		Confidence: "low",
		Reasoning:  "analysis failed",
	}
}

// normalizeLegalDescription title-cases space-separated words and removes
// the spaces, matching the TitleCase-no-spaces field requirement.
func normalizeLegalDescription(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if !strings.ContainsRune(value, ' ') {
		return value
	}
	return strings.ReplaceAll(titleCaser.String(value), " ", "")
}

func normalizeConfidence(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "high":
		return "high"
	case "medium":
		return "medium"
	default:
		return "low"
	}
}
