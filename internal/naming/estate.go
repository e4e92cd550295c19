package naming

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// estateMaxBaseLength leaves room for a "-NN" tie-breaker under the 140
// character filename ceiling.
const estateMaxBaseLength = 137

// minLegalDescription is the floor below which truncation stops trimming
// the legal description field.
const minLegalDescription = 10

// DepartmentCodes maps department names to their three-letter codes.
var DepartmentCodes = map[string]string{
	"legal":          "LEG",
	"financial":      "FIN",
	"administrative": "ADM",
	"tax":            "TAX",
	"insurance":      "INS",
	"real estate":    "REI",
}

// SecurityTags maps sensitivity levels to their single-letter tags.
var SecurityTags = map[string]string{
	"public":                "P",
	"internal":              "I",
	"confidential":          "C",
	"strictly confidential": "S",
	"regulated":             "R",
}

// DerivativeCodes lists the recognized derivative suffixes for lifecycle fields.
var DerivativeCodes = []string{"_OCR", "_BK", "_RED"}

// estatePattern validates the full structured filename:
// YYYYMMDD_MatterID_Last_First_Middle_Dept_DocType_Subtype_Lifecycle_Sec_LegalDescription[-NN].ext
var estatePattern = regexp.MustCompile(
	`^([0-9]{8})_([A-Za-z0-9_]+)_([A-Za-z]+)_([A-Za-z]+)_([A-Za-z]+|NA)_` +
		`(LEG|FIN|ADM|TAX|INS|REI)_([A-Za-z]+)_([A-Za-z]+)_` +
		`([DSFAR][0-9]+(_OCR|_BK|_RED)?)_([PICSR])_` +
		`([A-Za-z0-9_]+)(-[0-9]{2})?` +
		`\.(pdf|docx|xlsx|jpg|png|mp4|wav|csv)$`)

// ValidateEstate reports whether a filename conforms to the structured
// convention.
func ValidateEstate(filename string) bool {
	return estatePattern.MatchString(filename)
}

// EstateSecurityTag extracts the single-letter security tag from a valid
// structured filename. The second return is false when the name does not
// conform to the convention.
func EstateSecurityTag(filename string) (string, bool) {
	match := estatePattern.FindStringSubmatch(filename)
	if match == nil {
		return "", false
	}
	return match[11], true
}

// EstateComponents holds the structured name fields produced by analysis.
type EstateComponents struct {
	Date             string
	MatterID         string
	LastName         string
	FirstName        string
	MiddleName       string
	Department       string
	DocType          string
	Subtype          string
	Lifecycle        string
	DerivativeCode   string
	SecurityTag      string
	LegalDescription string
}

// normalizeEstate fills defaults for missing fields and converts matter ID
// hyphens to underscores (24-PR-371 becomes 24_PR_371).
func (c *EstateComponents) normalize() {
	defaultWhenEmpty(&c.Date, "00000000")
	defaultWhenEmpty(&c.MatterID, "UNKNOWN")
	defaultWhenEmpty(&c.LastName, "Unknown")
	defaultWhenEmpty(&c.FirstName, "Unknown")
	defaultWhenEmpty(&c.MiddleName, "NA")
	defaultWhenEmpty(&c.Department, "ADM")
	defaultWhenEmpty(&c.DocType, "Document")
	defaultWhenEmpty(&c.Subtype, "General")
	defaultWhenEmpty(&c.Lifecycle, "F1")
	defaultWhenEmpty(&c.SecurityTag, "C")
	defaultWhenEmpty(&c.LegalDescription, "UnknownDocument")
	c.MatterID = strings.ReplaceAll(c.MatterID, "-", "_")
}

func defaultWhenEmpty(field *string, fallback string) {
	if strings.TrimSpace(*field) == "" {
		*field = fallback
	}
}

// BaseName assembles the structured base name (no extension), sanitized and
// truncated so a tie-breaker still fits. Truncation only shortens the legal
// description, never below its minimum length.
func (c EstateComponents) BaseName() string {
	c.normalize()

	lifecycle := c.Lifecycle
	if code := strings.TrimSpace(c.DerivativeCode); code != "" {
		if isDerivativeCode(code) {
			lifecycle += code
		}
	}

	parts := []string{
		c.Date,
		c.MatterID,
		c.LastName,
		c.FirstName,
		c.MiddleName,
		c.Department,
		c.DocType,
		c.Subtype,
		lifecycle,
		c.SecurityTag,
		c.LegalDescription,
	}
	prefix := SanitizeBaseName(strings.Join(parts[:len(parts)-1], "_"), 0)
	legal := SanitizeBaseName(c.LegalDescription, 0)

	legalRunes := []rune(legal)
	if over := utf8.RuneCountInString(prefix) + 1 + len(legalRunes) - estateMaxBaseLength; over > 0 {
		keep := len(legalRunes) - over
		if keep < minLegalDescription {
			keep = minLegalDescription
		}
		if keep < len(legalRunes) {
			legal = string(legalRunes[:keep])
		}
	}
	return prefix + "_" + legal
}

// SecurityRequiresChecksum reports whether a security tag mandates a
// SHA-256 sidecar (strictly confidential and regulated material).
func SecurityRequiresChecksum(tag string) bool {
	switch strings.ToUpper(strings.TrimSpace(tag)) {
	case "S", "R":
		return true
	default:
		return false
	}
}

func isDerivativeCode(code string) bool {
	for _, known := range DerivativeCodes {
		if code == known {
			return true
		}
	}
	return false
}
