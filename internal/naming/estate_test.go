package naming

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestValidateEstate(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     bool
	}{
		{
			"complete original document",
			"20240115_24_PR_371_Smith_John_NA_LEG_Will_Original_D1_C_LastWillAndTestament.pdf",
			true,
		},
		{
			"derivative scan with tie-breaker",
			"20240301_24_PR_371_Smith_John_Allen_FIN_Statement_Bank_S3_OCR_I_ChaseAccount4417-02.pdf",
			true,
		},
		{
			"regulated security tag",
			"20231120_23_ES_009_Doe_Jane_NA_TAX_Return_Federal_F2_R_Form1040Tax2022.pdf",
			true,
		},
		{
			"missing date",
			"24_PR_371_Smith_John_NA_LEG_Will_Original_D1_C_LastWill.pdf",
			false,
		},
		{
			"bad department code",
			"20240115_24_PR_371_Smith_John_NA_XYZ_Will_Original_D1_C_LastWill.pdf",
			false,
		},
		{
			"lowercase security tag",
			"20240115_24_PR_371_Smith_John_NA_LEG_Will_Original_D1_c_LastWill.pdf",
			false,
		},
		{
			"unsupported extension",
			"20240115_24_PR_371_Smith_John_NA_LEG_Will_Original_D1_C_LastWill.exe",
			false,
		},
		{
			"three digit tie-breaker",
			"20240115_24_PR_371_Smith_John_NA_LEG_Will_Original_D1_C_LastWill-100.pdf",
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateEstate(tt.filename); got != tt.want {
				t.Errorf("ValidateEstate(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestEstateBaseName(t *testing.T) {
	c := EstateComponents{
		Date:             "20240115",
		MatterID:         "24-PR-371",
		LastName:         "Smith",
		FirstName:        "John",
		Department:       "LEG",
		DocType:          "Will",
		Subtype:          "Original",
		Lifecycle:        "D1",
		SecurityTag:      "C",
		LegalDescription: "LastWillAndTestament",
	}
	got := c.BaseName()
	want := "20240115_24_PR_371_Smith_John_NA_LEG_Will_Original_D1_C_LastWillAndTestament"
	if got != want {
		t.Errorf("BaseName() = %q, want %q", got, want)
	}
	if !ValidateEstate(got + ".pdf") {
		t.Errorf("generated name %q does not validate", got+".pdf")
	}
}

func TestEstateBaseNameAppendsDerivative(t *testing.T) {
	c := EstateComponents{
		Date:             "20240301",
		MatterID:         "24_PR_371",
		LastName:         "Smith",
		FirstName:        "John",
		MiddleName:       "Allen",
		Department:       "FIN",
		DocType:          "Statement",
		Subtype:          "Bank",
		Lifecycle:        "S3",
		DerivativeCode:   "_OCR",
		SecurityTag:      "I",
		LegalDescription: "ChaseAccount4417",
	}
	got := c.BaseName()
	if !strings.Contains(got, "_S3_OCR_I_") {
		t.Errorf("derivative code not appended to lifecycle: %q", got)
	}
	if !ValidateEstate(got + ".pdf") {
		t.Errorf("generated name %q does not validate", got+".pdf")
	}
}

func TestEstateBaseNameIgnoresUnknownDerivative(t *testing.T) {
	c := EstateComponents{
		Date:             "20240301",
		MatterID:         "24_PR_371",
		LastName:         "Smith",
		FirstName:        "John",
		Department:       "ADM",
		DocType:          "Letter",
		Subtype:          "Correspondence",
		Lifecycle:        "D2",
		DerivativeCode:   "_ZZZ",
		SecurityTag:      "P",
		LegalDescription: "CourtClerkLetter",
	}
	if got := c.BaseName(); strings.Contains(got, "_ZZZ") {
		t.Errorf("unknown derivative code leaked into name: %q", got)
	}
}

func TestEstateBaseNameDefaults(t *testing.T) {
	got := EstateComponents{}.BaseName()
	want := "00000000_UNKNOWN_Unknown_Unknown_NA_ADM_Document_General_F1_C_UnknownDocument"
	if got != want {
		t.Errorf("BaseName() = %q, want %q", got, want)
	}
}

func TestEstateBaseNameTruncatesLegalDescription(t *testing.T) {
	c := EstateComponents{
		Date:             "20240115",
		MatterID:         "24_PR_371",
		LastName:         "Smith",
		FirstName:        "John",
		Department:       "LEG",
		DocType:          "Deed",
		Subtype:          "Warranty",
		Lifecycle:        "D1",
		SecurityTag:      "C",
		LegalDescription: strings.Repeat("Lot7Block3RanchoVistaEstates", 10),
	}
	got := c.BaseName()
	if len(got) > estateMaxBaseLength {
		t.Errorf("BaseName() length = %d, want <= %d", len(got), estateMaxBaseLength)
	}
	legal := got[strings.LastIndex(got, "_C_")+len("_C_"):]
	if len(legal) < minLegalDescription {
		t.Errorf("legal description trimmed below %d chars: %q", minLegalDescription, legal)
	}
}

func TestEstateSecurityTag(t *testing.T) {
	tag, ok := EstateSecurityTag("20240115_24_PR_371_Smith_John_NA_LEG_Will_Original_D1_S_LastWill-02.pdf")
	if !ok || tag != "S" {
		t.Errorf("EstateSecurityTag = %q, %v", tag, ok)
	}
	if _, ok := EstateSecurityTag("random.pdf"); ok {
		t.Error("non-conforming name must not yield a tag")
	}
}

func TestSecurityRequiresChecksum(t *testing.T) {
	for tag, want := range map[string]bool{"S": true, "R": true, "s": true, "P": false, "I": false, "C": false, "": false} {
		if got := SecurityRequiresChecksum(tag); got != want {
			t.Errorf("SecurityRequiresChecksum(%q) = %v, want %v", tag, got, want)
		}
	}
}

func TestEstateBaseNameTruncationKeepsRuneBoundary(t *testing.T) {
	c := EstateComponents{
		Date:             "20240115",
		MatterID:         "24_PR_371",
		LastName:         "Smith",
		FirstName:        "John",
		Department:       "LEG",
		DocType:          "Deed",
		Subtype:          "Warranty",
		Lifecycle:        "D1",
		SecurityTag:      "C",
		LegalDescription: strings.Repeat("Peña", 50),
	}
	got := c.BaseName()
	if !utf8.ValidString(got) {
		t.Fatalf("BaseName() produced invalid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n > estateMaxBaseLength {
		t.Errorf("BaseName() rune count = %d, want <= %d", n, estateMaxBaseLength)
	}
}
