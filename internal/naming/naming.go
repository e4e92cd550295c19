package naming

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/textutil"
)

// maxCollisionAttempts bounds the generic collision counter loop.
const maxCollisionAttempts = 10000

// SanitizeBaseName strips filesystem-unsafe characters from a candidate base
// name (no extension) and truncates it to maxLen runes. maxLen of 0 means
// unlimited length.
func SanitizeBaseName(name string, maxLen int) string {
	name = textutil.SanitizeFileName(name)
	if maxLen > 0 {
		runes := []rune(name)
		if len(runes) > maxLen {
			name = string(runes[:maxLen])
		}
	}
	return name
}

// FallbackBaseName produces a deterministic-ish name for files whose
// analysis failed, stamped with the supplied time.
func FallbackBaseName(now time.Time) string {
	return "Document_" + now.Format("20060102_150405")
}

// ResolveGeneric returns the first free filename in dir for base+ext,
// appending _1, _2, ... when the plain name is taken. The returned value is
// a bare filename, not a full path.
func ResolveGeneric(dir, base, ext string) (string, error) {
	candidate := base + ext
	if !exists(filepath.Join(dir, candidate)) {
		return candidate, nil
	}
	for counter := 1; counter <= maxCollisionAttempts; counter++ {
		candidate = fmt.Sprintf("%s_%d%s", base, counter, ext)
		if !exists(filepath.Join(dir, candidate)) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("exhausted collision suffixes for %s in %s", base+ext, dir)
}

// Collision records a tie-break that was applied during a rename.
type Collision struct {
	Timestamp       time.Time `json:"timestamp"`
	OriginalAttempt string    `json:"original_attempt"`
	FinalName       string    `json:"final_name"`
	Directory       string    `json:"directory"`
}

// ResolveEstate applies the estate tie-breaker rule: when base+ext already
// exists, suffixes -02 through -99 are tried in order. The second return is
// non-nil when a tie-break was needed.
func ResolveEstate(dir, base, ext string) (string, *Collision, error) {
	original := base + ext
	if !exists(filepath.Join(dir, original)) {
		return original, nil, nil
	}
	for counter := 2; counter <= 99; counter++ {
		candidate := fmt.Sprintf("%s-%02d%s", base, counter, ext)
		if !exists(filepath.Join(dir, candidate)) {
			return candidate, &Collision{
				Timestamp:       time.Now().UTC(),
				OriginalAttempt: original,
				FinalName:       candidate,
				Directory:       dir,
			}, nil
		}
	}
	return "", nil, fmt.Errorf("unable to resolve filename collision - exceeded 99 duplicates for %s", base)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}
