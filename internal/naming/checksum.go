package naming

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ChecksumSidecarSuffix is appended to a document's filename to form its
// integrity sidecar path.
const ChecksumSidecarSuffix = ".sha256"

// Checksum streams path through SHA-256 and returns the lowercase hex digest.
func Checksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open for checksum: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// WriteChecksumSidecar writes "<hex>  <filename>\n" next to the document,
// the same layout sha256sum emits so the sidecar verifies with -c.
func WriteChecksumSidecar(documentPath string) (string, error) {
	digest, err := Checksum(documentPath)
	if err != nil {
		return "", err
	}
	sidecar := documentPath + ChecksumSidecarSuffix
	line := fmt.Sprintf("%s  %s\n", digest, filepath.Base(documentPath))
	if err := os.WriteFile(sidecar, []byte(line), 0o644); err != nil {
		return "", fmt.Errorf("write checksum sidecar: %w", err)
	}
	return sidecar, nil
}
