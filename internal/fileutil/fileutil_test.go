package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFileVerified(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.pdf")
	dst := filepath.Join(dir, "dst.pdf")
	payload := []byte("not really a pdf, but bytes are bytes")
	if err := os.WriteFile(src, payload, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFileVerified(src, dst); err != nil {
		t.Fatalf("CopyFileVerified: %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(payload) {
		t.Fatalf("destination content mismatch: %q", got)
	}
}

func TestCopyFileVerifiedMissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFileVerified(filepath.Join(dir, "missing.pdf"), filepath.Join(dir, "out.pdf")); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestBackupPath(t *testing.T) {
	if got := BackupPath("/tmp/scan.pdf"); got != "/tmp/scan.pdf.backup" {
		t.Fatalf("BackupPath = %q", got)
	}
	if !IsBackup("/tmp/scan.pdf.backup") {
		t.Fatal("expected IsBackup true for .backup path")
	}
	if IsBackup("/tmp/scan.pdf") {
		t.Fatal("expected IsBackup false for plain pdf")
	}
}
