package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("not a real pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCollectPDFs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.pdf")
	writeFile(t, dir, "a.PDF")
	writeFile(t, dir, "notes.txt")
	writeFile(t, dir, "a.pdf.backup")
	writeFile(t, dir, "report.extracted.txt")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	paths, err := CollectPDFs(dir)
	if err != nil {
		t.Fatalf("CollectPDFs: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("got %d paths (%v), want 2", len(paths), paths)
	}
	if filepath.Base(paths[0]) != "a.PDF" || filepath.Base(paths[1]) != "b.pdf" {
		t.Errorf("unexpected order or contents: %v", paths)
	}
}

func TestCollectPDFsMissingDirectory(t *testing.T) {
	if _, err := CollectPDFs(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestScanDirectoryCountsFailures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.pdf")

	s := New(3, 10, nil)
	report, err := s.ScanDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("ScanDirectory: %v", err)
	}
	if len(report.Files) != 1 {
		t.Fatalf("files = %d, want 1", len(report.Files))
	}
	if report.Failed != 1 || report.WithText != 0 || report.NeedOCR != 0 {
		t.Errorf("counts = failed %d, with_text %d, need_ocr %d", report.Failed, report.WithText, report.NeedOCR)
	}
	if report.Files[0].Error == "" {
		t.Error("expected probe error for invalid pdf")
	}
}

func TestScanDirectoryEmpty(t *testing.T) {
	s := New(3, 10, nil)
	report, err := s.ScanDirectory(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("ScanDirectory: %v", err)
	}
	if len(report.Files) != 0 {
		t.Errorf("expected no files, got %d", len(report.Files))
	}
}

func TestScanDirectoryHonorsContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.pdf")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(3, 10, nil).ScanDirectory(ctx, dir); err == nil {
		t.Fatal("expected context error")
	}
}
