package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveTargets(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.pdf")
	b := filepath.Join(dir, "b.pdf")
	txt := filepath.Join(dir, "notes.txt")
	for _, path := range []string{a, b, txt} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	gotDir, gotFiles, err := resolveTargets(nil)
	if err != nil || gotDir != "." || gotFiles != nil {
		t.Errorf("no args: dir=%q files=%v err=%v", gotDir, gotFiles, err)
	}

	gotDir, gotFiles, err = resolveTargets([]string{dir})
	if err != nil || gotDir != dir || gotFiles != nil {
		t.Errorf("dir arg: dir=%q files=%v err=%v", gotDir, gotFiles, err)
	}

	gotDir, gotFiles, err = resolveTargets([]string{a, b})
	if err != nil {
		t.Fatalf("file args: %v", err)
	}
	if gotDir != dir || len(gotFiles) != 2 {
		t.Errorf("file args: dir=%q files=%v", gotDir, gotFiles)
	}

	if _, _, err := resolveTargets([]string{txt}); err == nil {
		t.Error("expected error for non-PDF file")
	}
	if _, _, err := resolveTargets([]string{a, dir}); err == nil {
		t.Error("expected error mixing files and directories")
	}
	if _, _, err := resolveTargets([]string{filepath.Join(dir, "missing.pdf")}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestResolveTargetsRejectsMultipleDirectories(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	a := filepath.Join(dirA, "a.pdf")
	b := filepath.Join(dirB, "b.pdf")
	for _, path := range []string{a, b} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if _, _, err := resolveTargets([]string{a, b}); err == nil {
		t.Error("expected error for files spanning directories")
	}

	gotDir, gotFiles, err := resolveTargets([]string{a})
	if err != nil || gotDir != dirA || len(gotFiles) != 1 {
		t.Errorf("single file: dir=%q files=%v err=%v", gotDir, gotFiles, err)
	}
}
