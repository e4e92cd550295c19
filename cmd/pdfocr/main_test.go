package main

import "testing"

func TestRootCommandShowsHelp(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, nil, env.configPath)
	if err != nil {
		t.Fatalf("root command: %v", err)
	}
	requireContains(t, out, "pdfocr")
	requireContains(t, out, "Available Commands")
}

func TestScanCommandEmptyDirectory(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"scan", env.workDir, "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, `"files"`)
}
