package ocrmypdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"reflect"
	"strconv"
	"strings"
	"testing"
)

func TestNewCLIWithBinary(t *testing.T) {
	cli := NewCLI(Settings{}, WithBinary("/opt/ocrmypdf"))
	if cli.binary != "/opt/ocrmypdf" {
		t.Fatalf("expected binary override to be applied, got %q", cli.binary)
	}
}

func TestCLIProcessRequiresPaths(t *testing.T) {
	cli := NewCLI(Settings{})
	if err := cli.Process(context.Background(), "", "/tmp/out.pdf"); err == nil {
		t.Fatal("expected error when input path is empty")
	}
	if err := cli.Process(context.Background(), "/tmp/in.pdf", ""); err == nil {
		t.Fatal("expected error when output path is empty")
	}
}

func TestBuildArgsFullSettings(t *testing.T) {
	cli := NewCLI(Settings{
		Language:      "eng",
		RotatePages:   true,
		Deskew:        true,
		Clean:         true,
		ForceOCR:      true,
		Optimize:      3,
		JPEGQuality:   85,
		PNGQuality:    85,
		OversampleDPI: 300,
	})
	got := cli.buildArgs("in.pdf", "out.pdf")
	want := []string{
		"--rotate-pages", "--deskew", "--clean", "--force-ocr",
		"--optimize", "3",
		"--jpeg-quality", "85",
		"--png-quality", "85",
		"--oversample", "300",
		"--language", "eng",
		"in.pdf", "out.pdf",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("buildArgs = %v, want %v", got, want)
	}
}

func TestBuildArgsMinimalSettings(t *testing.T) {
	cli := NewCLI(Settings{})
	got := cli.buildArgs("in.pdf", "out.pdf")
	want := []string{"in.pdf", "out.pdf"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("buildArgs = %v, want %v", got, want)
	}
}

func TestCLIProcessMapsExitCodes(t *testing.T) {
	tests := []struct {
		code           int
		wantSubstring  string
		alreadyHasText bool
	}{
		{ExitEncryptedPDF, "encrypted", false},
		{ExitChildProcess, "OCR engine", false},
		{ExitAlreadyHasText, "already contains text", true},
		{ExitSomePagesHadText, "some pages", true},
	}
	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.code), func(t *testing.T) {
			original := commandContext
			commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
				cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
				cmd.Env = append(os.Environ(),
					"GO_WANT_HELPER_PROCESS=1",
					"OCRMYPDF_HELPER_EXIT="+strconv.Itoa(tt.code))
				return cmd
			}
			t.Cleanup(func() {
				commandContext = original
			})

			cli := NewCLI(Settings{})
			err := cli.Process(context.Background(), "in.pdf", "out.pdf")
			if err == nil {
				t.Fatal("expected error for non-zero exit")
			}
			var exitErr *ExitError
			if !errors.As(err, &exitErr) {
				t.Fatalf("expected *ExitError, got %T (%v)", err, err)
			}
			if exitErr.Code != tt.code {
				t.Fatalf("exit code = %d, want %d", exitErr.Code, tt.code)
			}
			if got := err.Error(); !strings.Contains(strings.ToLower(got), strings.ToLower(tt.wantSubstring)) {
				t.Fatalf("error %q missing %q", got, tt.wantSubstring)
			}
			if AlreadyHasText(err) != tt.alreadyHasText {
				t.Fatalf("AlreadyHasText(%v) = %v, want %v", err, AlreadyHasText(err), tt.alreadyHasText)
			}
		})
	}
}

func TestCLIProcessSuccess(t *testing.T) {
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "OCRMYPDF_HELPER_EXIT=0")
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})

	cli := NewCLI(Settings{})
	if err := cli.Process(context.Background(), "in.pdf", "out.pdf"); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
}

func TestAlreadyHasTextIgnoresOtherErrors(t *testing.T) {
	if AlreadyHasText(errors.New("boom")) {
		t.Fatal("plain errors must not match")
	}
	if AlreadyHasText(nil) {
		t.Fatal("nil must not match")
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	code, _ := strconv.Atoi(os.Getenv("OCRMYPDF_HELPER_EXIT"))
	if code != 0 {
		fmt.Fprintln(os.Stderr, "simulated ocrmypdf failure")
	}
	os.Exit(code)
}
