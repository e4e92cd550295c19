package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/rzimmerman2022/PDF-OCR-Automation/internal/config"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// resolveTargets interprets positional arguments as either a single
// directory or an explicit list of PDF files. No arguments means the
// current directory.
func resolveTargets(args []string) (string, []string, error) {
	if len(args) == 0 {
		return ".", nil, nil
	}
	if len(args) == 1 {
		info, err := os.Stat(args[0])
		if err != nil {
			return "", nil, err
		}
		if info.IsDir() {
			return args[0], nil, nil
		}
	}
	dir := filepath.Dir(args[0])
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return "", nil, err
		}
		if info.IsDir() {
			return "", nil, fmt.Errorf("%s is a directory; pass either one directory or a list of files", arg)
		}
		if !strings.EqualFold(filepath.Ext(arg), ".pdf") {
			return "", nil, fmt.Errorf("%s is not a PDF file", arg)
		}
		// The run lock covers a single directory, so file lists must not
		// span several.
		if filepath.Dir(arg) != dir {
			return "", nil, fmt.Errorf("%s is outside %s; all files must share one directory", arg, dir)
		}
	}
	return dir, args, nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

// isTerminal reports whether writer is an interactive terminal, which gates
// progress bars and table output defaults.
func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
