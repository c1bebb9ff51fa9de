package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/fractals/internal/config"
	"github.com/Faultbox/fractals/internal/fractal"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestCmdRunCompleteTree(t *testing.T) {
	isolate(t)

	var out bytes.Buffer
	err := cmdRun([]string{"-depth", "2", "-probability", "1", "-seed", "7", "-duration", "60", "-tick", "10", "-tree"}, &out)
	if err != nil {
		t.Fatalf("cmdRun: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"Seed:     7",
		"Nodes:    31 of 31 possible",
		"Pending:  0",
		"    0      1",
		"    1      5",
		"    2     25",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if got := strings.Count(text, "forward"); got != 6 {
		t.Errorf("tree lists %d forward children, want 6", got)
	}
}

func TestCmdPalette(t *testing.T) {
	isolate(t)

	var out bytes.Buffer
	if err := cmdPalette([]string{"-depth", "3"}, &out); err != nil {
		t.Fatalf("cmdPalette: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header and 4 rows, got %d lines:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[1], "(1.000, 1.000, 1.000)") {
		t.Errorf("depth 0 should be white: %s", lines[1])
	}
	if !strings.Contains(lines[4], "(1.000, 0.000, 1.000)") || !strings.Contains(lines[4], "(1.000, 0.000, 0.000)") {
		t.Errorf("last row should be magenta and red: %s", lines[4])
	}
}

func TestCmdPaletteRejectsInvalidDepth(t *testing.T) {
	isolate(t)
	t.Setenv("FRACTAL_MAX_DEPTH", "0")

	var out bytes.Buffer
	err := cmdPalette(nil, &out)
	if !errors.Is(err, fractal.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no palette output, got:\n%s", out.String())
	}
}

func TestCmdConfigSave(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "saved", "fractal.toml")
	var out bytes.Buffer
	if err := cmdConfig([]string{"-depth", "6", "-out", path}, &out); err != nil {
		t.Fatalf("cmdConfig -out: %v", err)
	}
	if !strings.Contains(out.String(), path) {
		t.Errorf("output should name the saved file: %s", out.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved config: %v", err)
	}
	if !strings.Contains(string(data), "max_depth = 6") {
		t.Errorf("saved toml missing depth:\n%s", data)
	}

	out.Reset()
	if err := cmdConfig([]string{"-depth", "5", "-save"}, &out); err != nil {
		t.Fatalf("cmdConfig -save: %v", err)
	}
	cfg, err := config.Load(nil)
	if err != nil {
		t.Fatalf("reload saved config: %v", err)
	}
	if cfg.Fractal.MaxDepth != 5 {
		t.Errorf("reloaded max depth = %d, want 5", cfg.Fractal.MaxDepth)
	}
}

func TestCmdConfig(t *testing.T) {
	isolate(t)

	var out bytes.Buffer
	if err := cmdConfig([]string{"-depth", "5", "-format", "toml"}, &out); err != nil {
		t.Fatalf("cmdConfig: %v", err)
	}
	if !strings.Contains(out.String(), "max_depth = 5") {
		t.Errorf("toml output missing depth:\n%s", out.String())
	}

	out.Reset()
	if err := cmdConfig(nil, &out); err != nil {
		t.Fatalf("cmdConfig: %v", err)
	}
	if !strings.Contains(out.String(), "max_depth: 4") {
		t.Errorf("yaml output missing default depth:\n%s", out.String())
	}
}

func TestCmdRunBadFlag(t *testing.T) {
	isolate(t)
	if err := cmdRun([]string{"-depth", "0", "-probability", "2"}, &bytes.Buffer{}); err == nil {
		t.Error("expected invalid probability to fail")
	}
}
