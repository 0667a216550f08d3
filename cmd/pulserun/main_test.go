package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/pulse-runner/internal/config"
)

func TestCheckConfig(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
		return path
	}

	good := write("good.yaml", "world:\n  lanes: 4\n")
	invalid := write("invalid.yaml", "scoring:\n  combo_step: -0.5\n")
	broken := write("broken.yaml", "world: [\n")

	if err := checkConfig(""); err != nil {
		t.Errorf("no --config should pass, got %v", err)
	}
	if err := checkConfig(good); err != nil {
		t.Errorf("checkConfig(good) = %v", err)
	}
	if err := checkConfig(invalid); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("checkConfig(invalid) = %v, expected ErrInvalidConfig", err)
	}
	if err := checkConfig(broken); err == nil {
		t.Error("unparsable file should fail")
	}
	if err := checkConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}
