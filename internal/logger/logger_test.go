package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestInitLogger_WritesToFile(t *testing.T) {
	t.Cleanup(Disable)
	path := filepath.Join(t.TempDir(), "budgetring.log")

	if err := InitLogger(Options{File: path, Verbose: true}); err != nil {
		t.Fatalf("InitLogger: %v", err)
	}
	Debug("layout computed", zap.Int("segments", 3))
	_ = Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "layout computed") || !strings.Contains(out, "segments") {
		t.Fatalf("log output missing entry: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("file output contains color escapes: %q", out)
	}
}

func TestInitLogger_QuietDropsInfo(t *testing.T) {
	t.Cleanup(Disable)
	path := filepath.Join(t.TempDir(), "quiet.log")

	if err := InitLogger(Options{File: path, Quiet: true}); err != nil {
		t.Fatalf("InitLogger: %v", err)
	}
	Info("hidden")
	Warn("shown")
	_ = Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") {
		t.Errorf("info entry written in quiet mode")
	}
	if !strings.Contains(string(data), "shown") {
		t.Errorf("warn entry missing in quiet mode")
	}
}
