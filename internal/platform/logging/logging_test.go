package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"focusflow/internal/platform/logging"
)

func TestNewWritesJSONToFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "logs", "focusflow.log")
	logger, err := logging.New("debug", path)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Named("practice").Debug("tick", zap.Int("remaining", 42))
	_ = logger.Sync()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(b)
	if !strings.Contains(line, `"logger":"practice"`) || !strings.Contains(line, `"remaining":42`) {
		t.Fatalf("unexpected log line: %s", line)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()
	if _, err := logging.New("chatty", ""); err == nil {
		t.Fatalf("expected unknown level error")
	}
}
