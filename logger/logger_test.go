package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInitJSON(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	var buf bytes.Buffer
	Init("warn", "text", &buf)
	defer func() {
		Log.SetLevel(logrus.InfoLevel)
		Log.SetFormatter(&logrus.TextFormatter{})
		Log.SetOutput(os.Stderr)
	}()

	if Log.GetLevel() != logrus.DebugLevel {
		t.Fatalf("expected env level debug, got %s", Log.GetLevel())
	}

	For("physics").Debug("tick")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one json line, got %q: %v", buf.String(), err)
	}
	if entry["system"] != "physics" || entry["msg"] != "tick" {
		t.Fatalf("unexpected entry %v", entry)
	}
}
