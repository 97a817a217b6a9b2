package logx

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewWriterLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "portsinfo", false)
	l.Debug("hidden")
	l.Info("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line leaked: %q", out)
	}
	if !strings.Contains(out, "INFO") || !strings.Contains(out, "portsinfo") || !strings.Contains(out, "shown") {
		t.Fatalf("out = %q", out)
	}

	buf.Reset()
	NewWriter(&buf, "x", true).Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Fatalf("debug not enabled: %q", buf.String())
	}
}

func TestConfigLevel(t *testing.T) {
	if Config(false).Level.Enabled(-1) {
		t.Fatal("debug enabled at info")
	}
	if !Config(true).Level.Enabled(-1) {
		t.Fatal("debug disabled in debug mode")
	}
}
