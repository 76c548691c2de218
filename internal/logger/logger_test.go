package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: WARN, Format: TextFormat, Output: &buf})

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message", errors.New("boom"))

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below the level leaked through:\n%s", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("messages at or above the level missing:\n%s", out)
	}
}

func TestLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: DEBUG, Format: JSONFormat, Output: &buf})

	log.Error("fetch failed", errors.New("timeout"), map[string]interface{}{"zone": "DE"})

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if entry.Level != "ERROR" {
		t.Errorf("Level = %q, want ERROR", entry.Level)
	}
	if entry.Message != "fetch failed" {
		t.Errorf("Message = %q", entry.Message)
	}
	if entry.Error != "timeout" {
		t.Errorf("Error = %q, want timeout", entry.Error)
	}
	if entry.Fields["zone"] != "DE" {
		t.Errorf("Fields = %v, want zone=DE", entry.Fields)
	}
}

func TestLoggerTextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: INFO, Format: TextFormat, Output: &buf})

	log.Info("snapshot stored", map[string]interface{}{"path": "2026/08/24"})

	out := buf.String()
	for _, want := range []string{"INFO", "snapshot stored", "path=2026/08/24"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLoggerWithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: INFO, Format: TextFormat, Output: &buf})

	log.WithComponent("sources").Info("fetched")
	if !strings.Contains(buf.String(), "[sources]") {
		t.Errorf("component tag missing:\n%s", buf.String())
	}
}

func TestLoggerFormattedVariants(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: DEBUG, Format: TextFormat, Output: &buf})

	log.Infof("fetched %d records for %s", 24, "DE")
	if !strings.Contains(buf.String(), "fetched 24 records for DE") {
		t.Errorf("formatted output wrong:\n%s", buf.String())
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"Warn", WARN},
		{"warning", WARN},
		{"error", ERROR},
		{"fatal", FATAL},
		{"verbose", -1},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseLogFormat(t *testing.T) {
	if got := ParseLogFormat("json"); got != JSONFormat {
		t.Errorf("ParseLogFormat(json) = %v", got)
	}
	if got := ParseLogFormat("TEXT"); got != TextFormat {
		t.Errorf("ParseLogFormat(TEXT) = %v", got)
	}
	if got := ParseLogFormat("yaml"); got != -1 {
		t.Errorf("ParseLogFormat(yaml) = %v, want -1", got)
	}
}
