package logger

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInit(t *testing.T) {
	// Test non-verbose (default)
	Init(false)
	if L().GetLevel() != logrus.WarnLevel {
		t.Errorf("Init(false) should set level to warn, got %v", L().GetLevel())
	}

	// Test verbose
	Init(true)
	if L().GetLevel() != logrus.DebugLevel {
		t.Errorf("Init(true) should set level to debug, got %v", L().GetLevel())
	}

	// Reset
	Init(false)
}

func TestSetLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		want    logrus.Level
		wantErr bool
	}{
		{"debug", "debug", logrus.DebugLevel, false},
		{"info", "info", logrus.InfoLevel, false},
		{"warn", "warn", logrus.WarnLevel, false},
		{"error", "error", logrus.ErrorLevel, false},
		{"unknown level", "loud", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SetLevel(tt.level)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetLevel(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
			}
			if !tt.wantErr && L().GetLevel() != tt.want {
				t.Errorf("SetLevel(%q) level = %v, want %v", tt.level, L().GetLevel(), tt.want)
			}
		})
	}

	// Reset
	Init(false)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	tests := []struct {
		name       string
		level      string
		logFunc    func(string, ...interface{})
		shouldShow bool
	}{
		{"debug at debug level", "debug", Debug, true},
		{"info at debug level", "debug", Info, true},
		{"warn at debug level", "debug", Warn, true},
		{"error at debug level", "debug", Error, true},
		{"debug at info level", "info", Debug, false},
		{"info at info level", "info", Info, true},
		{"debug at warn level", "warn", Debug, false},
		{"info at warn level", "warn", Info, false},
		{"warn at warn level", "warn", Warn, true},
		{"error at warn level", "warn", Error, true},
		{"debug at error level", "error", Debug, false},
		{"warn at error level", "error", Warn, false},
		{"error at error level", "error", Error, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			if err := SetLevel(tt.level); err != nil {
				t.Fatalf("SetLevel(%q) error = %v", tt.level, err)
			}

			tt.logFunc("test message")

			hasOutput := buf.Len() > 0
			if hasOutput != tt.shouldShow {
				t.Errorf("got output=%v, want output=%v", hasOutput, tt.shouldShow)
			}
		})
	}

	// Reset
	Init(false)
}

func TestLogFormatting(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	Init(true)
	defer func() {
		SetOutput(os.Stderr)
		Init(false)
	}()

	Debug("test %s %d", "message", 42)
	output := buf.String()

	if !strings.Contains(output, "level=debug") {
		t.Errorf("Missing debug level: %s", output)
	}

	if !strings.Contains(output, `msg="test message 42"`) {
		t.Errorf("Missing formatted message: %s", output)
	}
}

func TestLogFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	Init(true)
	defer func() {
		SetOutput(os.Stderr)
		Init(false)
	}()

	DebugFields("rendered", map[string]interface{}{
		"key1": "value1",
		"key2": 42,
	})
	output := buf.String()

	if !strings.Contains(output, "key1=value1") {
		t.Errorf("Missing key1 field: %s", output)
	}

	if !strings.Contains(output, "key2=42") {
		t.Errorf("Missing key2 field: %s", output)
	}

	if !strings.Contains(output, "msg=rendered") {
		t.Errorf("Missing message: %s", output)
	}
}

func TestUseJSON(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	Init(true)
	UseJSON()
	defer func() {
		SetOutput(os.Stderr)
		Init(false)
		L().SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}()

	InfoFields("listening", map[string]interface{}{"addr": ":8000"})
	output := buf.String()

	if !strings.Contains(output, `"msg":"listening"`) {
		t.Errorf("JSON output missing msg field: %s", output)
	}
	if !strings.Contains(output, `"addr":":8000"`) {
		t.Errorf("JSON output missing custom field: %s", output)
	}
	if !strings.Contains(output, `"level":"info"`) {
		t.Errorf("JSON output missing level field: %s", output)
	}
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	Init(true)
	defer func() {
		SetOutput(os.Stderr)
		Init(false)
	}()

	// Test with nil error
	buf.Reset()
	LogError(nil, "should not log")
	if buf.Len() > 0 {
		t.Error("LogError with nil should not produce output")
	}

	// Test with actual error
	buf.Reset()
	testErr := fmt.Errorf("test error")
	LogError(testErr, "operation failed")
	output := buf.String()
	if !strings.Contains(output, "level=error") {
		t.Errorf("LogError should produce error level: %s", output)
	}
	if !strings.Contains(output, `msg="operation failed"`) {
		t.Errorf("LogError should contain message: %s", output)
	}
	if !strings.Contains(output, `error="test error"`) {
		t.Errorf("LogError should contain error field: %s", output)
	}
}

func TestConcurrentLogging(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	Init(true)
	defer func() {
		SetOutput(os.Stderr)
		Init(false)
	}()

	// Run multiple goroutines logging concurrently
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			Debug("goroutine %d", n)
			Info("info from %d", n)
			DebugFields("fields", map[string]interface{}{"n": n})
		}(i)
	}
	wg.Wait()

	// Count log lines
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	expected := 300 // 100 goroutines * 3 log calls each

	if len(lines) != expected {
		t.Errorf("Expected %d log lines, got %d", expected, len(lines))
	}

	// Check for corrupted lines (each line should carry a level)
	for i, line := range lines {
		if !strings.Contains(line, "level=") {
			t.Errorf("Line %d may be corrupted: %s", i, line)
		}
	}
}

func TestAllLogFunctions(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	Init(true)
	defer func() {
		SetOutput(os.Stderr)
		Init(false)
	}()

	// Test all basic log functions
	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")

	output := buf.String()
	if !strings.Contains(output, "level=debug") {
		t.Error("Missing debug output")
	}
	if !strings.Contains(output, "level=info") {
		t.Error("Missing info output")
	}
	if !strings.Contains(output, "level=warning") {
		t.Error("Missing warning output")
	}
	if !strings.Contains(output, "level=error") {
		t.Error("Missing error output")
	}

	// Test all field log functions
	buf.Reset()
	InfoFields("info", map[string]interface{}{"test": 1})
	WarnFields("warn", map[string]interface{}{"test": 2})
	ErrorFields("error", map[string]interface{}{"test": 3})

	output = buf.String()
	if !strings.Contains(output, "test=1") {
		t.Error("InfoFields output incorrect")
	}
	if !strings.Contains(output, "test=2") {
		t.Error("WarnFields output incorrect")
	}
	if !strings.Contains(output, "test=3") {
		t.Error("ErrorFields output incorrect")
	}
}
