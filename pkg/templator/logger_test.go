package templator

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	tests := []struct {
		name           string
		level          LogLevel
		setupFunc      func(*Logger)
		expectedOutput []string
		notExpected    []string
	}{
		{
			name:  "debug level shows all messages",
			level: LogDebug,
			setupFunc: func(l *Logger) {
				l.Debug("debug message")
				l.Info("info message")
				l.Warn("warn message")
				l.Error("error message")
			},
			expectedOutput: []string{
				"[DEBUG] debug message",
				"[INFO] info message",
				"[WARN] warn message",
				"[ERROR] error message",
			},
		},
		{
			name:  "info level hides debug messages",
			level: LogInfo,
			setupFunc: func(l *Logger) {
				l.Debug("debug message")
				l.Info("info message")
			},
			expectedOutput: []string{"[INFO] info message"},
			notExpected:    []string{"[DEBUG]", "debug message"},
		},
		{
			name:  "error level shows only errors",
			level: LogError,
			setupFunc: func(l *Logger) {
				l.Info("info message")
				l.Warn("warn message")
				l.Error("error message")
			},
			expectedOutput: []string{"[ERROR] error message"},
			notExpected:    []string{"[INFO]", "[WARN]"},
		},
		{
			name:  "off level shows nothing",
			level: LogOff,
			setupFunc: func(l *Logger) {
				l.Error("error message")
			},
			notExpected: []string{"[ERROR]"},
		},
		{
			name:  "structured fields in key order",
			level: LogDebug,
			setupFunc: func(l *Logger) {
				l.WithFields(Fields{
					"record": 3,
					"file":   "letter_3.docx",
				}).Info("wrote document")
			},
			expectedOutput: []string{"[INFO] wrote document file=letter_3.docx record=3"},
		},
		{
			name:  "derived loggers accumulate fields",
			level: LogDebug,
			setupFunc: func(l *Logger) {
				l.WithField("a", 1).WithField("b", 2).Warn("both")
			},
			expectedOutput: []string{"[WARN] both a=1 b=2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, tt.level)

			tt.setupFunc(logger)

			output := buf.String()
			for _, expected := range tt.expectedOutput {
				if !strings.Contains(output, expected) {
					t.Errorf("Expected output to contain %q, but it didn't.\nOutput: %s", expected, output)
				}
			}
			for _, notExpected := range tt.notExpected {
				if strings.Contains(output, notExpected) {
					t.Errorf("Expected output NOT to contain %q, but it did.\nOutput: %s", notExpected, output)
				}
			}
		})
	}
}

func TestGlobalLogger(t *testing.T) {
	original := GetLogger()
	defer SetLogger(original)

	var buf bytes.Buffer
	SetLogger(NewLogger(&buf, LogDebug))

	Debug("test debug")
	Info("test info")
	Warn("test warn")
	Error("test error")
	WithField("k", "v").Info("with field")

	output := buf.String()
	for _, expected := range []string{
		"[DEBUG] test debug",
		"[INFO] test info",
		"[WARN] test warn",
		"[ERROR] test error",
		"[INFO] with field k=v",
	} {
		if !strings.Contains(output, expected) {
			t.Errorf("Expected output to contain %q, but it didn't.\nOutput: %s", expected, output)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   LogDebug,
		"INFO":    LogInfo,
		"warn":    LogWarn,
		"error":   LogError,
		"off":     LogOff,
		"verbose": LogInfo,
	}
	for input, want := range tests {
		if got := ParseLogLevel(input); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestUpdateLoggerFromConfig(t *testing.T) {
	original := GetLogger()
	defer SetLogger(original)

	logger := NewLogger(nil, LogInfo)
	SetLogger(logger)

	config := DefaultConfig()
	config.LogLevel = "debug"
	UpdateLoggerFromConfig(config)

	if !logger.IsDebugMode() {
		t.Errorf("Level() = %v, want DEBUG", logger.Level())
	}
}

func TestLogger_WithFieldsLevel(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger(&buf, LogInfo)
	child := parent.WithField("record", 1)

	if child.Level() != LogInfo {
		t.Errorf("child Level() = %v, want %v", child.Level(), LogInfo)
	}

	parent.SetLevel(LogError)
	child.Info("still shown")
	if !strings.Contains(buf.String(), "[INFO] still shown") {
		t.Errorf("child should keep the level it was derived with, got %q", buf.String())
	}

	buf.Reset()
	child.SetLevel(LogOff)
	parent.Error("parent error")
	if !strings.Contains(buf.String(), "[ERROR] parent error") {
		t.Errorf("child SetLevel() should not change the parent, got %q", buf.String())
	}
}
