package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLogger_Log(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		message string
		fields  Fields
		err     error
		want    bool // should log
	}{
		{
			name:    "info message",
			level:   LevelInfo,
			message: "test message",
			fields:  Fields{"key": "value"},
			want:    true,
		},
		{
			name:    "debug below threshold",
			level:   LevelDebug,
			message: "debug message",
			want:    false, // won't log (below INFO)
		},
		{
			name:    "warn message",
			level:   LevelWarn,
			message: "unparseable date",
			want:    true,
		},
		{
			name:    "error with err",
			level:   LevelError,
			message: "error occurred",
			err:     errors.New("test error"),
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(LevelInfo, &buf)

			logger.log(tt.level, tt.message, tt.fields, tt.err)

			if logged := buf.Len() > 0; logged != tt.want {
				t.Errorf("log() logged = %v, want %v", logged, tt.want)
			}
		})
	}
}

func TestLogger_JSONEntry(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelDebug, &buf)

	logger.Error("delete failed", Fields{"id": "evt-1", "uid": "abc"}, errors.New("boom"))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}

	checks := map[string]string{
		"msg":   "delete failed",
		"level": "error",
		"id":    "evt-1",
		"uid":   "abc",
		"error": "boom",
	}
	for key, want := range checks {
		if got, _ := entry[key].(string); got != want {
			t.Errorf("entry[%q] = %q, want %q", key, got, want)
		}
	}
	if _, ok := entry["time"]; !ok {
		t.Error("entry missing time")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"Error", LevelError, false},
		{"verbose", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSetDefault(t *testing.T) {
	previous := Default()
	defer SetDefault(previous)

	var buf bytes.Buffer
	SetDefault(New(LevelWarn, &buf))

	Info("hidden", nil)
	Warn("shown", Fields{"title": "Republic Day"})

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message logged below WARN threshold")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "Republic Day") {
		t.Errorf("warn message missing from output: %q", out)
	}
}
