package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetupLevelFiltering(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{level: "debug", wantDebug: true, wantInfo: true},
		{level: "info", wantDebug: false, wantInfo: true},
		{level: "warn", wantDebug: false, wantInfo: false},
		{level: "error", wantDebug: false, wantInfo: false},
		{level: "", wantDebug: false, wantInfo: true},
		{level: "garbage", wantDebug: false, wantInfo: true},
		{level: " WARN ", wantDebug: false, wantInfo: false},
	}

	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			Setup(&buf, tt.level)

			Debug("debug message")
			Info("info message")
			Error("error message")

			out := buf.String()
			if got := strings.Contains(out, "debug message"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "info message"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v", got, tt.wantInfo)
			}
			if !strings.Contains(out, "error message") {
				t.Error("error messages must always be logged")
			}
		})
	}
}

func TestLogsIncludeKeyValuePairs(t *testing.T) {
	var buf bytes.Buffer
	Setup(&buf, "info")

	Info("ticket created", "id", "ENG-42")

	out := buf.String()
	if !strings.Contains(out, "ticket created") || !strings.Contains(out, "ENG-42") {
		t.Errorf("expected message and attributes in output, got: %s", out)
	}
}

func TestMaskSensitive(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: "<not set>"},
		{input: "ab", want: "<set>"},
		{input: "abcd", want: "<set>"},
		{input: "secret-token", want: "secr...***"},
	}

	for _, tt := range tests {
		if got := MaskSensitive(tt.input); got != tt.want {
			t.Errorf("MaskSensitive(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
