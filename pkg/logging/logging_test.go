package logging

import "testing"

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"ERROR", LevelError},
		{"WARN", LevelWarn},
		{"WARNING", LevelWarn},
		{"SUCCESS", LevelSuccess},
		{"INFO", LevelInfo},
		{"DEBUG", LevelDebug},
		{"", LevelInfo},
		{"garbage", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	levels := map[LogLevel]string{
		LevelError:   "ERROR",
		LevelWarn:    "WARN",
		LevelSuccess: "SUCCESS",
		LevelInfo:    "INFO",
		LevelDebug:   "DEBUG",
	}
	for level, want := range levels {
		if got := level.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", level, got, want)
		}
	}
}
