package logging

import "testing"

func TestIsValidLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  bool
	}{
		{name: "debug", level: "DEBUG", want: true},
		{name: "info", level: "INFO", want: true},
		{name: "warn", level: "WARN", want: true},
		{name: "error", level: "ERROR", want: true},
		{name: "lowercase_rejected", level: "info", want: false},
		{name: "unknown_level", level: "TRACE", want: false},
		{name: "empty", level: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidLogLevel(tt.level); got != tt.want {
				t.Errorf("IsValidLogLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestValidateLogLevel(t *testing.T) {
	if err := ValidateLogLevel("INFO"); err != nil {
		t.Errorf("ValidateLogLevel(INFO) unexpected error: %v", err)
	}
	if err := ValidateLogLevel("NOISY"); err == nil {
		t.Error("ValidateLogLevel(NOISY) expected error")
	}
}
