package cli

import (
	"strings"
	"testing"
)

func TestUsagef(t *testing.T) {
	err := Usagef("invalid option %q", "--=x")
	if err == nil {
		t.Fatal("Usagef returned nil")
	}
	if got := err.Error(); got != `invalid option "--=x"` {
		t.Errorf("Error() = %q", got)
	}
}

func TestProfileErrorMessage(t *testing.T) {
	err := &ProfileError{Profile: "dev", Command: "start"}
	msg := err.Error()

	if !strings.Contains(msg, `"dev"`) {
		t.Errorf("message %q missing profile name", msg)
	}
	if !strings.Contains(msg, `"start"`) {
		t.Errorf("message %q missing command name", msg)
	}
	if !strings.Contains(msg, "start-dev") {
		t.Errorf("message %q missing start-dev hint", msg)
	}
}

func TestExitCodes(t *testing.T) {
	if ExitOK != 0 {
		t.Errorf("ExitOK = %d, want 0", ExitOK)
	}
	if ExitFailure != 1 {
		t.Errorf("ExitFailure = %d, want 1", ExitFailure)
	}
	if ExitUsage != 2 {
		t.Errorf("ExitUsage = %d, want 2", ExitUsage)
	}
}
