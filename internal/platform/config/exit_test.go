package config

import (
	"bytes"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestWriteExitAppendsNewline(t *testing.T) {
	var buf bytes.Buffer
	writeExit(&buf, "dial %s: %v", "ws://localhost:8090/ws", "refused")
	if got, want := buf.String(), "dial ws://localhost:8090/ws: refused\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

// TestExitf_ExitsWithCode1 runs Exitf in a subprocess because os.Exit cannot
// be intercepted in-process.
func TestExitf_ExitsWithCode1(t *testing.T) {
	if os.Getenv("CONFPLAN_EXITF_SUBPROCESS") == "1" {
		Exitf("fatal: %s", "eventlog unavailable")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestExitf_ExitsWithCode1$")
	cmd.Env = append(os.Environ(), "CONFPLAN_EXITF_SUBPROCESS=1")

	out, err := cmd.CombinedOutput()

	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected *exec.ExitError, got %T: %v", err, err)
	}
	if exitErr.ExitCode() != 1 {
		t.Fatalf("exit code = %d, want 1", exitErr.ExitCode())
	}
	if !strings.Contains(string(out), "fatal: eventlog unavailable") {
		t.Fatalf("expected stderr to contain message, got %q", string(out))
	}
}
