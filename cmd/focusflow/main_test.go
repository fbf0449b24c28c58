package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	apperrors "focusflow/internal/platform/errors"
)

func executeCLI(args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	out, err := executeCLI(args...)
	if err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out)
	}
	return out
}

func TestDrillListIncludesBuiltins(t *testing.T) {
	vault := t.TempDir()
	out := runCLI(t, "--vault", vault, "drill", "list")
	for _, id := range []string{"focused_breathing", "body_scan", "attention_to_sound"} {
		if !strings.Contains(out, id) {
			t.Fatalf("drill list missing %s:\n%s", id, out)
		}
	}
}

func TestPrefsRoundTrip(t *testing.T) {
	vault := t.TempDir()
	runCLI(t, "--vault", vault, "prefs", "theme", "light")
	runCLI(t, "--vault", vault, "prefs", "music", "off")
	out := runCLI(t, "--vault", vault, "prefs", "show")
	if !strings.Contains(out, "theme: light") || !strings.Contains(out, "music: off") {
		t.Fatalf("prefs not persisted:\n%s", out)
	}
}

func TestSessionListEmptyVault(t *testing.T) {
	out := runCLI(t, "--vault", t.TempDir(), "session", "list")
	if strings.TrimSpace(out) != "no sessions" {
		t.Fatalf("session list = %q", out)
	}
}

func TestPracticeRunRejectsBadFeedbackUpFront(t *testing.T) {
	vault := t.TempDir()
	cases := []struct {
		args []string
		want error
	}{
		{[]string{"--rating", "9"}, apperrors.ErrInvalidRating},
		{[]string{"--sentiment", "ecstatic"}, apperrors.ErrInvalidSentiment},
	}
	for _, tc := range cases {
		args := append([]string{"--vault", vault, "practice", "run", "--minutes", "1", "--log"}, tc.args...)
		out, err := executeCLI(args...)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%v: expected %v, got %v", tc.args, tc.want, err)
		}
		if strings.Contains(out, "ctrl-c to end early") {
			t.Fatalf("%v: countdown started:\n%s", tc.args, out)
		}
	}
	out := runCLI(t, "--vault", vault, "session", "list")
	if strings.TrimSpace(out) != "no sessions" {
		t.Fatalf("rejected runs must not log: %q", out)
	}
}

func TestParseSwitch(t *testing.T) {
	t.Parallel()

	if v, err := parseSwitch(""); err != nil || v != nil {
		t.Fatalf("empty should toggle: %v %v", v, err)
	}
	if v, err := parseSwitch("ON"); err != nil || v == nil || !*v {
		t.Fatalf("ON: %v %v", v, err)
	}
	if v, err := parseSwitch("off"); err != nil || v == nil || *v {
		t.Fatalf("off: %v %v", v, err)
	}
	if _, err := parseSwitch("maybe"); err == nil {
		t.Fatal("expected error")
	}
}
