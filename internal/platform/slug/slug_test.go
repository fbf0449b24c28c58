package slug

import "testing"

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"focused_breathing":   "focused-breathing",
		"  Body Scan!! ":      "body-scan",
		"__attention__sound_": "attention-sound",
		"":                    "practice",
		"???":                 "practice",
	}
	for in, want := range cases {
		if got := Make(in); got != want {
			t.Fatalf("Make(%q) = %q, want %q", in, got, want)
		}
	}
}
