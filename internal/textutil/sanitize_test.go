package textutil_test

import (
	"testing"

	"pareidolia/internal/textutil"
)

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"clip.mp4", "clip.mp4"},
		{"  spaced.mp4  ", "spaced.mp4"},
		{"a/b\\c.mp4", "a-b-c.mp4"},
		{"what?.mp4", "what.mp4"},
		{"<angle>|pipe\".mp4", "anglepipe.mp4"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := textutil.SanitizeFileName(tc.in); got != tc.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidProjectName(t *testing.T) {
	valid := []string{"cats", "stop_sign", "My Dataset", "v2-final"}
	for _, name := range valid {
		if !textutil.ValidProjectName(name) {
			t.Errorf("expected %q to be valid", name)
		}
	}

	invalid := []string{"", ".", "..", ".hidden", "a/b", "a\\b", "a:b", "nul\x00"}
	for _, name := range invalid {
		if textutil.ValidProjectName(name) {
			t.Errorf("expected %q to be invalid", name)
		}
	}
}

func TestDisplayLabel(t *testing.T) {
	cases := map[string]string{
		"stop_sign":  "Stop Sign",
		"cat":        "Cat",
		"two-words":  "Two Words",
		"  spaced  ": "Spaced",
		"":           "",
	}
	for in, want := range cases {
		if got := textutil.DisplayLabel(in); got != want {
			t.Errorf("DisplayLabel(%q) = %q, want %q", in, got, want)
		}
	}
}
