package file_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"grabarr/internal/file"
)

// TestSanitizeName checks reserved characters, whitespace and length handling ---------------------
func TestSanitizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		maxLen int
		want   string
	}{
		{"empty defaults", "", 120, "video"},
		{"whitespace defaults", "   \t ", 120, "video"},
		{"reserved chars", `a<b>c:d"e/f\g|h?i*j`, 120, "a_b_c_d_e_f_g_h_i_j"},
		{"nul byte", "a\x00b", 120, "a_b"},
		{"collapse spaces", "  My   great\t\tvideo  ", 120, "My great video"},
		{"trim dots", "...hidden title...", 120, "hidden title"},
		{"truncate", "abcdefghij", 4, "abcd"},
		{"truncate then trim", "abc. def", 4, "abc"},
		{"only dots", "....", 120, "video"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := file.SanitizeName(tt.raw, tt.maxLen); got != tt.want {
				t.Fatalf("SanitizeName(%q, %d) = %q, want %q", tt.raw, tt.maxLen, got, tt.want)
			}
		})
	}
}

// TestSanitizeNameInvariants checks the output rules over a spread of awkward inputs ---------------------
func TestSanitizeNameInvariants(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Ünïcödé title: part 1/2",
		" . leading dot and space",
		"trailing dots and spaces . . ",
		strings.Repeat("long title ", 40),
		"tab\tnew\nline",
		`"quoted" <tag> |pipe| ?*`,
	}

	for _, maxLen := range []int{5, 17, 120} {
		for _, in := range inputs {
			got := file.SanitizeName(in, maxLen)

			if strings.ContainsAny(got, "<>:\"/\\|?*\x00") {
				t.Errorf("SanitizeName(%q) = %q contains reserved characters", in, got)
			}
			if strings.TrimSpace(got) != got || strings.Trim(got, ".") != got {
				t.Errorf("SanitizeName(%q) = %q has leading/trailing whitespace or dots", in, got)
			}
			if n := utf8.RuneCountInString(got); n > maxLen {
				t.Errorf("SanitizeName(%q) length %d exceeds %d", in, n, maxLen)
			}
		}
	}
}

// TestUniquePath checks sequential disambiguation ---------------------
func TestUniquePath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	base := filepath.Join(dir, "clip.mp4")

	seen := map[string]bool{}
	for i := 0; i < 4; i++ {
		p := file.UniquePath(base)
		if seen[p] {
			t.Fatalf("UniquePath returned %q twice", p)
		}
		seen[p] = true

		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %q: %v", p, err)
		}
	}

	for _, want := range []string{"clip.mp4", "clip (1).mp4", "clip (2).mp4", "clip (3).mp4"} {
		if !seen[filepath.Join(dir, want)] {
			t.Errorf("expected %q to be allocated, got %v", want, seen)
		}
	}
}

// TestOutputPath checks title sanitizing and temp tags ---------------------
func TestOutputPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	got := file.OutputPath(dir, "A/B", ".video", ".webm")
	if want := filepath.Join(dir, "A_B.video.webm"); got != want {
		t.Fatalf("OutputPath = %q, want %q", got, want)
	}
}

// TestFormatDuration checks both layouts and the zero case ---------------------
func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := map[int]string{
		-5:    "00:00",
		0:     "00:00",
		59:    "00:59",
		61:    "01:01",
		3599:  "59:59",
		3600:  "01:00:00",
		86399: "23:59:59",
	}
	for in, want := range tests {
		if got := file.FormatDuration(in); got != want {
			t.Errorf("FormatDuration(%d) = %q, want %q", in, got, want)
		}
	}
}

// TestResolveDefaultOutputDir checks the resolver returns a usable directory ---------------------
func TestResolveDefaultOutputDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("USERPROFILE", "")
	t.Setenv("HOME", home)

	got := file.ResolveDefaultOutputDir()
	if want := filepath.Join(home, "Downloads"); got != want {
		t.Fatalf("ResolveDefaultOutputDir() = %q, want %q", got, want)
	}
	if _, err := os.Stat(filepath.Join(got, ".probe_write")); !os.IsNotExist(err) {
		t.Fatalf("probe marker left behind in %q", got)
	}
}

// TestRemoveQuietly checks missing files are ignored ---------------------
func TestRemoveQuietly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := filepath.Join(dir, "tmp.audio.m4a")
	if err := os.WriteFile(p, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	file.RemoveQuietly(p, filepath.Join(dir, "missing"), "")

	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Fatalf("expected %q removed", p)
	}
}

// TestReadFileLines checks comments and blanks are skipped ---------------------
func TestReadFileLines(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "urls.txt")
	content := "# list\nhttps://a.example/1\n\n  https://a.example/2  \n"
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	lines, err := file.ReadFileLines(p)
	if err != nil {
		t.Fatalf("ReadFileLines: %v", err)
	}
	if len(lines) != 2 || lines[1] != "https://a.example/2" {
		t.Fatalf("unexpected lines %v", lines)
	}
}
