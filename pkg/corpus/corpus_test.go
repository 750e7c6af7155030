package corpus

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Newlines become spaces", input: "one\ntwo\r\nthree", expected: "one two three"},
		{name: "Quotes removed", input: `he said "hi".`, expected: "he said hi."},
		{name: "Hyphens removed", input: "well-known co-op", expected: "wellknown coop"},
		{name: "Lowercased", input: "The CAT Sat.", expected: "the cat sat."},
		{name: "Non-ASCII lowercased", input: "ÉMILE ÜBER", expected: "émile über"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.input); got != tc.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestRead(t *testing.T) {
	got, err := Read(strings.NewReader("Hello\nWorld."))
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if got != "hello world. " {
		t.Errorf("Read() = %q, want %q", got, "hello world. ")
	}
}

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")
	if err := os.WriteFile(first, []byte("The cat\nsat."), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte(`"Run," said the dog-walker.`), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFiles(first, second)
	if err != nil {
		t.Fatalf("ReadFiles() failed: %v", err)
	}
	expected := "the cat sat. run, said the dogwalker. "
	if got != expected {
		t.Errorf("ReadFiles() = %q, want %q", got, expected)
	}
}

func TestReadFilesErrors(t *testing.T) {
	if _, err := ReadFiles(); !errors.Is(err, ErrNoInput) {
		t.Errorf("expected ErrNoInput, got %v", err)
	}

	missing := filepath.Join(t.TempDir(), "missing.txt")
	_, err := ReadFiles(missing)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "missing.txt") {
		t.Errorf("expected the error to name the file, got %q", err.Error())
	}
}
