// Package corpus reads plain-text input files and normalizes them into the
// single lowercase string consumed by the ngram package.
package corpus

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrNoInput is returned when ReadFiles is called without any path.
var ErrNoInput = errors.New("no input files given")

// StdinPath is the path that makes ReadFiles read from standard input.
const StdinPath = "-"

// Line breaks become spaces; quotes and hyphens are removed.
var replacer = strings.NewReplacer(
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
	`"`, "",
	"-", "",
)

// Normalize applies the corpus normalization rules to text and folds it to lowercase.
func Normalize(text string) string {
	return cases.Lower(language.Und).String(replacer.Replace(text))
}

// Read normalizes the full contents of r. The result always ends in a space
// so that consecutive inputs never run their words together.
func Read(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return Normalize(string(data)) + " ", nil
}

// ReadFiles reads every path in order and concatenates the normalized contents.
// The path "-" reads standard input.
func ReadFiles(paths ...string) (string, error) {
	if len(paths) == 0 {
		return "", ErrNoInput
	}

	var builder strings.Builder
	for _, path := range paths {
		text, err := readPath(path)
		if err != nil {
			return "", err
		}
		builder.WriteString(text)
	}
	return builder.String(), nil
}

func readPath(path string) (string, error) {
	if path == StdinPath {
		text, err := Read(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read standard input: %w", err)
		}
		return text, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open input file: %w", err)
	}
	defer func(file *os.File) {
		_ = file.Close()
	}(file)

	text, err := Read(file)
	if err != nil {
		return "", fmt.Errorf("failed to read input file %s: %w", path, err)
	}
	return text, nil
}
