package anonymize

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrInputNotFound  = errors.New("input file not found")
	ErrMalformedInput = errors.New("input is not valid JSON")
	ErrOutputWrite    = errors.New("failed to write output")
)

// OutputPath derives the default output path for in by inserting the
// ".anonymized" marker before the extension:
// capture.json -> capture.anonymized.json.
func OutputPath(in string) string {
	ext := filepath.Ext(in)
	return strings.TrimSuffix(in, ext) + ".anonymized" + ext
}

// File reads the JSON document at inputPath, anonymizes it with a fresh
// run-scoped Anonymizer, and writes the pretty-printed result to outputPath.
// The output file appears fully written or not at all.
func File(inputPath, outputPath string) error {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrInputNotFound, inputPath)
		}
		return fmt.Errorf("unexpected failure reading %s: %w", inputPath, err)
	}

	out, err := New().Document(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}

	// Stage in a temp file next to the target and rename into place, so a
	// failure never leaves a truncated output behind.
	tmp, err := os.CreateTemp(filepath.Dir(outputPath), ".anonymize-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	if err := os.Rename(tmp.Name(), outputPath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	return nil
}
