package lesson

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for lesson loading.
var (
	ErrNotFound      = errors.New("lesson source not found")
	ErrEmptyLibrary  = errors.New("library contains no text files")
	ErrNotADirectory = errors.New("library path is not a directory")
	ErrNoText        = errors.New("no text to practice with")
)

// FromFile loads a Lesson from a text file. Trailing whitespace is
// stripped; internal formatting is preserved.
func FromFile(path string) (Lesson, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Lesson{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Lesson{}, fmt.Errorf("failed to read text file: %w", err)
	}
	return New(strings.TrimRight(string(data), " \t\r\n")), nil
}

// RandomFromDir loads a Lesson from a randomly chosen regular file in dir.
func RandomFromDir(dir string, rnd *rand.Rand) (Lesson, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Lesson{}, fmt.Errorf("%w: %s", ErrNotFound, dir)
		}
		return Lesson{}, fmt.Errorf("failed to stat library: %w", err)
	}
	if !info.IsDir() {
		return Lesson{}, fmt.Errorf("%w: %s", ErrNotADirectory, dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Lesson{}, fmt.Errorf("failed to read library: %w", err)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			files = append(files, entry.Name())
		}
	}
	if len(files) == 0 {
		return Lesson{}, fmt.Errorf("%w: %s", ErrEmptyLibrary, dir)
	}
	return FromFile(filepath.Join(dir, files[rnd.Intn(len(files))]))
}

// ListLibrary returns the names of regular files in a library directory.
func ListLibrary(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, dir)
		}
		return nil, fmt.Errorf("failed to stat library: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read library: %w", err)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}
