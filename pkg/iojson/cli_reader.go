// Package iojson contains helpers for reading JSON input from a command
// line interface perspective.
package iojson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// FileReader reads a JSON document from the file named by its flag, or
// from stdin when the flag is unset.
type FileReader[T any] struct {
	fileFlagValue string

	// Stdin overrides os.Stdin, for tests.
	Stdin io.Reader
}

// Flag returns the --file flag bound to the reader.
func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to JSON file (reads from stdin if not provided)",
		Destination: &fr.fileFlagValue,
	}
}

// Path returns the file flag value, empty when reading stdin.
func (fr *FileReader[T]) Path() string {
	return fr.fileFlagValue
}

// SetPath sets the file to read, as if passed via the flag.
func (fr *FileReader[T]) SetPath(path string) {
	fr.fileFlagValue = path
}

// ErrTrailingData is returned when the input holds more than one JSON value.
var ErrTrailingData = errors.New("unexpected data after JSON value")

// Read decodes the input into a T. The input must hold exactly one JSON
// value, optionally surrounded by whitespace.
func (fr *FileReader[T]) Read() (T, error) {
	var input T

	reader, closer, err := fr.open()
	if err != nil {
		return input, err
	}
	defer closer()

	dec := json.NewDecoder(reader)
	if err := dec.Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		var zero T
		if err == nil {
			err = ErrTrailingData
		}
		return zero, fmt.Errorf("decode JSON: %w", err)
	}

	return input, nil
}

func (fr *FileReader[T]) open() (io.Reader, func(), error) {
	if fr.fileFlagValue != "" {
		f, err := os.Open(fr.fileFlagValue)
		if err != nil {
			return nil, nil, fmt.Errorf("open file: %w", err)
		}
		return f, func() { _ = f.Close() }, nil
	}

	if fr.Stdin != nil {
		return fr.Stdin, func() {}, nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, nil, fmt.Errorf("no input provided (stdin is a terminal); use -f flag or pipe JSON input")
	}
	return os.Stdin, func() {}, nil
}
