// Package startup establishes the initial document for an editing session,
// either by creating a blank map or by loading one from disk.
package startup

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/hay-kot/storm/internal/core/grid"
	"github.com/hay-kot/storm/internal/core/logging"
	"github.com/hay-kot/storm/internal/core/mapfile"
)

// ErrNoDocument is returned when no initial document could be established.
var ErrNoDocument = errors.New("no initial document")

// Mode is the startup choice.
type Mode int

const (
	ModeNew Mode = iota
	ModeLoad
)

func (m Mode) String() string {
	if m == ModeLoad {
		return "load"
	}
	return "new"
}

// Prompter asks the user how to start.
type Prompter interface {
	// Mode asks whether to create a new map or load one.
	Mode() (Mode, error)
	// Dimensions asks for the size of a new map. A value outside the
	// accepted range is reported with grid.ErrInvalidDimension.
	Dimensions() (rows, cols int, err error)
	// LoadPath asks which map to load. candidates may be empty.
	LoadPath(candidates []string) (string, error)
	// Warn shows a recoverable problem to the user.
	Warn(msg string)
}

// Reader reads serialized maps.
type Reader interface {
	ReadFile(path string) ([]byte, error)
}

// Flow runs the startup sequence.
type Flow struct {
	Prompter Prompter
	Reader   Reader
	// Fill is used for new maps and for holes in loaded ones.
	Fill grid.Tile
	// DefaultPath is where a new map is saved.
	DefaultPath string
	// Candidates lists maps offered for loading.
	Candidates func() ([]string, error)
	// Path, when set, is loaded without asking for the mode.
	Path string
	// NewOnly skips the mode question and creates a new map.
	NewOnly bool

	logger zerolog.Logger
}

// Result is the established document and where it is saved.
type Result struct {
	Doc      *grid.Document
	Path     string
	Warnings []string
}

// Run prompts until a document is established. A failed load falls back
// to creating a new map. Prompter errors (for example an aborted form)
// end the flow with ErrNoDocument.
func (f *Flow) Run() (Result, error) {
	f.logger = logging.Component("startup")

	mode, err := f.mode()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrNoDocument, err)
	}
	f.logger.Debug().Stringer("mode", mode).Msg("startup mode chosen")

	var res Result
	if mode == ModeLoad {
		doc, path, err := f.load()
		if err == nil {
			return Result{Doc: doc, Path: path}, nil
		}

		var abort promptError
		if errors.As(err, &abort) {
			return Result{}, fmt.Errorf("%w: %w", ErrNoDocument, abort.err)
		}

		msg := fmt.Sprintf("could not load %s, creating a new map instead: %v", path, err)
		f.logger.Warn().Err(err).Str("path", path).Msg("load failed, falling back to new map")
		f.Prompter.Warn(msg)
		res.Warnings = append(res.Warnings, msg)
	}

	doc, err := f.create()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrNoDocument, err)
	}

	res.Doc = doc
	res.Path = f.DefaultPath
	return res, nil
}

func (f *Flow) mode() (Mode, error) {
	switch {
	case f.Path != "":
		return ModeLoad, nil
	case f.NewOnly:
		return ModeNew, nil
	default:
		return f.Prompter.Mode()
	}
}

// promptError marks an error returned by the prompter itself rather than
// by the map being loaded.
type promptError struct{ err error }

func (e promptError) Error() string { return e.err.Error() }

func (f *Flow) load() (*grid.Document, string, error) {
	path, err := f.loadPath()
	if err != nil {
		return nil, "", promptError{err: err}
	}

	data, err := f.Reader.ReadFile(path)
	if err != nil {
		return nil, path, err
	}

	doc, err := mapfile.Decode(data, f.Fill)
	if err != nil {
		return nil, path, err
	}

	f.logger.Info().Str("path", path).Int("rows", doc.Rows()).Int("cols", doc.Cols()).Msg("map loaded")
	return doc, path, nil
}

func (f *Flow) loadPath() (string, error) {
	if f.Path != "" {
		return f.Path, nil
	}

	var candidates []string
	if f.Candidates != nil {
		found, err := f.Candidates()
		if err != nil {
			f.logger.Warn().Err(err).Msg("listing map candidates")
		}
		candidates = found
	}

	return f.Prompter.LoadPath(candidates)
}

// create asks for dimensions until they are valid.
func (f *Flow) create() (*grid.Document, error) {
	for {
		rows, cols, err := f.Prompter.Dimensions()
		if err == nil {
			var doc *grid.Document
			doc, err = grid.New(rows, cols, f.Fill)
			if err == nil {
				f.logger.Info().Int("rows", rows).Int("cols", cols).Msg("new map created")
				return doc, nil
			}
		}

		if !errors.Is(err, grid.ErrInvalidDimension) {
			return nil, err
		}

		f.logger.Debug().Err(err).Msg("invalid dimensions, asking again")
		f.Prompter.Warn(err.Error())
	}
}

// FindMaps returns the files in fsys matching pattern, sorted.
func FindMaps(fsys fs.FS, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	slices.Sort(matches)
	return matches, nil
}
