package editor

import (
	"fmt"
	"path/filepath"
)

// Event is a discrete input the controller can handle.
type Event interface {
	event()
}

// MoveEvent moves the selection one cell.
type MoveEvent struct {
	Dir Direction
}

// TypeEvent writes a character into the selected cell.
type TypeEvent struct {
	Char rune
}

// ClickEvent selects the cell under a pixel coordinate.
type ClickEvent struct {
	X, Y     int
	TileSize int
}

// SaveEvent writes the document to Path.
type SaveEvent struct {
	Path string
}

// LoadEvent replaces the document with the map stored at Path.
type LoadEvent struct {
	Path string
}

func (MoveEvent) event()  {}
func (TypeEvent) event()  {}
func (ClickEvent) event() {}
func (SaveEvent) event()  {}
func (LoadEvent) event()  {}

// Result describes the outcome of a handled event.
type Result struct {
	// Changed is true when the document or the selection changed.
	Changed bool
	// Status is a short human readable message, empty for routine edits.
	Status string
	// Err is set when a save or load failed. The failure is recoverable:
	// the editing session continues with its previous state.
	Err error
}

// Handle applies ev and reports what happened. Every event is processed
// atomically against the current document and selection.
func (c *Controller) Handle(ev Event) Result {
	switch ev := ev.(type) {
	case MoveEvent:
		return Result{Changed: c.MoveSelection(ev.Dir)}
	case TypeEvent:
		return Result{Changed: c.TypeCharacter(ev.Char)}
	case ClickEvent:
		return Result{Changed: c.SelectAt(ev.X, ev.Y, ev.TileSize)}
	case SaveEvent:
		if err := c.Save(ev.Path); err != nil {
			return Result{Status: "save failed", Err: err}
		}
		return Result{Status: fmt.Sprintf("saved %s", filepath.Base(ev.Path))}
	case LoadEvent:
		if err := c.Load(ev.Path); err != nil {
			return Result{Status: "load failed", Err: err}
		}
		return Result{
			Changed: true,
			Status:  fmt.Sprintf("loaded %s (%dx%d)", filepath.Base(ev.Path), c.doc.Rows(), c.doc.Cols()),
		}
	default:
		return Result{}
	}
}
