package printer

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestPrinter_Lines(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Successf("saved %s", "map.json")
	p.Warnf("could not load %q", "bad.json")
	p.Infof("%dx%d", 3, 4)
	p.Section("storm config")

	got := ansi.Strip(buf.String())
	assert.Equal(t, "✓ saved map.json\n! could not load \"bad.json\"\n• 3x4\nstorm config\n", got)
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	ctx := NewContext(context.Background(), p)
	assert.Same(t, p, Ctx(ctx))

	assert.NotNil(t, Ctx(context.Background()))
}
