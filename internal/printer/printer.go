// Package printer writes styled status lines for CLI commands.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hay-kot/storm/internal/core/styles"
)

type ctxKey struct{}

// Printer writes human readable output for commands. It is kept separate
// from the log so that messages meant for the user never end up only in
// the log file.
type Printer struct {
	w io.Writer
}

// New creates a printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer stored in ctx, or one writing to stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stderr)
}

// Printf writes an unstyled line.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}

// Infof writes an informational line.
func (p *Printer) Infof(format string, args ...any) {
	p.Printf("%s %s", styles.MutedStyle.Render("•"), fmt.Sprintf(format, args...))
}

// Successf writes a success line.
func (p *Printer) Successf(format string, args ...any) {
	p.Printf("%s %s", styles.SuccessStyle.Render("✓"), fmt.Sprintf(format, args...))
}

// Warnf writes a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	p.Printf("%s %s", styles.WarnStyle.Render("!"), fmt.Sprintf(format, args...))
}

// Errorf writes an error line.
func (p *Printer) Errorf(format string, args ...any) {
	p.Printf("%s %s", styles.ErrorStyle.Render("✗"), fmt.Sprintf(format, args...))
}

// Section writes a section heading.
func (p *Printer) Section(title string) {
	p.Printf("%s", styles.BannerStyle.Render(title))
}
