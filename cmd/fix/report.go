package fix

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/LegacyCodeHQ/incfix/internal/headers"
	"github.com/LegacyCodeHQ/incfix/internal/rewrite"
	"github.com/charmbracelet/lipgloss"
)

// printer writes the human readable run report. Colors are only emitted when
// the destination is a terminal.
type printer struct {
	w       io.Writer
	baseDir string
	verbose bool

	replaced  lipgloss.Style
	converted lipgloss.Style
	failed    lipgloss.Style
	dim       lipgloss.Style
	heading   lipgloss.Style
}

func newPrinter(w io.Writer, baseDir string, verbose bool) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:         w,
		baseDir:   baseDir,
		verbose:   verbose,
		replaced:  r.NewStyle().Foreground(lipgloss.Color("42")),
		converted: r.NewStyle().Foreground(lipgloss.Color("81")),
		failed:    r.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		dim:       r.NewStyle().Foreground(lipgloss.Color("240")),
		heading:   r.NewStyle().Bold(true),
	}
}

func (p *printer) renames(renames []headers.Rename) {
	for _, r := range renames {
		fmt.Fprintf(p.w, "Rename: %s  ->  %s\n", p.rel(r.From), p.rel(r.To))
	}
}

func (p *printer) report(report rewrite.Report, perDir, dryRun bool) {
	for _, file := range report.Files {
		p.file(file)
	}

	if perDir {
		fmt.Fprintln(p.w)
		for _, d := range report.Directories {
			fmt.Fprintf(p.w, "%s\n", p.heading.Render(p.rel(d.Dir)))
			p.stats(d.Stats, "  ")
		}
	}

	fmt.Fprintln(p.w)
	p.stats(report.Total, "")

	if dryRun {
		fmt.Fprintln(p.w, p.dim.Render("Dry run: no files were written."))
	}
}

func (p *printer) file(file rewrite.FileResult) {
	name := p.rel(file.Path)
	for _, c := range file.Changes {
		where := fmt.Sprintf("%s:%d", name, c.Line)
		from := spell(c.From, c.FromSystem)
		switch c.Kind {
		case rewrite.ChangeReplaced:
			fmt.Fprintf(p.w, "%s: %s %s  ->  %s\n", where, p.replaced.Render("replace"), from, spell(c.To, c.ToSystem))
		case rewrite.ChangeRetyped:
			fmt.Fprintf(p.w, "%s: %s %s  ->  %s\n", where, p.converted.Render("convert"), from, spell(c.To, c.ToSystem))
		case rewrite.ChangeFailed:
			fmt.Fprintf(p.w, "%s: %s %s\n", where, p.failed.Render("failed to fix"), from)
		case rewrite.ChangeUntouched:
			if p.verbose {
				fmt.Fprintf(p.w, "%s: %s\n", where, p.dim.Render("untouched "+from))
			}
		}
		if p.verbose {
			for _, alt := range c.Alternatives {
				fmt.Fprintf(p.w, "    %s\n", p.dim.Render("alternative: "+alt))
			}
		}
	}
}

func (p *printer) stats(s rewrite.Stats, indent string) {
	rows := []struct {
		label string
		value int
	}{
		{"Replaced    ", s.Replaced},
		{"System->user", s.SystemToUser},
		{"User->system", s.UserToSystem},
		{"Untouched   ", s.Untouched},
		{"Failed      ", s.Failed},
	}
	for _, row := range rows {
		fmt.Fprintf(p.w, "%s%s : %d / %d\n", indent, row.label, row.value, s.Total)
	}
}

func (p *printer) rel(path string) string {
	if p.baseDir == "" {
		return path
	}
	rel, err := filepath.Rel(p.baseDir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func spell(path string, system bool) string {
	if system {
		return "<" + path + ">"
	}
	return `"` + path + `"`
}
