// Package render highlights plain-text search reports for terminals.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ColorMode selects when reports are colored.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode accepts auto, always and never.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("unknown color mode %q (want auto, always or never)", s)
	}
}

// Highlighter styles report lines: the summary, decay headers and matched rows.
type Highlighter struct {
	enabled bool
	summary lipgloss.Style
	header  lipgloss.Style
	match   lipgloss.Style
}

// NewHighlighter creates a Highlighter for output written to w.
func NewHighlighter(w io.Writer, mode ColorMode) *Highlighter {
	enabled := colorEnabled(w, mode)

	profile := termenv.Ascii
	if enabled {
		profile = termenv.ANSI256
	}
	r := lipgloss.NewRenderer(w, termenv.WithProfile(profile))

	return &Highlighter{
		enabled: enabled,
		summary: r.NewStyle().Bold(true),
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		match:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
	}
}

// Render returns report with styling applied. The text itself is unchanged.
func (h *Highlighter) Render(report string) string {
	if !h.enabled {
		return report
	}

	lines := strings.Split(report, "\n")
	for i, line := range lines {
		switch {
		case line == "":
		case i == 0:
			lines[i] = h.summary.Render(line)
		case strings.HasPrefix(line, "*"):
			lines[i] = h.match.Render(line)
		case !strings.HasPrefix(line, " "):
			lines[i] = h.header.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func colorEnabled(w io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
