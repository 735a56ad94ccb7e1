package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	colorPrimary = lipgloss.Color("#64b5f6")
	colorSuccess = lipgloss.Color("#66bb6a")
	colorWarning = lipgloss.Color("#fff59d")
	colorMuted   = lipgloss.Color("#888888")
)

// styles holds the renderers for one command run; plain when color is off.
type styles struct {
	header  lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	muted   lipgloss.Style
	bold    lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{header: plain, success: plain, warning: plain, muted: plain, bold: plain}
	}
	return styles{
		header:  lipgloss.NewStyle().Foreground(colorPrimary).Bold(true),
		success: lipgloss.NewStyle().Foreground(colorSuccess),
		warning: lipgloss.NewStyle().Foreground(colorWarning),
		muted:   lipgloss.NewStyle().Foreground(colorMuted),
		bold:    lipgloss.NewStyle().Bold(true),
	}
}

// colorEnabled reports whether w is a terminal and color was not disabled.
func colorEnabled(w io.Writer, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// table renders aligned columns with a styled header and separator.
type table struct {
	st      styles
	headers []string
	rows    [][]string
	widths  []int
}

func newTable(st styles, headers ...string) *table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	return &table{st: st, headers: headers, widths: widths}
}

func (t *table) addRow(values ...string) {
	row := make([]string, len(t.headers))
	for i := range t.headers {
		if i < len(values) {
			row[i] = values[i]
		}
		if w := lipgloss.Width(row[i]); w > t.widths[i] {
			t.widths[i] = w
		}
	}
	t.rows = append(t.rows, row)
}

func (t *table) render() string {
	if len(t.headers) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, h := range t.headers {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(t.st.header.Render(pad(h, t.widths[i])))
	}
	sb.WriteString("\n")
	for i, w := range t.widths {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(t.st.muted.Render(strings.Repeat("─", w)))
	}
	sb.WriteString("\n")
	for _, row := range t.rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(pad(cell, t.widths[i]))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
