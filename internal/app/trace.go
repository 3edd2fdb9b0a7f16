package app

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/ormwire/internal/ui/style"
)

// writeTrace prints one line per finished span with its duration and the size of the
// graph when it ended.
func writeTrace(w io.Writer, spans []domain.SpanSummary) {
	ok := lipgloss.NewStyle().Foreground(style.Green)
	failed := lipgloss.NewStyle().Foreground(style.Red)
	dim := lipgloss.NewStyle().Foreground(style.Slate)

	_, _ = fmt.Fprintln(w, style.Heading("trace"))
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	for _, span := range spans {
		icon := ok.Render(style.Check)
		if span.Err != "" {
			icon = failed.Render(style.Cross)
		}
		_, _ = fmt.Fprintf(tw, "%s %s\t%s\t%s\n",
			icon,
			span.Name,
			dim.Render(span.Duration.Round(time.Microsecond).String()),
			dim.Render(fmt.Sprintf("%d services", span.Services)),
		)
	}
	_ = tw.Flush()
}
