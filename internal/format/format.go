// Package format renders evaluation reports as terminal or Markdown
// tables for the operator CLI.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/loganlgraham/referralcrm-sub001/internal/display"
	"github.com/loganlgraham/referralcrm-sub001/internal/engine"
	"github.com/loganlgraham/referralcrm-sub001/internal/recommend"
	"github.com/loganlgraham/referralcrm-sub001/internal/sladur"
)

// Mode controls the output format.
type Mode int

const (
	ASCII    Mode = iota // fixed-width terminal tables
	Markdown             // GitHub-flavoured Markdown tables
)

// RenderReport renders the full evaluation: risk badge, duration chain,
// recommendation list.
func RenderReport(rep engine.Report, m Mode) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Referral %s — %s\n", rep.ReferralID, display.Risk(string(rep.Risk.Level)))
	fmt.Fprintf(&b, "%s %s\n\n", rep.Risk.Headline+":", rep.Risk.Detail)
	b.WriteString(RenderDurations(rep.Durations, m))
	b.WriteString("\n\n")
	b.WriteString(RenderRecommendations(rep.Recommendations, m))
	b.WriteString("\n")
	return b.String()
}

// RenderDurations renders the milestone duration chain.
func RenderDurations(entries []sladur.Entry, m Mode) string {
	w := newWriter(m)
	w.AppendHeader(table.Row{"Milestone Span", "Business Time"})
	for _, e := range entries {
		w.AppendRow(table.Row{e.Label, e.Formatted})
	}
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	return render(w, m)
}

// RenderRecommendations renders the prioritized task list.
func RenderRecommendations(recs []recommend.Recommendation, m Mode) string {
	if len(recs) == 0 {
		return "No recommendations."
	}
	w := newWriter(m)
	w.AppendHeader(table.Row{"Priority", "Action", "Due By", "Signal"})
	for _, r := range recs {
		w.AppendRow(table.Row{
			display.Priority(string(r.Priority)),
			r.Title,
			dueBy(r.DueBy),
			r.Metric,
		})
	}
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 48},
	})
	return render(w, m)
}

func dueBy(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02 15:04 MST")
}

func newWriter(m Mode) table.Writer {
	w := table.NewWriter()
	if m == ASCII {
		w.SetStyle(table.StyleLight)
	}
	return w
}

func render(w table.Writer, m Mode) string {
	if m == Markdown {
		return w.RenderMarkdown()
	}
	return w.Render()
}
