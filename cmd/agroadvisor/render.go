package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"agroadvisor/pkg/agronomy"
)

var (
	colorHeader = lipgloss.Color("#64b5f6")
	colorGood   = lipgloss.Color("#66bb6a")
	colorBad    = lipgloss.Color("#ef5350")
	colorWarn   = lipgloss.Color("#fff59d")
	colorMuted  = lipgloss.Color("#888888")
)

// styles is the palette for text reports. The zero value renders plain text.
type styles struct {
	header, good, bad, warn, muted, key lipgloss.Style
}

func newStyles(color bool) styles {
	plain := lipgloss.NewStyle()
	s := styles{header: plain, good: plain, bad: plain, warn: plain, muted: plain, key: plain.Width(16)}
	if !color {
		return s
	}
	s.header = plain.Foreground(colorHeader).Bold(true)
	s.good = plain.Foreground(colorGood)
	s.bad = plain.Foreground(colorBad)
	s.warn = plain.Foreground(colorWarn)
	s.muted = plain.Foreground(colorMuted)
	return s
}

// colorEnabled is true only when w is a terminal and color was not disabled.
func colorEnabled(w io.Writer, noColor bool) bool {
	if noColor {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (s styles) severity(sev agronomy.Severity) lipgloss.Style {
	switch sev {
	case agronomy.SeverityCritical:
		return s.bad
	case agronomy.SeverityWarning:
		return s.warn
	case agronomy.SeverityGood, agronomy.SeverityExcellent:
		return s.good
	}
	return s.muted
}

func (s styles) forLabel(l string) lipgloss.Style {
	switch l {
	case agronomy.LabelLow, agronomy.LabelAcidic, agronomy.LabelAlkaline:
		return s.bad
	case agronomy.LabelModerate:
		return s.warn
	case agronomy.LabelOptimal, agronomy.LabelGood:
		return s.good
	}
	return s.muted
}

// renderText writes a terminal summary of one report.
func renderText(w io.Writer, rep agronomy.AdvisoryReport, s styles) error {
	var b strings.Builder
	line := func(format string, args ...any) { fmt.Fprintf(&b, format+"\n", args...) }

	title := rep.FieldName
	if title == "" {
		title = "field " + rep.FieldID
	}
	line("%s  %s", s.header.Render(title), s.muted.Render(fmt.Sprintf("month %d · reference %s", rep.Month, rep.ReferenceVersion)))

	rp := rep.RotationPattern
	line("%s%s %s", s.key.Render("Rotation"), rp.Pattern, s.severity(rp.Severity).Render("["+string(rp.Severity)+"]"))
	line("%s%s", s.key.Render(""), rp.Message)
	if rp.IntervalAdvice != "" {
		line("%s%s", s.key.Render(""), s.muted.Render(rp.IntervalAdvice))
	}

	tr := rep.Trend
	trend := string(tr.Trend)
	if tr.Trend != agronomy.TrendUnknown {
		trend += fmt.Sprintf(" (%+d%%)", tr.PercentChange)
	}
	if len(tr.Forecast) > 0 {
		trend += s.muted.Render(fmt.Sprintf("  forecast N %s", joinFloats(tr.Forecast)))
	}
	line("%s%s", s.key.Render("Soil trend"), trend)

	line("")
	line("%s", s.header.Render("Nutrients"))
	for _, st := range rep.NutrientStatus {
		val := "-"
		if st.Value != nil {
			val = fmt.Sprintf("%g", *st.Value)
		}
		line("  %s%-8s %s %s", s.key.Render(string(st.Nutrient)), val,
			s.forLabel(st.Label).Render(st.Label), s.muted.Render(st.OptimalRange))
	}

	line("")
	line("%s", s.header.Render("Actions"))
	if len(rep.Actions) == 0 {
		line("  %s", s.good.Render("No corrective action needed"))
	}
	for _, a := range rep.Actions {
		pri := s.warn
		if a.Priority == agronomy.PriorityHigh {
			pri = s.bad
		}
		line("  %d. %s %s: %s", a.PriorityRank, pri.Render("["+string(a.Priority)+"]"), a.Title, a.ActionText)
	}

	line("")
	line("%s %s", s.header.Render("Next crops"), s.muted.Render(rep.Suggestions.Reason))
	for _, c := range rep.Suggestions.Suggested {
		line("  %s%3d  %s t/ha · %s water · %s days", s.key.Render(c.Name), c.Score, c.YieldRange, c.WaterNeed, c.DurationDays)
	}

	var graded []agronomy.YieldComparison
	for _, yc := range rep.YieldComparisons {
		if yc.Result != nil {
			graded = append(graded, yc)
		}
	}
	if len(graded) > 0 {
		line("")
		line("%s", s.header.Render("Yields"))
		for _, yc := range graded {
			st := s.warn
			switch yc.Result.Status {
			case agronomy.BenchmarkExcellent, agronomy.BenchmarkGood:
				st = s.good
			case agronomy.BenchmarkBelow:
				st = s.bad
			}
			line("  %s%d  %3d%% of avg  %s", s.key.Render(yc.CropName), yc.Year, yc.Result.Percentage, st.Render(string(yc.Result.Status)))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func joinFloats(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return strings.Join(parts, " → ")
}
