package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/argo-backtest/internal/sweep"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// LabelStyle for the key column of summaries.
	LabelStyle = lipgloss.NewStyle().Faint(true).Width(20)

	// WarningStyle for import and engine warnings.
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	// BoxStyle frames a summary block.
	BoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

type summaryLine struct {
	label string
	value string
}

func renderBlock(title string, lines []summaryLine) string {
	rows := make([]string, 0, len(lines)+1)
	rows = append(rows, TitleStyle.Render(title))

	for _, line := range lines {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, LabelStyle.Render(line.label), line.value))
	}

	return BoxStyle.Render(strings.Join(rows, "\n"))
}

// FormatChange renders a signed difference with an arrow, or "=" when unchanged.
func FormatChange(current, previous float64) string {
	delta := current - previous

	switch {
	case delta > 0:
		return fmt.Sprintf("%+.4f ▲", delta)
	case delta < 0:
		return fmt.Sprintf("%+.4f ▼", delta)
	default:
		return "="
	}
}

// renderRunSummary shows the metrics of a finished run.
func renderRunSummary(stats types.RunStats, runDir string) string {
	m := stats.Metrics

	return renderBlock("Backtest "+stats.ID, []summaryLine{
		{label: "Strategy", value: fmt.Sprintf("SMA %d/%d", stats.Params.FastWindow, stats.Params.SlowWindow)},
		{label: "Rows", value: fmt.Sprintf("%d", stats.Dataset.Rows)},
		{label: "Total return", value: fmt.Sprintf("%.4f%%", m.TotalReturnPct)},
		{label: "Total PnL", value: fmt.Sprintf("%.4f", m.TotalPnL)},
		{label: "Max drawdown", value: fmt.Sprintf("%.4f%%", m.MaxDrawdownPct)},
		{label: "Trades", value: fmt.Sprintf("%d", m.Trades)},
		{label: "Win rate", value: fmt.Sprintf("%.2f%%", m.WinRatePct)},
		{label: "Avg trade return", value: fmt.Sprintf("%.4f%%", m.AvgTradeReturnPct)},
		{label: "Warnings", value: fmt.Sprintf("%d", len(stats.Warnings))},
		{label: "Results", value: runDir},
	})
}

// renderBaselineComparison shows how the metrics moved against an earlier run.
func renderBaselineComparison(current types.RunStats, baseline types.RunStats) string {
	c, b := current.Metrics, baseline.Metrics

	return renderBlock(fmt.Sprintf("Compared with %s (%s)", baseline.ID, baseline.Version), []summaryLine{
		{label: "Total return", value: FormatChange(c.TotalReturnPct, b.TotalReturnPct)},
		{label: "Total PnL", value: FormatChange(c.TotalPnL, b.TotalPnL)},
		{label: "Max drawdown", value: FormatChange(c.MaxDrawdownPct, b.MaxDrawdownPct)},
		{label: "Trades", value: FormatChange(float64(c.Trades), float64(b.Trades))},
		{label: "Win rate", value: FormatChange(c.WinRatePct, b.WinRatePct)},
		{label: "Avg trade return", value: FormatChange(c.AvgTradeReturnPct, b.AvgTradeReturnPct)},
	})
}

// renderSweepSummary shows the best pair and how the grid held up out of sample.
func renderSweepSummary(report sweep.Report, reportPath string) string {
	best := report.Best()
	s := report.Summary

	return renderBlock("Parameter sweep", []summaryLine{
		{label: "Rows", value: fmt.Sprintf("%d (train %d, test %d)", report.TotalRows, report.TrainRows, report.TestRows)},
		{label: "Combinations", value: fmt.Sprintf("%d", s.Combinations)},
		{label: "Best", value: fmt.Sprintf("fast=%d slow=%d", best.Fast, best.Slow)},
		{label: "Train", value: fmt.Sprintf("return=%.4f%% maxDD=%.4f%% trades=%d", best.Train.TotalReturnPct, best.Train.MaxDrawdownPct, best.Train.Trades)},
		{label: "Test", value: fmt.Sprintf("return=%.4f%% maxDD=%.4f%% trades=%d", best.Test.TotalReturnPct, best.Test.MaxDrawdownPct, best.Test.Trades)},
		{label: "Mean test return", value: fmt.Sprintf("%.4f%% ± %.4f", s.MeanTestReturnPct, s.StdDevTestReturnPct)},
		{label: "Train/test corr", value: fmt.Sprintf("%.4f", s.TrainTestCorrelation)},
		{label: "Report", value: reportPath},
	})
}
