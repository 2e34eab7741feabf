package commands

import (
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/dataset"
	"github.com/riskibarqy/lzvcup-scraper/internal/usecase"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

func renderReport(w io.Writer, report usecase.RunReport) {
	counts := newTable(w)
	counts.SetTitle("rows")
	counts.AppendHeader(table.Row{"table", "rows"})
	total := 0
	for _, name := range dataset.Tables {
		counts.AppendRow(table.Row{name, report.RowCounts[name]})
		total += report.RowCounts[name]
	}
	counts.AppendFooter(table.Row{"total", total})
	counts.Render()

	history := report.History
	players := newTable(w)
	players.SetTitle("player history")
	players.AppendHeader(table.Row{"players", "workers", "ok", "failed", "duration"})
	players.AppendRow(table.Row{
		history.TaskCount,
		history.WorkerCount,
		history.SuccessCount,
		history.FailedCount,
		(time.Duration(history.DurationMs) * time.Millisecond).String(),
	})
	players.Render()

	renderIssues(w, "failures", report.Failures)
	renderIssues(w, "skipped", report.Skipped)
}

func renderIssues(w io.Writer, title string, issues []usecase.UnitIssue) {
	if len(issues) == 0 {
		return
	}
	t := newTable(w)
	t.SetTitle(title + " (" + strconv.Itoa(len(issues)) + ")")
	t.AppendHeader(table.Row{"unit", "area", "region", "competition", "name", "reason"})
	for _, issue := range issues {
		t.AppendRow(table.Row{issue.Unit, issue.Area, issue.Region, issue.Competition, issue.Name, issue.Reason})
	}
	t.Render()
}
