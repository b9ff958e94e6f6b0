package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/nguyentantai21042004/playlist-digest/internal/history"
	"github.com/nguyentantai21042004/playlist-digest/internal/summarizer"
)

var (
	colorOK   = lipgloss.Color("10")
	colorWarn = lipgloss.Color("11")
	colorFail = lipgloss.Color("9")
	colorDim  = lipgloss.Color("240")

	styleHeader = lipgloss.NewStyle().Bold(true)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
)

func cell(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}

func statusStyle(status summarizer.Status) lipgloss.Style {
	switch status {
	case summarizer.StatusPersisted:
		return lipgloss.NewStyle().Foreground(colorOK)
	case summarizer.StatusSkipped:
		return lipgloss.NewStyle().Foreground(colorWarn)
	case summarizer.StatusFailed:
		return lipgloss.NewStyle().Foreground(colorFail)
	}
	return lipgloss.NewStyle()
}

func renderRuns(w io.Writer, runs []history.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, styleDim.Render("No runs recorded yet."))
		return
	}

	fmt.Fprintln(w, styleHeader.Render(
		cell("RUN", 38)+cell("STARTED", 21)+cell("TOOK", 10)+cell("OK", 6)+cell("SKIP", 6)+"FAIL"))
	for _, r := range runs {
		took := r.FinishedAt.Sub(r.StartedAt).Round(time.Second).String()
		failed := fmt.Sprint(r.Failed)
		if r.Failed > 0 {
			failed = lipgloss.NewStyle().Foreground(colorFail).Render(failed)
		}
		fmt.Fprintln(w,
			cell(r.ID, 38)+
				cell(r.StartedAt.Local().Format("2006-01-02 15:04:05"), 21)+
				cell(took, 10)+
				cell(fmt.Sprint(r.Succeeded), 6)+
				cell(fmt.Sprint(r.Skipped), 6)+
				failed)
	}
}

func renderFiles(w io.Writer, files []history.FileRecord) {
	if len(files) == 0 {
		fmt.Fprintln(w, styleDim.Render("No files recorded for this run."))
		return
	}

	fmt.Fprintln(w, styleHeader.Render(cell("STATUS", 20)+cell("CHUNKS", 8)+"FILE"))
	for _, f := range files {
		line := statusStyle(f.Status).Render(cell(string(f.Status), 20)) +
			cell(fmt.Sprint(f.Chunks), 8) +
			filepath.Base(f.Path)
		if f.Output != "" {
			line += styleDim.Render(" -> " + f.Output)
		}
		fmt.Fprintln(w, line)
		if f.Error != "" {
			fmt.Fprintln(w, styleDim.Render(strings.Repeat(" ", 28)+"at "+string(f.FailedAt)+": "+f.Error))
		}
	}
}
