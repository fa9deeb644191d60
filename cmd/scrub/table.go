package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"scrub/internal/catalog"
)

// renderCatalogTable renders extraction catalog rows for `scrub status`.
// Season, size, and duration are right-aligned so the numeric columns line up.
func renderCatalogTable(extractions []catalog.Extraction) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Episode", "Season", "Title", "Size", "Duration", "Extracted"})

	for _, e := range extractions {
		tw.AppendRow(table.Row{
			e.Episode,
			e.Season,
			e.Title,
			formatBytes(e.SizeBytes),
			formatSeconds(e.DurationSeconds),
			e.ExtractedAt.Local().Format("2006-01-02 15:04"),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func formatBytes(size int64) string {
	const mb = 1024 * 1024
	if size < mb {
		return fmt.Sprintf("%d KB", size/1024)
	}
	return fmt.Sprintf("%.1f MB", float64(size)/mb)
}

func formatSeconds(seconds float64) string {
	return time.Duration(seconds * float64(time.Second)).Round(time.Second).String()
}
