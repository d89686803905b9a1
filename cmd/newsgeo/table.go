package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/couchcryptid/city-news-etl/internal/domain"
	"github.com/mattn/go-runewidth"
)

const titleWidth = 60

// printSummary writes one row per article followed by the fallback ratio.
// Column widths are measured in terminal cells so accented and wide
// characters stay aligned.
func printSummary(w io.Writer, articles []domain.EnrichedArticle) {
	header := []string{"CATEGORY", "MATCH", "LOCATION", "TITLE"}
	rows := make([][]string, 0, len(articles))
	fallbacks := 0
	for _, a := range articles {
		if a.LocationMatch == domain.MatchFallback {
			fallbacks++
		}
		rows = append(rows, []string{
			a.Category,
			string(a.LocationMatch),
			a.LocationName,
			truncateTitle(a.Title),
		})
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	writeRow(w, header, widths)
	for _, row := range rows {
		writeRow(w, row, widths)
	}

	ratio := 0.0
	if len(articles) > 0 {
		ratio = float64(fallbacks) / float64(len(articles)) * 100
	}
	fmt.Fprintf(w, "\nfallback: %d/%d (%.1f%%)\n", fallbacks, len(articles), ratio)
}

func writeRow(w io.Writer, cells []string, widths []int) {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		if i == len(cells)-1 {
			padded[i] = cell
			continue
		}
		padded[i] = runewidth.FillRight(cell, widths[i])
	}
	fmt.Fprintln(w, strings.Join(padded, "  "))
}

func truncateTitle(title string) string {
	title = strings.Join(strings.Fields(title), " ")
	return runewidth.Truncate(title, titleWidth, "...")
}
