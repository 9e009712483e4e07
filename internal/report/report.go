// Package report aggregates batch outcomes into summaries and renders them
// for the terminal. Summaries are derived on demand, never stored.
package report

import (
	"fmt"
	"strings"

	"github.com/mmcli/mmcli/internal/model"
)

// Summary holds aggregate counts over one batch result.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
}

// Summarize folds a batch result into counts.
func Summarize(results model.BatchResult) Summary {
	s := Summary{}
	for _, outcome := range results {
		s.Total++
		if outcome.Success {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}

// RenderConversion renders the summary of a conversion batch, listing every
// failed input when there are failures.
func RenderConversion(results model.BatchResult, targetFormat, outputDir string) string {
	stats := Summarize(results)

	var b strings.Builder
	b.WriteString("Conversion complete.\n")
	b.WriteString("Summary:\n")
	fmt.Fprintf(&b, "Successfully converted: %d\n", stats.Succeeded)
	fmt.Fprintf(&b, "Failed to convert: %d\n", stats.Failed)
	fmt.Fprintf(&b, "Format: %s\n", targetFormat)
	fmt.Fprintf(&b, "Output directory: %s", outputDir)

	writeFailures(&b, results)
	return b.String()
}

// RenderDownload renders the summary of a download batch.
func RenderDownload(results model.BatchResult, outputDir string) string {
	stats := Summarize(results)

	var b strings.Builder
	b.WriteString("Download Summary:\n")
	fmt.Fprintf(&b, "- Total items: %d\n", stats.Total)
	fmt.Fprintf(&b, "- Successfully downloaded: %d\n", stats.Succeeded)
	fmt.Fprintf(&b, "- Failed to download: %d\n", stats.Failed)
	fmt.Fprintf(&b, "- Saved to: %s", outputDir)

	writeFailures(&b, results)
	return b.String()
}

func writeFailures(b *strings.Builder, results model.BatchResult) {
	failures := results.Failures()
	if len(failures) == 0 {
		return
	}
	b.WriteString("\n\nFailed items:")
	for _, outcome := range failures {
		fmt.Fprintf(b, "\n  - %s", outcome.DisplayName())
	}
}
