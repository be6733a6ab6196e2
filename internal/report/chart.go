// Package report renders score comparisons as standalone HTML charts.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/annolab/annoscore/internal/scoring"
)

// WriteHTML renders a grouped bar chart, one series per candidate and
// one bar group per aggregation rule.
func WriteHTML(w io.Writer, title string, results []scoring.CandidateResult) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to chart")
	}

	x := make([]string, 0, len(results[0].Report.Scores))
	for _, s := range results[0].Report.Scores {
		x = append(x, s.Rule)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "520px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "Weighted F1 per aggregation rule"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 1, Name: "weighted F1"}),
	)

	bar.SetXAxis(x)
	for _, result := range results {
		data := make([]opts.BarData, 0, len(result.Report.Scores))
		for _, s := range result.Report.Scores {
			data = append(data, opts.BarData{Value: s.F1})
		}
		bar.AddSeries(result.Name, data,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	}

	return bar.Render(w)
}

// SaveHTML writes the chart to a file.
func SaveHTML(path, title string, results []scoring.CandidateResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()
	return WriteHTML(f, title, results)
}
