// Package report renders a built deck as an interactive HTML report with a
// mana-curve bar chart and a role-distribution pie chart.
package report

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/deckforge/deckforge/internal/deck"
)

const (
	chartWidth  = "900px"
	chartHeight = "500px"
)

var chartColors = []string{"#5470C6", "#91CC75", "#FAC858", "#EE6666", "#73C0DE", "#3BA272", "#FC8452"}

// WriteHTML renders the deck report to outputPath.
func WriteHTML(list *deck.DeckList, outputPath string) error {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("%s | deckforge report", list.Commander.Name)
	page.AddCharts(curveChart(list), roleChart(list))

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// curveChart builds the mana-curve bar chart over nonland entries.
// Mana values of seven and above share one bucket.
func curveChart(list *deck.DeckList) *charts.Bar {
	buckets := make(map[int]int)
	for _, e := range list.Main {
		cmc := int(e.CMC)
		if cmc > 7 {
			cmc = 7
		}
		buckets[cmc]++
	}

	labels := make([]string, 0, 8)
	data := make([]opts.BarData, 0, 8)
	for cmc := 0; cmc <= 7; cmc++ {
		label := fmt.Sprintf("%d", cmc)
		if cmc == 7 {
			label = "7+"
		}
		labels = append(labels, label)
		data = append(data, opts.BarData{Value: buckets[cmc]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  chartWidth,
			Height: chartHeight,
			Theme:  "light",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Mana Curve",
			Subtitle: fmt.Sprintf("%d nonland cards", list.Stats.TotalNonlands),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithColorsOpts(opts.Colors{chartColors[0]}),
	)
	bar.SetXAxis(labels).AddSeries("Cards", data)
	return bar
}

// roleChart builds the role-family distribution pie chart.
func roleChart(list *deck.DeckList) *charts.Pie {
	families := make([]deck.RoleFamily, 0, len(list.Stats.ByRoleFamily))
	for family := range list.Stats.ByRoleFamily {
		families = append(families, family)
	}
	sort.Slice(families, func(i, j int) bool { return families[i] < families[j] })

	data := make([]opts.PieData, 0, len(families))
	for _, family := range families {
		data = append(data, opts.PieData{
			Name:  string(family),
			Value: list.Stats.ByRoleFamily[family],
		})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  chartWidth,
			Height: chartHeight,
			Theme:  "light",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Role Distribution",
			Subtitle: list.Stats.StrategyExplanation,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithColorsOpts(opts.Colors(chartColors)),
	)
	pie.AddSeries("Roles", data).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}: {c}",
		}),
	)
	return pie
}
