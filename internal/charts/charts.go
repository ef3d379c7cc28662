package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"expensebot/internal/model"
)

// ChartGenerator renders stats charts for report replies.
type ChartGenerator struct{}

// NewChartGenerator creates a new chart generator.
func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{}
}

// CategoryChart renders a bar chart of per-category totals as PNG.
// Returns nil bytes and no error when there is nothing to draw.
func (g *ChartGenerator) CategoryChart(title string, totals []model.CategoryTotal) ([]byte, error) {
	if len(totals) == 0 {
		return nil, nil
	}

	bars := make([]chart.Value, len(totals))
	for i, t := range totals {
		bars[i] = chart.Value{
			Label: t.Category,
			Value: t.Total,
		}
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    800,
		Height:   500,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   25,
				Right:  25,
				Bottom: 25,
			},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.Style{
			FontSize:  10,
			FontColor: chart.ColorBlack,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{
				FontSize:  10,
				FontColor: chart.ColorBlack,
			},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.2f", v.(float64))
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render category chart: %w", err)
	}
	return buf.Bytes(), nil
}
