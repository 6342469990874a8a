package export

import (
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteHeatmap renders the policy and value grids as an HTML page with two
// echarts heatmaps. The x axis is the second location, the y axis the first.
func WriteHeatmap(w io.Writer, s Snapshot) error {
	policy := make([][]float64, len(s.Policy))
	for i, row := range s.Policy {
		policy[i] = make([]float64, len(row))
		for j, a := range row {
			policy[i][j] = float64(a)
		}
	}
	page := components.NewPage()
	page.PageTitle = "car rental policy iteration"
	page.AddCharts(
		heatmap("Policy (cars moved first to second)", policy),
		heatmap("State values", s.Values),
	)
	return page.Render(w)
}

func heatmap(title string, grid [][]float64) *charts.HeatMap {
	axis := make([]string, len(grid))
	for i := range axis {
		axis[i] = strconv.Itoa(i)
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	items := make([]opts.HeatMapData, 0, len(grid)*len(grid))
	for i, row := range grid {
		for j, v := range row {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
			items = append(items, opts.HeatMapData{Value: [3]interface{}{j, i, math.Round(v*10) / 10}})
		}
	}
	if len(items) == 0 {
		lo, hi = 0, 0
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "second", Type: "category", Data: axis}),
		charts.WithYAxisOpts(opts.YAxis{Name: "first", Type: "category", Data: axis}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        float32(lo),
			Max:        float32(hi),
			InRange:    &opts.VisualMapInRange{Color: []string{"#313695", "#ffffbf", "#a50026"}},
		}),
	)
	hm.SetXAxis(axis).AddSeries(title, items)
	return hm
}
