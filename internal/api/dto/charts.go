package dto

import (
	"sort"

	"github.com/spendlens/spendlens/internal/insight"
)

// ChartDataset is one label/value series, ready for any charting frontend.
// Charts are plain values handed to the presentation layer; there is no
// process-wide chart registry.
type ChartDataset struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// ChartsResponse carries the two datasets the results view renders: the
// category doughnut and the monthly bar chart.
type ChartsResponse struct {
	Categories ChartDataset  `json:"categories"`
	Monthly    *ChartDataset `json:"monthly,omitempty"`
}

// ChartsFrom builds chart datasets from an insight record. Categories are
// ordered by amount descending (name ascending on exact ties); months
// chronologically. The monthly dataset is nil when no trend was derived.
func ChartsFrom(ins *insight.Insights) ChartsResponse {
	categories := ChartDataset{
		Labels: make([]string, 0, len(ins.CategoryBreakdown)),
		Values: make([]float64, 0, len(ins.CategoryBreakdown)),
	}
	for name := range ins.CategoryBreakdown {
		categories.Labels = append(categories.Labels, name)
	}
	sort.Slice(categories.Labels, func(i, j int) bool {
		a := ins.CategoryBreakdown[categories.Labels[i]].Amount
		b := ins.CategoryBreakdown[categories.Labels[j]].Amount
		if a != b {
			return a > b
		}
		return categories.Labels[i] < categories.Labels[j]
	})
	for _, name := range categories.Labels {
		categories.Values = append(categories.Values, ins.CategoryBreakdown[name].Amount)
	}

	response := ChartsResponse{Categories: categories}

	if ins.MonthlyTrend != nil {
		monthly := &ChartDataset{
			Labels: make([]string, 0, len(ins.MonthlyTrend.MonthlyData)),
			Values: make([]float64, 0, len(ins.MonthlyTrend.MonthlyData)),
		}
		for month := range ins.MonthlyTrend.MonthlyData {
			monthly.Labels = append(monthly.Labels, month)
		}
		sort.Strings(monthly.Labels)
		for _, month := range monthly.Labels {
			monthly.Values = append(monthly.Values, ins.MonthlyTrend.MonthlyData[month])
		}
		response.Monthly = monthly
	}

	return response
}
