package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlens/spendlens/internal/insight"
)

func TestChartsFrom_CategoriesOrderedByAmount(t *testing.T) {
	ins := &insight.Insights{
		CategoryBreakdown: map[string]insight.CategoryBreakdown{
			"Food":   {Amount: 20},
			"Rent":   {Amount: 900},
			"Travel": {Amount: 80},
		},
	}

	charts := ChartsFrom(ins)

	assert.Equal(t, []string{"Rent", "Travel", "Food"}, charts.Categories.Labels)
	assert.Equal(t, []float64{900, 80, 20}, charts.Categories.Values)
	assert.Nil(t, charts.Monthly)
}

func TestChartsFrom_MonthlyChronological(t *testing.T) {
	ins := &insight.Insights{
		CategoryBreakdown: map[string]insight.CategoryBreakdown{
			"Food": {Amount: 100},
		},
		MonthlyTrend: &insight.MonthlyTrend{
			TrendDirection: insight.TrendIncreasing,
			MonthlyData:    map[string]float64{"2024-02": 60, "2024-01": 40},
		},
	}

	charts := ChartsFrom(ins)

	require.NotNil(t, charts.Monthly)
	assert.Equal(t, []string{"2024-01", "2024-02"}, charts.Monthly.Labels)
	assert.Equal(t, []float64{40, 60}, charts.Monthly.Values)
}
