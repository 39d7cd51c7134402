// Package report renders an insight record as a markdown document: the
// summary cards, category table, and monthly table of the result view, in a
// form a terminal or any markdown consumer can display.
package report

import (
	"bytes"
	"fmt"
	"sort"

	md "github.com/nao1215/markdown"

	"github.com/spendlens/spendlens/internal/insight"
)

// Markdown renders the full report for one insight record.
func Markdown(ins *insight.Insights) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Spending Insights")
	doc.PlainText(fmt.Sprintf("%s to %s (%d days, %d transactions)",
		ins.DateRange.StartDate, ins.DateRange.EndDate,
		ins.DateRange.DaysCovered, ins.TotalTransactions))

	doc.H2("Summary")
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total spent", money(ins.TotalSpent)},
			{"Average transaction", money(ins.AverageTransaction)},
			{"Highest amount", money(ins.HighestExpense)},
			{"Lowest amount", money(ins.LowestExpense)},
			{"Daily average", money(ins.DailyAverage)},
		},
	})

	doc.H2("Category Breakdown")
	rows := make([][]string, 0, len(ins.CategoryBreakdown))
	for _, category := range rankedCategories(ins.CategoryBreakdown) {
		b := ins.CategoryBreakdown[category]
		rows = append(rows, []string{
			category,
			money(b.Amount),
			fmt.Sprintf("%.1f%%", b.Percentage),
			fmt.Sprintf("%d", b.TransactionCount),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Category", "Amount", "Share", "Transactions"},
		Rows:   rows,
	})

	if ins.MonthlyTrend != nil {
		doc.H2("Monthly Trend")
		doc.PlainText("Direction: " + ins.MonthlyTrend.TrendDirection)

		months := make([]string, 0, len(ins.MonthlyTrend.MonthlyData))
		for m := range ins.MonthlyTrend.MonthlyData {
			months = append(months, m)
		}
		sort.Strings(months)

		monthRows := make([][]string, 0, len(months))
		for _, m := range months {
			monthRows = append(monthRows, []string{m, money(ins.MonthlyTrend.MonthlyData[m])})
		}
		doc.Table(md.TableSet{
			Header: []string{"Month", "Amount"},
			Rows:   monthRows,
		})
	}

	if len(ins.Warnings) > 0 {
		doc.H2("Warnings")
		doc.BulletList(ins.Warnings...)
	}

	if len(ins.Recommendations) > 0 {
		doc.H2("Recommendations")
		doc.BulletList(ins.Recommendations...)
	}

	return doc.String()
}

// rankedCategories orders category names by amount descending. The engine's
// first-appearance tie-break is not recoverable from a serialized record, so
// exact ties fall back to name order to stay deterministic.
func rankedCategories(breakdown map[string]insight.CategoryBreakdown) []string {
	names := make([]string, 0, len(breakdown))
	for name := range breakdown {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := breakdown[names[i]].Amount, breakdown[names[j]].Amount
		if a != b {
			return a > b
		}
		return names[i] < names[j]
	})
	return names
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
