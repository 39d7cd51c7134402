// Package insight derives the analytical summary for one batch of canonical
// transactions: aggregate statistics, per-category breakdown, date range,
// monthly trend direction, and rule-based warnings and recommendations.
//
// The engine is pure computation. It holds no state between invocations and
// consumes only the output of the normalize package.
package insight

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/spendlens/spendlens/internal/normalize"
)

// ErrNoTransactions is returned when the engine is invoked with an empty
// list. The normalizer guarantees non-emptiness; this re-asserts it.
var ErrNoTransactions = errors.New("no transactions provided")

// CategoryBreakdown is the aggregate for one category: the summed signed
// amount, its share of the grand total, and how many transactions it covers.
type CategoryBreakdown struct {
	Amount           float64 `json:"amount"`
	Percentage       float64 `json:"percentage"`
	TransactionCount int     `json:"transactionCount"`
}

// DateRange spans the earliest and latest transaction dates, inclusive.
type DateRange struct {
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	DaysCovered int    `json:"daysCovered"`
}

// Trend directions for MonthlyTrend. A tie between the first and last month
// classifies as decreasing: the comparison is strictly greater-than.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
)

// MonthlyTrend compares the chronologically first and last calendar months.
// It is only produced when the batch spans at least two distinct months.
type MonthlyTrend struct {
	TrendDirection string             `json:"trendDirection"`
	MonthlyData    map[string]float64 `json:"monthlyData"`
}

// Insights is the complete derived summary for one batch. It serializes to
// JSON and round-trips losslessly, which is how it travels to the
// presentation layer and into the session store.
type Insights struct {
	TotalSpent            float64                      `json:"totalSpent"`
	TotalTransactions     int                          `json:"totalTransactions"`
	AverageTransaction    float64                      `json:"averageTransaction"`
	HighestExpense        float64                      `json:"highestExpense"`
	LowestExpense         float64                      `json:"lowestExpense"`
	TopCategory           string                       `json:"topCategory"`
	TopCategoryAmount     float64                      `json:"topCategoryAmount"`
	TopCategoryPercentage float64                      `json:"topCategoryPercentage"`
	CategoryBreakdown     map[string]CategoryBreakdown `json:"categoryBreakdown"`
	DateRange             DateRange                    `json:"dateRange"`
	DailyAverage          float64                      `json:"dailyAverage"`
	MonthlyTrend          *MonthlyTrend                `json:"monthlyTrend,omitempty"`
	Warnings              []string                     `json:"warnings"`
	Recommendations       []string                     `json:"recommendations"`
}

// Advisory rule thresholds. These are deliberate literals, not configuration.
const (
	warnDailyAverageAbove      = 100.0
	warnConcentrationAbove     = 50.0
	recommendTopCategoryAbove  = 40.0
	recommendDailyAverageAbove = 50.0
	recommendMinCategories     = 5
)

// Analyze computes the full insight record for a non-empty transaction list.
func Analyze(transactions []normalize.Transaction) (*Insights, error) {
	if len(transactions) == 0 {
		return nil, ErrNoTransactions
	}

	totalSpent := 0.0
	highest := transactions[0].Amount
	lowest := transactions[0].Amount
	for _, tx := range transactions {
		totalSpent += tx.Amount
		if tx.Amount > highest {
			highest = tx.Amount
		}
		if tx.Amount < lowest {
			lowest = tx.Amount
		}
	}

	breakdown, ranked := categoryBreakdown(transactions, totalSpent)
	top := ranked[0]

	dateRange, err := dateRangeOf(transactions)
	if err != nil {
		return nil, err
	}
	dailyAverage := totalSpent / float64(dateRange.DaysCovered)

	ins := &Insights{
		TotalSpent:            totalSpent,
		TotalTransactions:     len(transactions),
		AverageTransaction:    totalSpent / float64(len(transactions)),
		HighestExpense:        highest,
		LowestExpense:         lowest,
		TopCategory:           top,
		TopCategoryAmount:     breakdown[top].Amount,
		TopCategoryPercentage: breakdown[top].Percentage,
		CategoryBreakdown:     breakdown,
		DateRange:             dateRange,
		DailyAverage:          dailyAverage,
		MonthlyTrend:          monthlyTrend(transactions),
	}
	ins.Warnings = warnings(ins)
	ins.Recommendations = recommendations(ins)

	return ins, nil
}

// categoryBreakdown groups by exact category string and returns the ranking
// alongside the map. Ranking is by summed amount descending; exact ties keep
// the order categories first appeared in the transaction list, so the top
// category is reproducible.
//
// Percentage divides by the signed grand total. With mixed-sign batches the
// total can be zero or negative, in which case the shares go NaN/Inf or flip
// sign; the formula is kept unguarded on purpose.
func categoryBreakdown(transactions []normalize.Transaction, totalSpent float64) (map[string]CategoryBreakdown, []string) {
	type agg struct {
		amount float64
		count  int
	}

	totals := make(map[string]*agg)
	var order []string
	for _, tx := range transactions {
		a, ok := totals[tx.Category]
		if !ok {
			a = &agg{}
			totals[tx.Category] = a
			order = append(order, tx.Category)
		}
		a.amount += tx.Amount
		a.count++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return totals[order[i]].amount > totals[order[j]].amount
	})

	breakdown := make(map[string]CategoryBreakdown, len(totals))
	for category, a := range totals {
		breakdown[category] = CategoryBreakdown{
			Amount:           a.amount,
			Percentage:       a.amount / totalSpent * 100,
			TransactionCount: a.count,
		}
	}

	return breakdown, order
}

// dateRangeOf finds the min and max dates. Lexicographic comparison is
// chronological here because every date is already YYYY-MM-DD.
func dateRangeOf(transactions []normalize.Transaction) (DateRange, error) {
	start := transactions[0].Date
	end := transactions[0].Date
	for _, tx := range transactions {
		if tx.Date < start {
			start = tx.Date
		}
		if tx.Date > end {
			end = tx.Date
		}
	}

	days, err := daysBetween(start, end)
	if err != nil {
		return DateRange{}, err
	}

	return DateRange{StartDate: start, EndDate: end, DaysCovered: days}, nil
}

// daysBetween returns the inclusive day count from start to end, minimum 1.
func daysBetween(start, end string) (int, error) {
	from, err := time.Parse("2006-01-02", start)
	if err != nil {
		return 0, fmt.Errorf("analyze: bad transaction date %q: %w", start, err)
	}
	to, err := time.Parse("2006-01-02", end)
	if err != nil {
		return 0, fmt.Errorf("analyze: bad transaction date %q: %w", end, err)
	}

	days := int(to.Sub(from).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days, nil
}

// monthlyTrend sums amounts per YYYY-MM key and compares the chronologically
// first month against the last. Fewer than two distinct months yields nil.
func monthlyTrend(transactions []normalize.Transaction) *MonthlyTrend {
	monthly := make(map[string]float64)
	for _, tx := range transactions {
		monthly[tx.Date[:7]] += tx.Amount
	}
	if len(monthly) < 2 {
		return nil
	}

	months := make([]string, 0, len(monthly))
	for m := range monthly {
		months = append(months, m)
	}
	sort.Strings(months)

	direction := TrendDecreasing
	if monthly[months[len(months)-1]] > monthly[months[0]] {
		direction = TrendIncreasing
	}

	return &MonthlyTrend{TrendDirection: direction, MonthlyData: monthly}
}

func warnings(ins *Insights) []string {
	warnings := []string{}

	if ins.DailyAverage > warnDailyAverageAbove {
		warnings = append(warnings,
			fmt.Sprintf("High daily spending average: $%.2f", ins.DailyAverage))
	}
	if ins.TopCategoryPercentage > warnConcentrationAbove {
		warnings = append(warnings,
			fmt.Sprintf("High concentration in %s: %.1f%%", ins.TopCategory, ins.TopCategoryPercentage))
	}

	return warnings
}

func recommendations(ins *Insights) []string {
	recommendations := []string{}

	if ins.TopCategoryPercentage > recommendTopCategoryAbove {
		recommendations = append(recommendations,
			"Consider reducing spending in your top category")
	}
	if ins.DailyAverage > recommendDailyAverageAbove {
		recommendations = append(recommendations,
			"Try to reduce daily spending average")
	}
	if len(ins.CategoryBreakdown) < recommendMinCategories {
		recommendations = append(recommendations,
			"Consider categorizing expenses more granularly for better tracking")
	}

	return recommendations
}
