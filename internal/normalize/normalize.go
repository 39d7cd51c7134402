// Package normalize turns loosely typed rows from any source reader into a
// clean list of canonical transactions.
//
// Rows arrive as string-keyed maps with scalar values, regardless of whether
// they came from a CSV file, a spreadsheet export, or a pasted JSON array.
// Normalize folds the keys, maps known column aliases onto the canonical
// field set, validates the batch structure against the first row, and
// coerces values field by field. Rows missing a date or amount are dropped
// silently; a present but malformed date or amount fails the whole batch.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// RawRow is one untyped row as produced by a source reader. Keys are matched
// case- and whitespace-insensitively; values are scalars (string, number,
// bool, or nil).
type RawRow map[string]any

// Transaction is a fully validated spending record, the unit the insight
// engine operates on. Date is always a valid calendar date in YYYY-MM-DD
// form and Amount is a finite signed number.
type Transaction struct {
	Date          string  `json:"date"`
	Category      string  `json:"category"`
	Amount        float64 `json:"amount"`
	Description   string  `json:"description"`
	Merchant      string  `json:"merchant,omitempty"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
}

// Defaults applied when a value is absent or empty.
const (
	DefaultCategory    = "Uncategorized"
	DefaultDescription = "No description"
)

// columnAliases maps each canonical field to the source column names it
// accepts, after key folding. Earlier aliases win when a row carries more
// than one.
var columnAliases = []struct {
	field   string
	aliases []string
}{
	{"date", []string{"date", "transaction_date", "transaction date"}},
	{"category", []string{"category", "type", "expense_category", "expense category"}},
	{"amount", []string{"amount", "value", "cost", "price"}},
	{"description", []string{"description", "desc", "details", "memo", "note"}},
	{"merchant", []string{"merchant", "store", "vendor"}},
	{"paymentmethod", []string{"payment method", "payment_method", "payment_type", "payment type"}},
}

// requiredColumns must all be mappable from the first row of a batch.
var requiredColumns = []string{"date", "category", "amount", "description"}

// field is one optionally present cell of a mapped row. Presence is tracked
// separately from the value so that an explicit null stays distinguishable
// from a missing column.
type field struct {
	value   any
	present bool
}

// mappedRow is the intermediate shape between key folding and coercion: the
// canonical fields only, each optionally present.
type mappedRow struct {
	date          field
	category      field
	amount        field
	description   field
	merchant      field
	paymentMethod field
}

// Normalize maps, validates, and coerces raw rows into canonical
// transactions.
//
// It fails with ErrNoData on empty input, with *MissingColumnsError when the
// first row lacks a required column, with *InvalidDateError or
// *InvalidAmountError on the first malformed value anywhere in the batch,
// and with ErrNoValidTransactions when filtering leaves nothing. There is no
// partial success: callers get either the full cleaned list or an error.
func Normalize(rows []RawRow) ([]Transaction, error) {
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	mapped := make([]mappedRow, len(rows))
	for i, row := range rows {
		mapped[i] = mapRow(foldKeys(row))
	}

	if missing := missingRequired(mapped[0]); len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	transactions := make([]Transaction, 0, len(mapped))
	for _, row := range mapped {
		// Rows without a usable date or amount are dropped, not reported.
		if !usable(row.date) || !usable(row.amount) {
			continue
		}

		tx, err := coerce(row)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	if len(transactions) == 0 {
		return nil, ErrNoValidTransactions
	}

	return transactions, nil
}

// foldKeys lowercases and trims every key. Keys that collide after folding
// keep the last-seen value, ordinary map insertion semantics.
func foldKeys(row RawRow) RawRow {
	folded := make(RawRow, len(row))
	for key, value := range row {
		folded[strings.ToLower(strings.TrimSpace(key))] = value
	}
	return folded
}

// mapRow projects a folded row onto the canonical field set. Aliases are
// consulted in table order; a row lacking every alias for a field simply
// leaves that field absent.
func mapRow(row RawRow) mappedRow {
	var m mappedRow
	for _, entry := range columnAliases {
		var f field
		for _, alias := range entry.aliases {
			if v, ok := row[alias]; ok {
				f = field{value: v, present: true}
				break
			}
		}
		switch entry.field {
		case "date":
			m.date = f
		case "category":
			m.category = f
		case "amount":
			m.amount = f
		case "description":
			m.description = f
		case "merchant":
			m.merchant = f
		case "paymentmethod":
			m.paymentMethod = f
		}
	}
	return m
}

// missingRequired checks the structural sanity gate: only the first mapped
// row is inspected, on the assumption that tabular input is homogeneous.
// Later rows missing a required field fall to the filter instead.
func missingRequired(m mappedRow) []string {
	byName := map[string]field{
		"date":        m.date,
		"category":    m.category,
		"amount":      m.amount,
		"description": m.description,
	}

	var missing []string
	for _, name := range requiredColumns {
		if !byName[name].present {
			missing = append(missing, name)
		}
	}
	return missing
}

// usable reports whether a filter-relevant field carries a value worth
// coercing. Absent, nil, and empty-string values drop the row.
func usable(f field) bool {
	if !f.present || f.value == nil {
		return false
	}
	if s, ok := f.value.(string); ok && s == "" {
		return false
	}
	return true
}

func coerce(row mappedRow) (Transaction, error) {
	date, err := coerceDate(row.date.value)
	if err != nil {
		return Transaction{}, err
	}

	amount, err := coerceAmount(row.amount.value)
	if err != nil {
		return Transaction{}, err
	}

	return Transaction{
		Date:          date,
		Category:      cleanCategory(row.category),
		Amount:        amount,
		Description:   cleanDescription(row.description),
		Merchant:      optionalString(row.merchant),
		PaymentMethod: optionalString(row.paymentMethod),
	}, nil
}

// dateLayouts are tried in order. The set covers ISO dates with and without
// time-of-day plus the common slash and textual forms seen in bank exports.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// coerceDate parses a calendar date and re-serializes it as YYYY-MM-DD.
// Time-of-day is discarded; no timezone conversion happens beyond what the
// matched layout implies.
func coerceDate(value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", &InvalidDateError{Value: value}
	}

	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", &InvalidDateError{Value: value}
}

// coerceAmount parses a signed real number. NaN and infinities are rejected
// so every surviving transaction carries a finite amount.
func coerceAmount(value any) (float64, error) {
	var amount float64
	switch v := value.(type) {
	case float64:
		amount = v
	case int:
		amount = float64(v)
	case int64:
		amount = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, &InvalidAmountError{Value: value}
		}
		amount = parsed
	default:
		return 0, &InvalidAmountError{Value: value}
	}

	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, &InvalidAmountError{Value: value}
	}
	return amount, nil
}

// cleanCategory trims the value and folds commas into " - " so category
// names survive delimiter-separated downstream formats.
func cleanCategory(f field) string {
	s := strings.TrimSpace(stringify(f))
	if s == "" {
		return DefaultCategory
	}
	return strings.ReplaceAll(s, ",", " - ")
}

func cleanDescription(f field) string {
	s := strings.TrimSpace(stringify(f))
	if s == "" {
		return DefaultDescription
	}
	return s
}

// optionalString coerces merchant and payment-method values, which stay
// unset rather than defaulted when absent.
func optionalString(f field) string {
	return strings.TrimSpace(stringify(f))
}

func stringify(f field) string {
	if !f.present || f.value == nil {
		return ""
	}
	switch v := f.value.(type) {
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
