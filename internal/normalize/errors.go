package normalize

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for whole-batch failures.
var (
	// ErrNoData is returned when the input row sequence is empty.
	ErrNoData = errors.New("no data provided")

	// ErrNoValidTransactions is returned when every row was eliminated
	// during filtering and cleaning.
	ErrNoValidTransactions = errors.New("no valid transactions found after cleaning")
)

// MissingColumnsError reports required canonical columns that could not be
// mapped from the first sample row.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Columns, ", ")
}

// InvalidDateError reports a date value that is present but fails calendar
// parsing. A single occurrence aborts the whole batch.
type InvalidDateError struct {
	Value any
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date format: %v", e.Value)
}

// InvalidAmountError reports an amount value that is present but not numeric.
// A single occurrence aborts the whole batch.
type InvalidAmountError struct {
	Value any
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount: %v", e.Value)
}
