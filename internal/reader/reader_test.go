package reader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSV_HeaderBecomesKeys(t *testing.T) {
	input := strings.Join([]string{
		"Date,Category,Amount,Description",
		"2024-01-01,Food,20.50,Lunch",
		"2024-01-02,Travel,15.00,Bus",
	}, "\n")

	rows, err := CSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2024-01-01", rows[0]["Date"])
	assert.Equal(t, "Food", rows[0]["Category"])
	assert.Equal(t, "20.50", rows[0]["Amount"])
	assert.Equal(t, "Lunch", rows[0]["Description"])
	assert.Equal(t, "Travel", rows[1]["Category"])
}

func TestCSV_SkipsEmptyLinesAndShortRecords(t *testing.T) {
	input := strings.Join([]string{
		"date,category,amount,description",
		"2024-01-01,Food,20,Lunch",
		",,,",
		"2024-01-02,Travel",
	}, "\n")

	rows, err := CSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	_, hasAmount := rows[1]["amount"]
	assert.False(t, hasAmount, "short record should leave trailing columns absent")
}

func TestCSV_EmptyInput(t *testing.T) {
	rows, err := CSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestJSON_DecodesArrayOfObjects(t *testing.T) {
	input := `[
		{"date": "2024-01-01", "category": "Food", "amount": 20.5, "description": "Lunch"},
		{"date": "2024-01-02", "category": null, "amount": "15", "description": "Bus"}
	]`

	rows, err := JSON(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 20.5, rows[0]["amount"])
	assert.Nil(t, rows[1]["category"])
	assert.Equal(t, "15", rows[1]["amount"])
}

func TestJSON_RejectsNonScalarValues(t *testing.T) {
	_, err := JSON(strings.NewReader(`[{"date": "2024-01-01", "tags": ["a", "b"]}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a scalar")
}

func TestJSON_RejectsMalformedInput(t *testing.T) {
	_, err := JSON(strings.NewReader(`{"date": "2024-01-01"}`))
	assert.Error(t, err, "a bare object is not an array of rows")
}
