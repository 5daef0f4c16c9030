package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every (year, month) over a few years, including leap Februaries and months
// that start on a Monday or end on a Sunday.
func TestMonthGrid_Properties(t *testing.T) {
	for year := 2019; year <= 2026; year++ {
		for month := time.January; month <= time.December; month++ {
			weeks := MonthGrid(year, month)
			require.NotEmpty(t, weeks)

			var days []time.Time
			for _, w := range weeks {
				days = append(days, w[:]...)
			}

			assert.Equal(t, time.Monday, days[0].Weekday(), "%d-%02d starts on Monday", year, month)
			assert.Equal(t, time.Sunday, days[len(days)-1].Weekday(), "%d-%02d ends on Sunday", year, month)

			for i := 1; i < len(days); i++ {
				assert.Equal(t, days[i-1].AddDate(0, 0, 1), days[i], "%d-%02d consecutive days", year, month)
			}

			first, next := MonthRange(year, month)
			seen := map[time.Time]int{}
			for _, d := range days {
				seen[d]++
			}
			for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
				assert.Equal(t, 1, seen[d], "%s appears exactly once", d.Format("2006-01-02"))
			}

			assert.LessOrEqual(t, len(weeks), 6)
			assert.GreaterOrEqual(t, len(weeks), 4)
		}
	}
}

func TestMonthGrid_May2024(t *testing.T) {
	weeks := MonthGrid(2024, time.May)

	require.Len(t, weeks, 5)
	assert.Equal(t, Date(2024, time.April, 29), weeks[0][0])
	assert.Equal(t, Date(2024, time.May, 1), weeks[0][2])
	assert.Equal(t, Date(2024, time.June, 2), weeks[4][6])
}

func TestMonthGrid_NoPaddingNeeded(t *testing.T) {
	// February 2021 starts on a Monday and ends on a Sunday.
	weeks := MonthGrid(2021, time.February)

	require.Len(t, weeks, 4)
	assert.Equal(t, Date(2021, time.February, 1), weeks[0][0])
	assert.Equal(t, Date(2021, time.February, 28), weeks[3][6])
}

func TestMonthRange_December(t *testing.T) {
	start, end := MonthRange(2024, time.December)
	assert.Equal(t, Date(2024, time.December, 1), start)
	assert.Equal(t, Date(2025, time.January, 1), end)
}

func TestAdjacent(t *testing.T) {
	py, pm, ny, nm := Adjacent(2024, time.January)
	assert.Equal(t, 2023, py)
	assert.Equal(t, time.December, pm)
	assert.Equal(t, 2024, ny)
	assert.Equal(t, time.February, nm)

	py, pm, ny, nm = Adjacent(2024, time.December)
	assert.Equal(t, 2024, py)
	assert.Equal(t, time.November, pm)
	assert.Equal(t, 2025, ny)
	assert.Equal(t, time.January, nm)
}

func TestDay_DropsClock(t *testing.T) {
	got := Day(time.Date(2024, time.May, 10, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, Date(2024, time.May, 10), got)
}
