package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/weekly-usage-report/internal/domain/entity"
)

func TestEncodeDecode(t *testing.T) {
	assert.Equal(t, entity.WeekKey(202301), Encode(2023, 1))
	assert.Equal(t, entity.WeekKey(202053), Encode(2020, 53))

	for year := 2000; year < 2100; year++ {
		for week := 1; week <= MaxWeekNumber; week++ {
			y, w := Decode(Encode(year, week))
			require.Equal(t, year, y)
			require.Equal(t, week, w)
		}
	}
}

func TestEncode_PreservesChronologicalOrder(t *testing.T) {
	assert.Less(t, Encode(2020, 53), Encode(2021, 1))
	assert.Less(t, Encode(2021, 9), Encode(2021, 10))
}

func TestWeeksInYear(t *testing.T) {
	for _, year := range LongYears() {
		n, err := WeeksInYear(year)
		require.NoError(t, err)
		assert.Equal(t, 53, n, "year %d", year)
	}

	for _, year := range []int{1999, 2019, 2021, 2023, 2025, 2053} {
		n, err := WeeksInYear(year)
		require.NoError(t, err)
		assert.Equal(t, 52, n, "year %d", year)
	}
}

func TestWeeksInYear_BeyondLookup(t *testing.T) {
	n, err := WeeksInYear(MaxValidatedYear + 1)
	assert.Equal(t, DefaultWeeks, n)
	assert.ErrorIs(t, err, ErrBeyondLookup)
}

func TestLongYears_Sorted(t *testing.T) {
	years := LongYears()
	require.NotEmpty(t, years)
	for i := 1; i < len(years); i++ {
		assert.Less(t, years[i-1], years[i])
	}
	assert.Equal(t, MaxValidatedYear, years[len(years)-1])
}
