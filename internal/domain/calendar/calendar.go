// Package calendar encodes (year, week) pairs into sortable WeekKeys, knows how
// many weeks each year has, and expands a key range into a dense week axis.
package calendar

import (
	"errors"
	"fmt"

	"github.com/diillson/weekly-usage-report/internal/domain/entity"
)

const (
	// DefaultWeeks is the week count of an ordinary year.
	DefaultWeeks = 52
	// MaxWeekNumber is the largest week number any year can have.
	MaxWeekNumber = 53
	// MaxValidatedYear is the last year covered by the long-year table.
	MaxValidatedYear = 2054
	// YearLimit bounds every generated or accepted key. Keys at or past it are refused.
	YearLimit = 3000
)

// ErrBeyondLookup flags a year the long-year table does not cover.
var ErrBeyondLookup = errors.New("year is beyond the validated week-count table")

// longYears lists the years with 53 weeks up to MaxValidatedYear.
var longYears = map[int]struct{}{
	2004: {}, 2009: {}, 2015: {}, 2020: {}, 2026: {},
	2032: {}, 2037: {}, 2043: {}, 2048: {}, 2054: {},
}

// Encode builds the composite key year*100 + week.
func Encode(year, week int) entity.WeekKey {
	return entity.WeekKey(year*100 + week)
}

// Decode splits a key back into year and week.
func Decode(key entity.WeekKey) (year, week int) {
	return int(key) / 100, int(key) % 100
}

// WeeksInYear returns 53 for the known long years and 52 otherwise. Years past
// MaxValidatedYear still get 52, together with ErrBeyondLookup.
func WeeksInYear(year int) (int, error) {
	if _, ok := longYears[year]; ok {
		return MaxWeekNumber, nil
	}
	if year > MaxValidatedYear {
		return DefaultWeeks, fmt.Errorf("%w: %d (max %d)", ErrBeyondLookup, year, MaxValidatedYear)
	}
	return DefaultWeeks, nil
}

// LongYears returns the 53-week years in ascending order.
func LongYears() []int {
	return []int{2004, 2009, 2015, 2020, 2026, 2032, 2037, 2043, 2048, 2054}
}
