package calendar

import (
	"sort"

	"github.com/diillson/weekly-usage-report/internal/domain/entity"
	"github.com/samber/lo"
)

// Bounds returns the smallest and largest key seen across usages. ok is false
// when no usage holds any key.
func Bounds(usages []entity.GroupUsage) (lowest, highest entity.WeekKey, ok bool) {
	for _, u := range usages {
		for k := range u {
			if !ok || k < lowest {
				lowest = k
			}
			if !ok || k > highest {
				highest = k
			}
			ok = true
		}
	}
	return lowest, highest, ok
}

// Span lists every key from first to last inclusive, rolling over to week 1 of
// the next year after WeeksInYear. Generation stops at YearLimit.
func Span(first, last entity.WeekKey) (entity.WeekAxis, entity.Diagnostics) {
	var (
		axis  entity.WeekAxis
		diags entity.Diagnostics
	)
	if first > last {
		return axis, diags
	}

	year, week := Decode(first)
	flagged := map[int]bool{}
	for {
		if year >= YearLimit {
			diags.Error(entity.DiagRangeRunaway, Encode(year, week).String(), 0,
				"week generation reached year %d before %s; axis truncated", YearLimit, last)
			break
		}
		key := Encode(year, week)
		if key > last {
			break
		}
		axis = append(axis, key)

		weeks, err := WeeksInYear(year)
		if err != nil && !flagged[year] {
			diags.Warn(entity.DiagYearBeyondLookup, key.String(), 0, "%v", err)
			flagged[year] = true
		}
		week++
		if week > weeks {
			week = 1
			year++
		}
	}
	return axis, diags
}

// Normalize derives the dense, ascending week axis covering every key in usages.
// Keys the calendar does not generate (week 53 of a 52-week year) are merged in
// at their sorted position so no aggregated value is dropped. An empty axis
// means no data matched.
func Normalize(usages []entity.GroupUsage) (entity.WeekAxis, entity.Diagnostics) {
	lowest, highest, ok := Bounds(usages)
	if !ok {
		return nil, nil
	}
	axis, diags := Span(lowest, highest)

	present := lo.SliceToMap(axis, func(k entity.WeekKey) (entity.WeekKey, struct{}) { return k, struct{}{} })
	var stray []entity.WeekKey
	for _, u := range usages {
		for k := range u {
			if _, ok := present[k]; !ok {
				present[k] = struct{}{}
				stray = append(stray, k)
			}
		}
	}
	if len(stray) > 0 {
		axis = append(axis, stray...)
		sort.Slice(axis, func(i, j int) bool { return axis[i] < axis[j] })
	}
	return axis, diags
}
