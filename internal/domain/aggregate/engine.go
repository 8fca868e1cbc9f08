package aggregate

import (
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/diillson/weekly-usage-report/internal/domain/calendar"
	"github.com/diillson/weekly-usage-report/internal/domain/entity"
	"github.com/diillson/weekly-usage-report/internal/domain/resolver"
)

// Summary counts what happened to the data rows of one run.
type Summary struct {
	DataRows int              `json:"data_rows"`
	Matched  int              `json:"matched"`
	Counted  int              `json:"counted"`
	ByType   map[WorkType]int `json:"by_type"`
}

// Result is the outcome of one aggregation pass.
type Result struct {
	Aggregation entity.Aggregation
	Diagnostics entity.Diagnostics
	Summary     Summary
}

// Engine sums weekly resource quantities per resource group.
type Engine struct {
	layout Layout
	logger *zap.Logger
}

// NewEngine creates an engine for layout. A nil logger discards debug output.
func NewEngine(layout Layout, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{layout: layout, logger: logger}
}

// Layout returns the report layout the engine reads.
func (e *Engine) Layout() Layout {
	return e.layout
}

// Aggregate keeps the data rows whose resource name is a weekly resource, resolves
// each row's project to a group and adds its quantity to that group's week.
//
// With an implicit group set every matching row lands in the single bucket,
// resolved or not. Otherwise rows that do not resolve contribute to no group.
// Week numbers outside 1..53 and years at or past calendar.YearLimit are
// reported and left out. The result does not depend on row order.
//
// Diagnostic lines come from Layout.LineOf; use AggregateLines when the text
// line of each row is known.
func (e *Engine) Aggregate(rows []entity.ReportRow, snapshot entity.MappingSnapshot, groups entity.ResourceGroupSet) Result {
	return e.AggregateLines(rows, nil, snapshot, groups)
}

// AggregateLines is Aggregate with lines[i] the text line of rows[i]. Rows past
// the end of lines fall back to Layout.LineOf.
func (e *Engine) AggregateLines(rows []entity.ReportRow, lines []int, snapshot entity.MappingSnapshot, groups entity.ResourceGroupSet) Result {
	res := Result{Summary: Summary{DataRows: len(rows), ByType: map[WorkType]int{}}}
	res.Aggregation = newAggregation(groups)

	r := resolver.New(snapshot)
	resolved := map[string]resolver.Resolution{}
	flaggedKeys := map[entity.WeekKey]bool{}
	flaggedYears := map[int]bool{}
	diags := &res.Diagnostics

	for i, row := range rows {
		line := e.layout.LineOf(i)
		if i < len(lines) {
			line = lines[i]
		}
		name := row.Field(e.layout.ResourceNameCol)
		rn, ok := ParseResourceName(name)
		if !ok {
			continue
		}
		res.Summary.Matched++

		project := row.Field(e.layout.EventNameCol)
		resolution, seen := resolved[project]
		if !seen {
			resolution = r.Resolve(project)
			resolved[project] = resolution
			if d, unresolved := resolution.Diagnostic(line); unresolved {
				*diags = append(*diags, d)
			}
		}

		bucket := 0
		if !groups.Implicit() {
			if !resolution.OK() {
				continue
			}
			bucket = groups.Index(resolution.Group)
			if bucket < 0 {
				continue
			}
		}

		if rn.Week < 1 || rn.Week > calendar.MaxWeekNumber {
			diags.Warn(entity.DiagWeekOutOfRange, name, line,
				"invalid week %d in %q; row left out", rn.Week, name)
			continue
		}
		if rn.Year >= calendar.YearLimit {
			diags.Warn(entity.DiagYearOutOfRange, name, line,
				"year %d in %q is at or past %d; row left out", rn.Year, name, calendar.YearLimit)
			continue
		}
		key := calendar.Encode(rn.Year, rn.Week)
		weeks, err := calendar.WeeksInYear(rn.Year)
		if err != nil && !flaggedYears[rn.Year] {
			diags.Warn(entity.DiagYearBeyondLookup, name, line, "%v", err)
			flaggedYears[rn.Year] = true
		}
		if rn.Week > weeks && !flaggedKeys[key] {
			diags.Warn(entity.DiagWeekBeyondYear, name, line,
				"week %d does not exist in %d (%d weeks); counted anyway", rn.Week, rn.Year, weeks)
			flaggedKeys[key] = true
		}

		raw := row.Field(e.layout.QuantityCol)
		qty, err := parseQuantity(raw)
		if err != nil {
			diags.Warn(entity.DiagInvalidQuantity, raw, line,
				"resource quantity %q for %q is not a number; row left out", raw, name)
			continue
		}

		res.Aggregation.Buckets[bucket].Usage.Add(key, qty)
		res.Summary.Counted++
		res.Summary.ByType[rn.Type]++
	}

	for _, b := range res.Aggregation.Buckets {
		e.logger.Debug("resource group usage",
			zap.String("group", b.Group),
			zap.Bool("implicit", b.Implicit),
			zap.Int("weeks", len(b.Usage)),
			zap.Any("usage", b.Usage))
	}
	return res
}

func newAggregation(groups entity.ResourceGroupSet) entity.Aggregation {
	if groups.Implicit() {
		return entity.Aggregation{Buckets: []entity.GroupBucket{{Implicit: true, Usage: entity.GroupUsage{}}}}
	}
	names := groups.Groups()
	buckets := make([]entity.GroupBucket, len(names))
	for i, g := range names {
		buckets[i] = entity.GroupBucket{Group: g, Usage: entity.GroupUsage{}}
	}
	return entity.Aggregation{Buckets: buckets}
}

// parseQuantity reads a decimal quantity. A blank cell counts as zero.
func parseQuantity(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}
