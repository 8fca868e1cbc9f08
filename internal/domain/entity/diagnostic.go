package entity

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// DiagnosticKind classifies a non-fatal condition found during a run.
type DiagnosticKind string

const (
	DiagMalformedInput     DiagnosticKind = "malformed_input"
	DiagUnresolvedProject  DiagnosticKind = "unresolved_project"
	DiagUnresolvedCustomer DiagnosticKind = "unresolved_customer"
	DiagWeekOutOfRange     DiagnosticKind = "week_out_of_range"
	DiagWeekBeyondYear     DiagnosticKind = "week_beyond_year"
	DiagYearOutOfRange     DiagnosticKind = "year_out_of_range"
	DiagYearBeyondLookup   DiagnosticKind = "year_beyond_lookup"
	DiagRangeRunaway       DiagnosticKind = "range_runaway"
	DiagInvalidQuantity    DiagnosticKind = "invalid_quantity"
	DiagUnsafeCell         DiagnosticKind = "unsafe_cell"
)

// Severity distinguishes diagnostics that make the input untrustworthy from
// those that only flag a best-effort decision.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic is a structured report of something the caller may want to log,
// alert on or act upon.
type Diagnostic struct {
	Kind     DiagnosticKind `json:"kind"`
	Severity Severity       `json:"severity"`
	Subject  string         `json:"subject,omitempty"`
	Line     int            `json:"line,omitempty"`
	Message  string         `json:"message"`
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("line %d: %s", d.Line, d.Message)
	}
	return d.Message
}

// Diagnostics is an ordered collection of Diagnostic.
type Diagnostics []Diagnostic

// Warn appends a warning.
func (d *Diagnostics) Warn(kind DiagnosticKind, subject string, line int, format string, a ...interface{}) {
	*d = append(*d, Diagnostic{Kind: kind, Severity: SeverityWarning, Subject: subject, Line: line, Message: fmt.Sprintf(format, a...)})
}

// Error appends an error-severity diagnostic.
func (d *Diagnostics) Error(kind DiagnosticKind, subject string, line int, format string, a ...interface{}) {
	*d = append(*d, Diagnostic{Kind: kind, Severity: SeverityError, Subject: subject, Line: line, Message: fmt.Sprintf(format, a...)})
}

// Merge appends other.
func (d *Diagnostics) Merge(other Diagnostics) {
	*d = append(*d, other...)
}

// OfKind filters by kind.
func (d Diagnostics) OfKind(kind DiagnosticKind) Diagnostics {
	return lo.Filter(d, func(x Diagnostic, _ int) bool { return x.Kind == kind })
}

// HasErrors reports whether any diagnostic has error severity.
func (d Diagnostics) HasErrors() bool {
	return lo.ContainsBy(d, func(x Diagnostic) bool { return x.Severity == SeverityError })
}

// Errors returns only the error-severity diagnostics.
func (d Diagnostics) Errors() Diagnostics {
	return lo.Filter(d, func(x Diagnostic, _ int) bool { return x.Severity == SeverityError })
}

// Subjects returns the distinct subjects of one kind, sorted.
func (d Diagnostics) Subjects(kind DiagnosticKind) []string {
	return sortedUniq(lo.Map(d.OfKind(kind), func(x Diagnostic, _ int) string { return x.Subject }))
}

// Unresolved is the structured signal for projects and customers that have no
// mapping entry. The caller decides whether to prompt, log or auto-register.
type Unresolved struct {
	Projects  []string `json:"projects,omitempty"`
	Customers []string `json:"customers,omitempty"`
}

// Empty reports whether nothing was left unresolved.
func (u Unresolved) Empty() bool {
	return len(u.Projects) == 0 && len(u.Customers) == 0
}

// Unresolved extracts the unresolved projects and customers.
func (d Diagnostics) Unresolved() Unresolved {
	return Unresolved{
		Projects:  d.Subjects(DiagUnresolvedProject),
		Customers: d.Subjects(DiagUnresolvedCustomer),
	}
}

// CountByKind returns the number of diagnostics per kind, kinds sorted.
func (d Diagnostics) CountByKind() ([]DiagnosticKind, map[DiagnosticKind]int) {
	counts := lo.CountValuesBy(d, func(x Diagnostic) DiagnosticKind { return x.Kind })
	kinds := lo.Keys(counts)
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds, counts
}
