// Package resolver turns a project identifier into a resource group through the
// project -> customer -> group tables of a mapping snapshot.
package resolver

import "github.com/diillson/weekly-usage-report/internal/domain/entity"

// Outcome tells how far a resolution got.
type Outcome int

const (
	Resolved Outcome = iota
	UnknownProject
	UnknownCustomer
)

func (o Outcome) String() string {
	switch o {
	case Resolved:
		return "resolved"
	case UnknownProject:
		return "unknown_project"
	case UnknownCustomer:
		return "unknown_customer"
	default:
		return "unknown"
	}
}

// Resolution is the result of resolving one project.
type Resolution struct {
	Project  string
	Customer string
	Group    string
	Outcome  Outcome
}

// OK reports whether a group was found.
func (r Resolution) OK() bool {
	return r.Outcome == Resolved
}

// Diagnostic returns the unresolved signal for this resolution, if any.
func (r Resolution) Diagnostic(line int) (entity.Diagnostic, bool) {
	switch r.Outcome {
	case UnknownProject:
		return entity.Diagnostic{
			Kind:     entity.DiagUnresolvedProject,
			Severity: entity.SeverityWarning,
			Subject:  r.Project,
			Line:     line,
			Message:  "no mapping for project: " + r.Project,
		}, true
	case UnknownCustomer:
		return entity.Diagnostic{
			Kind:     entity.DiagUnresolvedCustomer,
			Severity: entity.SeverityWarning,
			Subject:  r.Customer,
			Line:     line,
			Message:  "no mapping for customer: " + r.Customer + " (project " + r.Project + ")",
		}, true
	}
	return entity.Diagnostic{}, false
}

// Resolver resolves projects against a read-only snapshot.
type Resolver struct {
	projects  map[string]string
	customers map[string]string
}

// New builds a resolver over snapshot. The snapshot is not copied and must not
// be mutated while the resolver is in use.
func New(snapshot entity.MappingSnapshot) *Resolver {
	return &Resolver{
		projects:  snapshot.ProjectCustomer,
		customers: snapshot.CustomerGroup,
	}
}

// Resolve looks project up in the project table, then its customer in the
// customer table.
func (r *Resolver) Resolve(project string) Resolution {
	res := Resolution{Project: project}

	customer, ok := r.projects[project]
	if !ok {
		res.Outcome = UnknownProject
		return res
	}
	res.Customer = customer

	group, ok := r.customers[customer]
	if !ok {
		res.Outcome = UnknownCustomer
		return res
	}
	res.Group = group
	res.Outcome = Resolved
	return res
}
