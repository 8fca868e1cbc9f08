package entity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// MappingSnapshot holds the two lookup tables used to resolve a project to its
// resource group. A run receives a snapshot and never mutates it.
type MappingSnapshot struct {
	// ProjectCustomer mapeia projeto -> cliente.
	ProjectCustomer map[string]string `json:"proj_cust_map" yaml:"proj_cust_map" toml:"proj_cust_map"`

	// CustomerGroup mapeia cliente -> grupo de recursos.
	CustomerGroup map[string]string `json:"cust_rsgp_map" yaml:"cust_rsgp_map" toml:"cust_rsgp_map"`

	// UnassignedProjects são projetos já vistos em relatórios mas ainda sem cliente.
	UnassignedProjects []string `json:"unassigned_projects,omitempty" yaml:"unassigned_projects,omitempty" toml:"unassigned_projects,omitempty"`
}

// NewMappingSnapshot returns an empty snapshot with initialised maps.
func NewMappingSnapshot() MappingSnapshot {
	return MappingSnapshot{
		ProjectCustomer: map[string]string{},
		CustomerGroup:   map[string]string{},
	}
}

// Clone returns a deep copy of the snapshot.
func (s MappingSnapshot) Clone() MappingSnapshot {
	out := NewMappingSnapshot()
	for k, v := range s.ProjectCustomer {
		out.ProjectCustomer[k] = v
	}
	for k, v := range s.CustomerGroup {
		out.CustomerGroup[k] = v
	}
	out.UnassignedProjects = append([]string(nil), s.UnassignedProjects...)
	return out
}

// Projects lists every known project, assigned or not, sorted.
func (s MappingSnapshot) Projects() []string {
	return sortedUniq(append(lo.Keys(s.ProjectCustomer), s.UnassignedProjects...))
}

// Customers lists every customer referenced by either table, sorted.
func (s MappingSnapshot) Customers() []string {
	return sortedUniq(append(lo.Values(s.ProjectCustomer), lo.Keys(s.CustomerGroup)...))
}

// Groups lists the distinct resource groups found in the customer table, sorted.
func (s MappingSnapshot) Groups() []string {
	return sortedUniq(lo.Values(s.CustomerGroup))
}

// ResourceGroups returns the ordered set of groups a run aggregates into.
func (s MappingSnapshot) ResourceGroups() ResourceGroupSet {
	return NewResourceGroupSet(s.Groups()...)
}

// RegisterProject records a project seen in a report. An empty customer leaves it
// in UnassignedProjects so the mapping editor can pick it up later.
func (s *MappingSnapshot) RegisterProject(project, customer string) {
	if s.ProjectCustomer == nil {
		s.ProjectCustomer = map[string]string{}
	}
	if customer == "" {
		if _, ok := s.ProjectCustomer[project]; ok {
			return
		}
		if !lo.Contains(s.UnassignedProjects, project) {
			s.UnassignedProjects = append(s.UnassignedProjects, project)
			sort.Strings(s.UnassignedProjects)
		}
		return
	}
	s.ProjectCustomer[project] = customer
	s.UnassignedProjects = lo.Without(s.UnassignedProjects, project)
}

// Validate rejects blank identifiers on either side of both tables.
func (s MappingSnapshot) Validate() error {
	for p, c := range s.ProjectCustomer {
		if strings.TrimSpace(p) == "" || strings.TrimSpace(c) == "" {
			return fmt.Errorf("proj_cust_map has a blank entry: %q -> %q", p, c)
		}
	}
	for c, g := range s.CustomerGroup {
		if strings.TrimSpace(c) == "" || strings.TrimSpace(g) == "" {
			return fmt.Errorf("cust_rsgp_map has a blank entry: %q -> %q", c, g)
		}
	}
	return nil
}

func sortedUniq(values []string) []string {
	out := lo.Uniq(lo.Filter(values, func(v string, _ int) bool { return v != "" }))
	sort.Strings(out)
	return out
}

// ResourceGroupSet is the ordered set of resource groups for one run. When it is
// empty the run aggregates into a single implicit, ungrouped bucket.
type ResourceGroupSet struct {
	groups []string
}

// NewResourceGroupSet builds a set from groups, dropping duplicates and sorting.
func NewResourceGroupSet(groups ...string) ResourceGroupSet {
	return ResourceGroupSet{groups: sortedUniq(groups)}
}

// Implicit reports whether no group is configured.
func (s ResourceGroupSet) Implicit() bool {
	return len(s.groups) == 0
}

// Groups returns the configured groups in order.
func (s ResourceGroupSet) Groups() []string {
	return append([]string(nil), s.groups...)
}

// Index returns the position of group in the set, or -1.
func (s ResourceGroupSet) Index(group string) int {
	return lo.IndexOf(s.groups, group)
}
