package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappingSnapshot_Listings(t *testing.T) {
	s := NewMappingSnapshot()
	s.ProjectCustomer["P2"] = "C1"
	s.ProjectCustomer["P1"] = "C2"
	s.CustomerGroup["C1"] = "G2"
	s.CustomerGroup["C3"] = "G1"
	s.CustomerGroup["C4"] = "G2"
	s.UnassignedProjects = []string{"P0"}

	assert.Equal(t, []string{"P0", "P1", "P2"}, s.Projects())
	assert.Equal(t, []string{"C1", "C2", "C3", "C4"}, s.Customers())
	assert.Equal(t, []string{"G1", "G2"}, s.Groups())

	set := s.ResourceGroups()
	assert.False(t, set.Implicit())
	assert.Equal(t, []string{"G1", "G2"}, set.Groups())
	assert.Equal(t, 1, set.Index("G2"))
	assert.Equal(t, -1, set.Index("G9"))
}

func TestResourceGroupSet_Implicit(t *testing.T) {
	assert.True(t, NewMappingSnapshot().ResourceGroups().Implicit())
	assert.True(t, NewResourceGroupSet("").Implicit())
}

func TestMappingSnapshot_RegisterProject(t *testing.T) {
	var s MappingSnapshot

	s.RegisterProject("P1", "")
	s.RegisterProject("P1", "")
	s.RegisterProject("P0", "")
	assert.Equal(t, []string{"P0", "P1"}, s.UnassignedProjects)

	s.RegisterProject("P1", "C1")
	assert.Equal(t, "C1", s.ProjectCustomer["P1"])
	assert.Equal(t, []string{"P0"}, s.UnassignedProjects)

	// an assigned project is never moved back to unassigned
	s.RegisterProject("P1", "")
	assert.Equal(t, []string{"P0"}, s.UnassignedProjects)
}

func TestMappingSnapshot_Clone(t *testing.T) {
	s := NewMappingSnapshot()
	s.ProjectCustomer["P1"] = "C1"

	c := s.Clone()
	c.ProjectCustomer["P2"] = "C2"
	c.CustomerGroup["C1"] = "G1"

	assert.Len(t, s.ProjectCustomer, 1)
	assert.Empty(t, s.CustomerGroup)
}

func TestMappingSnapshot_Validate(t *testing.T) {
	s := NewMappingSnapshot()
	s.ProjectCustomer["P1"] = "C1"
	s.CustomerGroup["C1"] = "G1"
	require.NoError(t, s.Validate())

	s.CustomerGroup["C2"] = " "
	assert.ErrorContains(t, s.Validate(), "cust_rsgp_map")

	s = NewMappingSnapshot()
	s.ProjectCustomer[""] = "C1"
	assert.ErrorContains(t, s.Validate(), "proj_cust_map")
}
