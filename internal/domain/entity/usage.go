package entity

import (
	"sort"

	"github.com/samber/lo"
)

// GroupUsage acumula quantidades por semana para um grupo de recursos.
type GroupUsage map[WeekKey]float64

// Add sums qty into the total for week.
func (u GroupUsage) Add(week WeekKey, qty float64) {
	u[week] += qty
}

// Get returns the total for week, 0 when the week was never seen.
func (u GroupUsage) Get(week WeekKey) float64 {
	return u[week]
}

// Weeks returns the observed week keys in ascending order.
func (u GroupUsage) Weeks() []WeekKey {
	keys := lo.Keys(u)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// GroupBucket is the aggregation result of one resource group.
type GroupBucket struct {
	Group    string     `json:"group"`
	Implicit bool       `json:"implicit,omitempty"`
	Usage    GroupUsage `json:"-"`
}

// Aggregation holds one bucket per resource group, in ResourceGroupSet order.
type Aggregation struct {
	Buckets []GroupBucket
}

// Usages returns the usage maps in bucket order.
func (a Aggregation) Usages() []GroupUsage {
	return lo.Map(a.Buckets, func(b GroupBucket, _ int) GroupUsage { return b.Usage })
}

// Bucket finds the bucket of a configured group.
func (a Aggregation) Bucket(group string) (GroupBucket, bool) {
	return lo.Find(a.Buckets, func(b GroupBucket) bool { return !b.Implicit && b.Group == group })
}
