package entity

import "strconv"

// WeekKey encodes a (year, week) pair as year*100 + week so that numeric order
// is chronological order.
type WeekKey int

func (k WeekKey) String() string {
	return strconv.Itoa(int(k))
}

// WeekAxis is the ascending sequence of week keys used as pivot columns.
type WeekAxis []WeekKey

// Empty reports whether the axis has no weeks, i.e. no data matched.
func (a WeekAxis) Empty() bool {
	return len(a) == 0
}

// First returns the earliest week key. It panics on an empty axis.
func (a WeekAxis) First() WeekKey { return a[0] }

// Last returns the latest week key. It panics on an empty axis.
func (a WeekAxis) Last() WeekKey { return a[len(a)-1] }
