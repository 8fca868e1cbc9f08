package aggregate

import (
	"strconv"
	"strings"
)

// WorkType is the label prefix of a weekly resource name.
type WorkType string

const (
	Planner WorkType = "Planner"
	Builder WorkType = "Builder"
)

// WorkTypes lists the accepted prefixes.
var WorkTypes = []WorkType{Planner, Builder}

// ResourceName is a parsed "<Type>-<YYYY>-Week<N>" resource name.
type ResourceName struct {
	Type WorkType
	Year int
	Week int
}

const weekMarker = "-Week"

// ParseResourceName matches s against <Planner|Builder>-<4 digits>-Week<digits>.
// The whole string must match.
func ParseResourceName(s string) (ResourceName, bool) {
	var rn ResourceName

	prefix, rest, ok := strings.Cut(s, "-")
	if !ok {
		return rn, false
	}
	switch WorkType(prefix) {
	case Planner, Builder:
		rn.Type = WorkType(prefix)
	default:
		return rn, false
	}

	if len(rest) < 4 || !allDigits(rest[:4]) {
		return rn, false
	}
	rn.Year, _ = strconv.Atoi(rest[:4])

	weekPart, ok := strings.CutPrefix(rest[4:], weekMarker)
	if !ok || weekPart == "" || !allDigits(weekPart) {
		return rn, false
	}
	week, err := strconv.Atoi(weekPart)
	if err != nil {
		return rn, false
	}
	rn.Week = week
	return rn, true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
