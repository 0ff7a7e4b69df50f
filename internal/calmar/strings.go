package calmar

import (
	"regexp"
	"strconv"
	"strings"
)

// The two recognized date string notations.
//
// Grand Cycle Notation spells out all five elements, zero padded:
// "01-001-1-01-1". Common Symbolic Notation replaces the grand-cycle/cycle
// pair with an absolute cycle reference and an optional era marker:
// "777-7-07-1 CE".
var (
	gcnPattern = regexp.MustCompile(`^([0-9]{2})-([0-7][0-9]{2})-([1-7])-([0-5][0-9])-([1-8])$`)
	csnPattern = regexp.MustCompile(`(?i)^([1-9]?[0-9]{3})-([1-7])-([0-5][0-9])-([1-8]) *(BZ|BH|CE)?$`)
)

// parseDateString matches a date string against both notations and returns
// the five element numbers of Grand Cycle Notation.
func parseDateString(dateString string) (grandCycle, cycle, season, week, day int, err error) {
	if m := gcnPattern.FindStringSubmatch(dateString); m != nil {
		return parseGCN(m)
	}
	if m := csnPattern.FindStringSubmatch(dateString); m != nil {
		return parseCSN(m)
	}
	return 0, 0, 0, 0, 0, formatError("%q matches neither Grand Cycle Notation nor Common Symbolic Notation", dateString)
}

// parseGCN converts the submatches of a GCN string into element numbers.
func parseGCN(m []string) (grandCycle, cycle, season, week, day int, err error) {
	n, err := atoiAll(m[1:6])
	if err != nil {
		return 0, 0, 0, 0, 0, err
	}
	return n[0], n[1], n[2], n[3], n[4], nil
}

// parseCSN converts the submatches of a CSN string into element numbers.
// The absolute cycle reference and era marker collapse into a signed cycle
// count: a BZ marker negates it, any other marker (or none) leaves it
// positive, mirroring how rendering picks a default marker.
func parseCSN(m []string) (grandCycle, cycle, season, week, day int, err error) {
	n, err := atoiAll(m[1:5])
	if err != nil {
		return 0, 0, 0, 0, 0, err
	}
	signed := n[0]
	if strings.EqualFold(m[5], EraBZ.String()) {
		signed = -signed
	}
	grandCycle = floorDiv(signed-1, CyclesPerGrandCycle) + 1
	cycle = signed - (grandCycle-1)*CyclesPerGrandCycle
	return grandCycle, cycle, n[1], n[2], n[3], nil
}

// atoiAll converts a slice of already-pattern-matched digit strings.
func atoiAll(fields []string) ([]int, error) {
	numbers := make([]int, len(fields))
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, conversionError("cannot convert %q to an integer", field)
		}
		numbers[i] = n
	}
	return numbers, nil
}
