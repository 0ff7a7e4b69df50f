// Package calmar implements the Calmarendian calendar: conversion between
// an absolute day reference (ADR) and the five-element calendar form
// (grand cycle, cycle, season, week, day), plus parsing and rendering of
// the two standard date notations.
//
// All values are immutable once constructed, so everything here is safe for
// concurrent use.
package calmar

// Structural constants of the calendar. The grand cycle length is exact:
// 700 cycles of 7 seasons x 350 days, plus 3,101 Festival days distributed
// by the leap rule in FestivalDays.
const (
	// MinADR and MaxADR bound the supported date range. MinADR is day one
	// of grand cycle 0; MaxADR is the final day of grand cycle 99.
	MinADR = -1_718_100
	MaxADR = 170_091_999

	DaysPerGrandCycle   = 1_718_101
	CyclesPerGrandCycle = 700
	SeasonsPerCycle     = 7
	DaysPerSeason       = 350
	DaysPerWeek         = 7
	WeeksPerSeason      = 50

	// FestivalWeek is the short terminal week appended to season seven.
	FestivalWeek = 51
)

// floorDiv returns the floor of a/b for positive b, unlike Go's native
// truncating division which rounds toward zero for negative a.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
