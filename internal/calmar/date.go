package calmar

import "fmt"

// Era classifies a date by its position relative to Cycle Zero and the start
// of recorded history.
type Era int

const (
	// EraBZ marks dates Before Time Zero (grand cycle 0 and earlier).
	EraBZ Era = iota
	// EraBH marks dates Before History (absolute cycles 1-500).
	EraBH
	// EraCE marks dates in the Current Era.
	EraCE
)

// String returns the two-letter era abbreviation.
func (e Era) String() string {
	return [...]string{"BZ", "BH", "CE"}[e]
}

// Name returns the spelled-out era name.
func (e Era) Name() string {
	return [...]string{"Before Time Zero", "Before History", "Current Era"}[e]
}

// EraVerbosity controls when a rendered date carries its era marker.
type EraVerbosity int

const (
	// EraDefault appends a marker only to dates Before Time Zero.
	EraDefault EraVerbosity = iota
	// EraShowBH appends a marker to all dates before the Current Era.
	EraShowBH
	// EraShowAll appends a marker to every date.
	EraShowAll
)

// Date is an immutable Calmarendian date: an absolute day reference together
// with its five validated calendar elements. The zero value is not a valid
// Date; use one of the From constructors or Parse.
type Date struct {
	adr        int
	grandCycle GrandCycle
	cycle      Cycle
	season     Season
	week       Week
	day        Day
}

// FromADR constructs a Date from an absolute day reference, day 1 being the
// first day of cycle 1.
func FromADR(adr int) (Date, error) {
	if adr < MinADR || adr > MaxADR {
		return Date{}, rangeError("ADR %d is not in %d..%d", adr, MinADR, MaxADR)
	}
	gc, c, s, w, d := decompose(adr)
	return Date{adr: adr, grandCycle: gc, cycle: c, season: s, week: w, day: d}, nil
}

// FromNumbers constructs a Date from the five element numbers of Grand Cycle
// Notation.
func FromNumbers(grandCycle, cycle, season, week, day int) (Date, error) {
	gc, err := NewGrandCycle(grandCycle)
	if err != nil {
		return Date{}, err
	}
	c, err := NewCycle(cycle)
	if err != nil {
		return Date{}, err
	}
	s, err := NewSeason(season)
	if err != nil {
		return Date{}, err
	}
	w, err := NewWeek(week, s)
	if err != nil {
		return Date{}, err
	}
	d, err := NewDay(day, w, c)
	if err != nil {
		return Date{}, err
	}
	return FromElements(gc, c, s, w, d)
}

// FromElements constructs a Date from already-validated element values,
// composing the absolute day reference additively.
func FromElements(gc GrandCycle, c Cycle, s Season, w Week, d Day) (Date, error) {
	adr := gc.DaysPrior() + c.DaysPrior() + s.DaysPrior() + w.DaysPrior() + d.Number()
	if adr < MinADR || adr > MaxADR {
		return Date{}, rangeError("date composes to ADR %d, outside %d..%d", adr, MinADR, MaxADR)
	}
	return Date{adr: adr, grandCycle: gc, cycle: c, season: s, week: w, day: d}, nil
}

// Parse constructs a Date from a date string in either Grand Cycle Notation
// or Common Symbolic Notation.
func Parse(dateString string) (Date, error) {
	gc, c, s, w, d, err := parseDateString(dateString)
	if err != nil {
		return Date{}, err
	}
	return FromNumbers(gc, c, s, w, d)
}

// decompose peels the five elements off an in-range ADR, highest order
// first. Every element passes through its validating constructor; a failure
// there means the peeling arithmetic itself is broken, so it panics.
func decompose(adr int) (GrandCycle, Cycle, Season, Week, Day) {
	residue := adr

	gc, err := NewGrandCycle(floorDiv(residue-1, DaysPerGrandCycle) + 1)
	if err != nil {
		invariant(err)
	}
	residue -= gc.DaysPrior()

	c, err := NewCycle(cycleDecode(residue))
	if err != nil {
		invariant(err)
	}
	residue -= c.DaysPrior()

	s, err := NewSeason(min((residue-1)/DaysPerSeason+1, SeasonsPerCycle))
	if err != nil {
		invariant(err)
	}
	residue -= s.DaysPrior()

	w, err := NewWeek(min((residue-1)/DaysPerWeek+1, FestivalWeek), s)
	if err != nil {
		invariant(err)
	}
	residue -= w.DaysPrior()

	d, err := NewDay(residue, w, c)
	if err != nil {
		invariant(err)
	}

	return gc, c, s, w, d
}

// cycleDecode returns the cycle within the current grand cycle in which the
// given residual day count falls. Cycle lengths are irregular, so the
// average-length estimate is only a lower bound; the exact boundary is found
// by probing forward through the cumulative table.
func cycleDecode(days int) int {
	cycle := days * CyclesPerGrandCycle / DaysPerGrandCycle
	for cycle < CyclesPerGrandCycle && cycleDaysPrior(cycle+1) < days {
		cycle++
	}
	return cycle
}

// ADR returns the date's absolute day reference.
func (d Date) ADR() int { return d.adr }

// GrandCycle returns the grand cycle element.
func (d Date) GrandCycle() GrandCycle { return d.grandCycle }

// Cycle returns the cycle-in-grand-cycle element.
func (d Date) Cycle() Cycle { return d.cycle }

// Season returns the season element.
func (d Date) Season() Season { return d.season }

// Week returns the week element.
func (d Date) Week() Week { return d.week }

// Day returns the day element.
func (d Date) Day() Day { return d.day }

// AbsoluteCycleRef returns the date's cycle as an unsigned count of cycles
// before or after Cycle Zero, together with its era marker.
func (d Date) AbsoluteCycleRef() (int, Era) {
	acr := (d.grandCycle.Number()-1)*CyclesPerGrandCycle + d.cycle.Number()
	if acr < 0 {
		acr = -acr
	}
	switch {
	case d.grandCycle.Number() <= 0:
		return acr, EraBZ
	case acr <= 500:
		return acr, EraBH
	default:
		return acr, EraCE
	}
}

// AbsoluteSeasonRef returns the number of seasons before or after Season 7
// of Cycle Zero; seasons Before Time Zero come out negative.
func (d Date) AbsoluteSeasonRef() int {
	return d.grandCycle.SeasonsPrior() + d.cycle.SeasonsPrior() + d.season.Number()
}

// GrandCycleNotation renders the date as a fixed-width GCN string,
// for example "01-001-1-01-1".
func (d Date) GrandCycleNotation() string {
	return fmt.Sprintf("%02d-%03d-%d-%02d-%d",
		d.grandCycle.Number(), d.cycle.Number(), d.season.Number(),
		d.week.Number(), d.day.Number())
}

// CommonSymbolicNotation renders the date as a CSN string, for example
// "777-7-07-1". The verbosity setting decides whether the era marker is
// appended; BZ dates always carry one.
func (d Date) CommonSymbolicNotation(verbosity EraVerbosity) string {
	acr, era := d.AbsoluteCycleRef()
	suffix := ""
	if showEra(era, verbosity) {
		suffix = " " + era.String()
	}
	return fmt.Sprintf("%03d-%d-%02d-%d%s",
		acr, d.season.Number(), d.week.Number(), d.day.Number(), suffix)
}

// Colloquial renders the date as prose, for example
// "Monday, Week 7 of Onset 777". In verbose form the day/week separator
// becomes "of" and the era marker is spelled out. Festival dates drop the
// week-and-season clause since the Festival week sits outside the named
// seasons: "Fest 4 of 777".
func (d Date) Colloquial(verbosity EraVerbosity, verbose bool) string {
	acr, era := d.AbsoluteCycleRef()
	suffix := ""
	if showEra(era, verbosity) {
		if verbose {
			suffix = " " + era.Name()
		} else {
			suffix = " " + era.String()
		}
	}
	if d.week.Number() == FestivalWeek {
		name := d.day.ShortName()
		if verbose {
			name = d.day.Name()
		}
		return fmt.Sprintf("%s of %d%s", name, acr, suffix)
	}
	separator := ","
	if verbose {
		separator = " of"
	}
	return fmt.Sprintf("%s%s Week %d of %s %d%s",
		d.day.Name(), separator, d.week.Number(), d.season.Name(), acr, suffix)
}

// showEra reports whether the era marker should be appended for the given
// verbosity setting.
func showEra(era Era, verbosity EraVerbosity) bool {
	return verbosity == EraShowAll ||
		(verbosity == EraShowBH && era == EraBH) ||
		era == EraBZ
}

// Compare orders dates by absolute day reference, returning -1, 0 or +1.
func (d Date) Compare(other Date) int {
	switch {
	case d.adr < other.adr:
		return -1
	case d.adr > other.adr:
		return 1
	default:
		return 0
	}
}

// Equal reports whether both dates refer to the same day.
func (d Date) Equal(other Date) bool { return d.adr == other.adr }

// Before reports whether d falls before other.
func (d Date) Before(other Date) bool { return d.adr < other.adr }

// After reports whether d falls after other.
func (d Date) After(other Date) bool { return d.adr > other.adr }

// String renders the date in Common Symbolic Notation, the form
// Calmarendians themselves would generally use.
func (d Date) String() string {
	return d.CommonSymbolicNotation(EraDefault)
}
