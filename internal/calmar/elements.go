package calmar

// The five date element types. Each is a validated immutable wrapper around
// its element number; DaysPrior reports the days contributed by all
// lower-numbered siblings within the same parent, so that for any date
//
//	adr = gc.DaysPrior() + c.DaysPrior() + s.DaysPrior() + w.DaysPrior() + d.Number()

// GrandCycle identifies a super-cycle of exactly 1,718,101 days.
type GrandCycle struct {
	number int
}

// NewGrandCycle validates n against the range the supported ADR span implies
// (grand cycles 0 through 99).
func NewGrandCycle(n int) (GrandCycle, error) {
	if n < 0 || n > 99 {
		return GrandCycle{}, rangeError("grand cycle %d is not in 0..99", n)
	}
	return GrandCycle{number: n}, nil
}

func (g GrandCycle) Number() int { return g.number }

// DaysPrior returns the total days in all grand cycles before this one.
func (g GrandCycle) DaysPrior() int {
	return (g.number - 1) * DaysPerGrandCycle
}

// SeasonsPrior returns the total seasons in all grand cycles before this one.
func (g GrandCycle) SeasonsPrior() int {
	return (g.number - 1) * CyclesPerGrandCycle * SeasonsPerCycle
}

// Cycle identifies a cycle within its grand cycle. Cycle lengths are
// irregular: each cycle has 2,450 regular-season days plus a Festival week
// whose length the leap rule in FestivalDays determines.
type Cycle struct {
	number int
}

// NewCycle validates n against 1..700.
func NewCycle(n int) (Cycle, error) {
	if n < 1 || n > CyclesPerGrandCycle {
		return Cycle{}, rangeError("cycle %d is not in 1..%d", n, CyclesPerGrandCycle)
	}
	return Cycle{number: n}, nil
}

func (c Cycle) Number() int { return c.number }

// DaysPrior returns the cumulative days in all earlier cycles of the same
// grand cycle: 2,454 per cycle (2,450 season days plus the four-day Festival
// baseline) plus three extra Festival days for each earlier seventh cycle.
func (c Cycle) DaysPrior() int {
	return cycleDaysPrior(c.number)
}

// SeasonsPrior returns the cumulative seasons in all earlier cycles of the
// same grand cycle.
func (c Cycle) SeasonsPrior() int {
	return (c.number - 1) * SeasonsPerCycle
}

// FestivalDays returns the length of this cycle's Festival week: four days
// ordinarily, seven when the cycle number divides by seven, eight in the
// final cycle of the grand cycle.
func (c Cycle) FestivalDays() int {
	switch {
	case c.number == CyclesPerGrandCycle:
		return 8
	case c.number%7 == 0:
		return 7
	default:
		return 4
	}
}

// cycleDaysPrior is the DaysPrior computation on a bare cycle number, used
// by the decomposition engine while probing for the cycle boundary.
func cycleDaysPrior(n int) int {
	return (n-1)*2454 + 3*((n-1)/7)
}

// Season identifies one of the seven seasons of a cycle.
type Season struct {
	number int
}

// NewSeason validates n against 1..7.
func NewSeason(n int) (Season, error) {
	if n < 1 || n > SeasonsPerCycle {
		return Season{}, rangeError("season %d is not in 1..%d", n, SeasonsPerCycle)
	}
	return Season{number: n}, nil
}

func (s Season) Number() int { return s.number }

// Name returns the season's common name (Winter through Onset).
func (s Season) Name() string { return seasonNames[s.number] }

// DaysPrior returns the cumulative days of earlier seasons in the cycle.
func (s Season) DaysPrior() int {
	return (s.number - 1) * DaysPerSeason
}

// Week identifies a week within a season. Weeks 1-50 are ordinary; week 51
// is the Festival week and exists only in season seven.
type Week struct {
	number int
}

// NewWeek validates n against the season: 1..50 everywhere, with week 51
// additionally allowed in season seven.
func NewWeek(n int, season Season) (Week, error) {
	max := WeeksPerSeason
	if season.Number() == SeasonsPerCycle {
		max = FestivalWeek
	}
	if n < 1 || n > max {
		return Week{}, rangeError("week %d is not in 1..%d for season %d", n, max, season.Number())
	}
	return Week{number: n}, nil
}

func (w Week) Number() int { return w.number }

// DaysPrior returns the cumulative days of earlier weeks in the season.
func (w Week) DaysPrior() int {
	return (w.number - 1) * DaysPerWeek
}

// Day identifies a day within its week. Ordinary weeks run 1..7; the
// Festival week's upper bound depends on the owning cycle.
type Day struct {
	number   int
	festival bool
}

// NewDay validates n against the week and, for the Festival week, the cycle.
func NewDay(n int, week Week, cycle Cycle) (Day, error) {
	max := DaysPerWeek
	festival := week.Number() == FestivalWeek
	if festival {
		max = cycle.FestivalDays()
	}
	if n < 1 || n > max {
		return Day{}, rangeError("day %d is not in 1..%d for week %d of cycle %d",
			n, max, week.Number(), cycle.Number())
	}
	return Day{number: n, festival: festival}, nil
}

func (d Day) Number() int { return d.number }

// Name returns the full day-of-week name, or the Festival day name for days
// of the terminal week.
func (d Day) Name() string {
	if d.festival {
		return festivalNames[d.number]
	}
	return dayNames[d.number]
}

// ShortName returns the abbreviated form of Name.
func (d Day) ShortName() string {
	if d.festival {
		return festivalShortNames[d.number]
	}
	return dayShortNames[d.number]
}
