// Command calmarconv converts Calmarendian dates between their forms.
//
// Usage:
//
//	go run ./cmd/calmarconv -date "777-7-07-1 CE"
//	go run ./cmd/calmarconv -adr 1906778
//	go run ./cmd/calmarconv -elements 2,77,7,7,1
//
// Exactly one input flag must be given; the tool prints every rendering of
// the date.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/calmarendian/calendar-api/internal/calmar"
)

func main() {
	dateStr := flag.String("date", "", "Date string in Grand Cycle or Common Symbolic Notation")
	adr := flag.Int("adr", 0, "Absolute day reference")
	adrSet := false
	elements := flag.String("elements", "", "Comma-separated grand_cycle,cycle,season,week,day")
	flag.Parse()

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "adr" {
			adrSet = true
		}
	})

	date, err := resolve(*dateStr, *adr, adrSet, *elements)
	if err != nil {
		fmt.Fprintf(os.Stderr, "calmarconv: %v\n", err)
		os.Exit(1)
	}

	printDate(date)
}

func resolve(dateStr string, adr int, adrSet bool, elements string) (calmar.Date, error) {
	given := 0
	for _, set := range []bool{dateStr != "", adrSet, elements != ""} {
		if set {
			given++
		}
	}
	if given != 1 {
		return calmar.Date{}, errors.New("exactly one of -date, -adr or -elements is required")
	}

	switch {
	case dateStr != "":
		return calmar.Parse(dateStr)
	case adrSet:
		return calmar.FromADR(adr)
	default:
		fields := strings.Split(elements, ",")
		if len(fields) != 5 {
			return calmar.Date{}, fmt.Errorf("-elements needs 5 numbers, got %d", len(fields))
		}
		var n [5]int
		for i, field := range fields {
			v, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return calmar.Date{}, fmt.Errorf("-elements: %q is not an integer", field)
			}
			n[i] = v
		}
		return calmar.FromNumbers(n[0], n[1], n[2], n[3], n[4])
	}
}

func printDate(d calmar.Date) {
	acr, era := d.AbsoluteCycleRef()

	fmt.Printf("ADR:              %d\n", d.ADR())
	fmt.Printf("GCN:              %s\n", d.GrandCycleNotation())
	fmt.Printf("CSN:              %s\n", d.CommonSymbolicNotation(calmar.EraDefault))
	fmt.Printf("CSN (marked):     %s\n", d.CommonSymbolicNotation(calmar.EraShowAll))
	fmt.Printf("Colloquial:       %s\n", d.Colloquial(calmar.EraDefault, false))
	fmt.Printf("Colloquial long:  %s\n", d.Colloquial(calmar.EraShowAll, true))
	fmt.Printf("Absolute cycle:   %d %s (%s)\n", acr, era, era.Name())
	fmt.Printf("Absolute season:  %d\n", d.AbsoluteSeasonRef())
}
