package gallery

import (
	"fmt"
	"strconv"
)

// FilterName identifies a derived navigation button.
type FilterName string

const (
	FilterStartDate FilterName = "StartDate"
	FilterPrevYear  FilterName = "PrevYear"
	FilterNext      FilterName = "Next"
	FilterWinter    FilterName = "Winter"
	FilterSpring    FilterName = "Spring"
	FilterSummer    FilterName = "Summer"
	FilterFall      FilterName = "Fall"
	FilterTop       FilterName = "Top"
)

// FilterButton is a navigation affordance derived from a result window. It is
// never persisted; a fresh set is computed for every query response.
type FilterButton struct {
	FilterName FilterName `json:"filterName"`
	StartDate  string     `json:"startDate"`
	// Exclusive marks the start date as a continuation cursor (the Next
	// button), to be applied with a strict comparison.
	Exclusive bool `json:"exclusive,omitempty"`
}

// Result windows larger than this get seasonal jump buttons.
const seasonButtonThreshold = 50

// DeriveFilterButtons computes the navigation buttons for one result window.
// taken holds the window's taken-date strings in ascending order; q is the
// query that produced it.
//
// An empty window derives nothing: every button needs a first or last row to
// anchor it. Large photo windows outside an album additionally get coarse
// season jumps across the window's year — the trailing December entry is a
// second Winter button by design, a shortcut that wraps the jump list around
// to the next winter.
func DeriveFilterButtons(q MediaQuery, taken []string) []FilterButton {
	if len(taken) == 0 {
		return nil
	}

	first := taken[0]
	day := first
	if len(day) > 10 {
		day = day[:10]
	}

	year := 0
	if len(first) >= 4 {
		year, _ = strconv.Atoi(first[:4])
	}

	buttons := []FilterButton{
		{FilterName: FilterStartDate, StartDate: day},
		{FilterName: FilterPrevYear, StartDate: fmt.Sprintf("%04d-01-01", year-1)},
	}

	if q.MediaType == Photo && q.AlbumKey == "" && len(taken) > seasonButtonThreshold {
		buttons = append(buttons,
			FilterButton{FilterName: FilterWinter, StartDate: fmt.Sprintf("%04d-01-01", year)},
			FilterButton{FilterName: FilterSpring, StartDate: fmt.Sprintf("%04d-04-01", year)},
			FilterButton{FilterName: FilterSummer, StartDate: fmt.Sprintf("%04d-07-01", year)},
			FilterButton{FilterName: FilterFall, StartDate: fmt.Sprintf("%04d-10-01", year)},
			FilterButton{FilterName: FilterWinter, StartDate: fmt.Sprintf("%04d-12-01", year)},
		)
	}

	buttons = append(buttons,
		// The last row's raw taken time is the next page's cursor. Applied
		// exclusively so a run of rows tied on the boundary hour cannot pin
		// pagination in place.
		FilterButton{FilterName: FilterNext, StartDate: taken[len(taken)-1], Exclusive: true},
		FilterButton{FilterName: FilterTop, StartDate: day},
	)

	return buttons
}
