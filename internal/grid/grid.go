// Package grid lays time-ranged bookings out on a 24-hour day schedule.
// The layout is a pure function of the booking list: it is recomputed on
// every call and never cached, so it cannot go stale relative to the data.
package grid

import (
	"fmt"
	"strconv"
	"strings"

	"wanderplan/internal/domain"
	"wanderplan/internal/models"
)

const (
	SlotsPerDay    = 24
	MinutesPerSlot = 60
	MinutesPerDay  = SlotsPerDay * MinutesPerSlot
)

// Span is a validated time range in minutes since midnight, End exclusive.
type Span struct {
	Start int
	End   int
}

// StartSlot is the first hour row the span occupies.
func (s Span) StartSlot() int {
	return s.Start / MinutesPerSlot
}

// EndSlot is the hour row after the last one the span occupies.
func (s Span) EndSlot() int {
	return (s.End + MinutesPerSlot - 1) / MinutesPerSlot
}

// RowSpan is the number of hour rows the span covers.
func (s Span) RowSpan() int {
	return s.EndSlot() - s.StartSlot()
}

// ParseClock converts a wall-clock "HH:MM" string to minutes since
// midnight. "24:00" is accepted as the end-of-day boundary.
func ParseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: invalid time %q, expected HH:MM", domain.ErrValidation, value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: invalid time %q, expected HH:MM", domain.ErrValidation, value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: invalid time %q, expected HH:MM", domain.ErrValidation, value)
	}
	if hours < 0 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: time %q is out of range", domain.ErrValidation, value)
	}
	total := hours*MinutesPerSlot + minutes
	if total > MinutesPerDay {
		return 0, fmt.Errorf("%w: time %q is out of range", domain.ErrValidation, value)
	}
	return total, nil
}

// ParseRange validates a booking's time range: both endpoints parse, the
// start lies within the day, and the end is strictly after the start.
// Degenerate and inverted ranges are rejected, never coerced.
func ParseRange(start, end string) (Span, error) {
	startMin, err := ParseClock(start)
	if err != nil {
		return Span{}, err
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return Span{}, err
	}
	if startMin >= MinutesPerDay {
		return Span{}, fmt.Errorf("%w: start time %q is out of range", domain.ErrValidation, start)
	}
	if endMin <= startMin {
		return Span{}, fmt.Errorf("%w: end time %q is not after start time %q", domain.ErrValidation, end, start)
	}
	return Span{Start: startMin, End: endMin}, nil
}

// Placement anchors one booking at its start row and assigned column.
// Index is the booking's position in the day's collection.
type Placement struct {
	Booking models.Booking `json:"booking"`
	Index   int            `json:"index"`
	Slot    int            `json:"slot"`
	Column  int            `json:"column"`
	RowSpan int            `json:"rowSpan"`
}

type CellKind int

const (
	// CellBlank is an empty cell: no booking touches it.
	CellBlank CellKind = iota
	// CellBooking anchors a placement; render it with its RowSpan.
	CellBooking
	// CellCovered sits inside another booking's row span; render nothing.
	CellCovered
)

type Cell struct {
	Kind      CellKind
	Placement *Placement
}

// Grid is the computed day layout: Columns lanes wide, with one placement
// per booking. No two placements share a (slot, column) pair.
type Grid struct {
	Columns    int         `json:"columns"`
	Placements []Placement `json:"placements"`
}

// Compute assigns each booking a column on the 24-row grid.
//
// Bookings are processed in collection order, not time order: a booking
// added later but starting earlier still takes whatever column is free,
// and already-placed bookings are never reordered. For each booking the
// smallest column index free across its whole slot range is reserved.
func Compute(bookings []models.Booking) (*Grid, error) {
	var taken [SlotsPerDay]map[int]bool

	g := &Grid{Placements: make([]Placement, 0, len(bookings))}
	for i, b := range bookings {
		span, err := ParseRange(b.StartTime, b.EndTime)
		if err != nil {
			return nil, fmt.Errorf("booking %d %q: %w", i, b.Title, err)
		}

		startSlot, endSlot := span.StartSlot(), span.EndSlot()

		column := 0
		for !freeAcross(taken[:], startSlot, endSlot, column) {
			column++
		}
		for slot := startSlot; slot < endSlot; slot++ {
			if taken[slot] == nil {
				taken[slot] = make(map[int]bool)
			}
			taken[slot][column] = true
		}

		if column+1 > g.Columns {
			g.Columns = column + 1
		}
		g.Placements = append(g.Placements, Placement{
			Booking: b,
			Index:   i,
			Slot:    startSlot,
			Column:  column,
			RowSpan: endSlot - startSlot,
		})
	}
	return g, nil
}

func freeAcross(taken []map[int]bool, startSlot, endSlot, column int) bool {
	for slot := startSlot; slot < endSlot; slot++ {
		if taken[slot][column] {
			return false
		}
	}
	return true
}

// Cells renders the grid as a 24 x Columns matrix. Each cell is either a
// booking anchor, a covered continuation of a row span, or blank.
func (g *Grid) Cells() [][]Cell {
	cells := make([][]Cell, SlotsPerDay)
	for row := range cells {
		cells[row] = make([]Cell, g.Columns)
	}
	for i := range g.Placements {
		p := &g.Placements[i]
		cells[p.Slot][p.Column] = Cell{Kind: CellBooking, Placement: p}
		for slot := p.Slot + 1; slot < p.Slot+p.RowSpan; slot++ {
			cells[slot][p.Column] = Cell{Kind: CellCovered}
		}
	}
	return cells
}
