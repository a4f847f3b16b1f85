package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderplan/internal/domain"
	"wanderplan/internal/models"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		value   string
		minutes int
		ok      bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"23:59", 1439, true},
		{"24:00", 1440, true},
		{"24:01", 0, false},
		{"25:00", 0, false},
		{"9", 0, false},
		{"09:60", 0, false},
		{"ab:cd", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			got, err := ParseClock(tc.value)
			if !tc.ok {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.minutes, got)
		})
	}
}

func TestParseRange(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		span, err := ParseRange("09:00", "11:00")
		require.NoError(t, err)
		assert.Equal(t, 540, span.Start)
		assert.Equal(t, 660, span.End)
	})

	t.Run("EndNotAfterStart", func(t *testing.T) {
		_, err := ParseRange("11:00", "11:00")
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = ParseRange("11:00", "09:00")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("StartAtEndOfDay", func(t *testing.T) {
		_, err := ParseRange("24:00", "24:00")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("EndOfDayBoundary", func(t *testing.T) {
		span, err := ParseRange("23:00", "24:00")
		require.NoError(t, err)
		assert.Equal(t, 1, span.RowSpan())
		assert.Equal(t, 23, span.StartSlot())
	})
}

func TestRowSpan(t *testing.T) {
	// 09:00-11:00 occupies slots 9 and 10.
	span, err := ParseRange("09:00", "11:00")
	require.NoError(t, err)
	assert.Equal(t, 9, span.StartSlot())
	assert.Equal(t, 11, span.EndSlot())
	assert.Equal(t, 2, span.RowSpan())

	// Partial hours round outward: 09:30-10:15 still covers rows 9 and 10.
	span, err = ParseRange("09:30", "10:15")
	require.NoError(t, err)
	assert.Equal(t, 9, span.StartSlot())
	assert.Equal(t, 2, span.RowSpan())

	// A booking entirely inside one hour spans a single row.
	span, err = ParseRange("09:15", "09:45")
	require.NoError(t, err)
	assert.Equal(t, 1, span.RowSpan())
}

func booking(title, start, end string) models.Booking {
	return models.Booking{Title: title, StartTime: start, EndTime: end}
}

func TestCompute_Empty(t *testing.T) {
	g, err := Compute(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Columns)
	assert.Empty(t, g.Placements)
}

func TestCompute_NonOverlapping(t *testing.T) {
	g, err := Compute([]models.Booking{
		booking("breakfast", "08:00", "09:00"),
		booking("museum", "10:00", "12:00"),
		booking("dinner", "19:00", "21:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, g.Columns)
	for _, p := range g.Placements {
		assert.Equal(t, 0, p.Column)
	}
}

func TestCompute_PairwiseOverlap(t *testing.T) {
	// All three are active at 10:30, so each needs its own column and the
	// grid is exactly as wide as the max concurrency.
	g, err := Compute([]models.Booking{
		booking("a", "09:00", "12:00"),
		booking("b", "10:00", "11:00"),
		booking("c", "10:00", "13:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, g.Columns)

	seen := make(map[[2]int]string)
	for _, p := range g.Placements {
		for slot := p.Slot; slot < p.Slot+p.RowSpan; slot++ {
			key := [2]int{slot, p.Column}
			prev, clash := seen[key]
			assert.False(t, clash, "bookings %q and %q share slot %d column %d", prev, p.Booking.Title, slot, p.Column)
			seen[key] = p.Booking.Title
		}
	}
}

func TestCompute_InsertionOrderTieBreak(t *testing.T) {
	// A booking added later but starting earlier does not reorder the
	// bookings placed before it: columns follow collection order.
	g, err := Compute([]models.Booking{
		booking("late", "10:00", "12:00"),
		booking("early", "08:00", "11:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, g.Placements[0].Column, "first-inserted keeps column 0")
	assert.Equal(t, 1, g.Placements[1].Column, "earlier-starting newcomer takes the next free column")
}

func TestCompute_ColumnReuse(t *testing.T) {
	// d overlaps only a, so it can reuse b's freed column 1.
	g, err := Compute([]models.Booking{
		booking("a", "09:00", "13:00"),
		booking("b", "09:00", "10:00"),
		booking("c", "09:00", "10:00"),
		booking("d", "11:00", "12:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, g.Columns)
	assert.Equal(t, 1, g.Placements[3].Column)
}

func TestCompute_InvalidRange(t *testing.T) {
	_, err := Compute([]models.Booking{
		booking("bad", "12:00", "12:00"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCells(t *testing.T) {
	g, err := Compute([]models.Booking{
		booking("museum", "09:00", "11:00"),
		booking("tour", "09:00", "10:00"),
	})
	require.NoError(t, err)

	cells := g.Cells()
	require.Len(t, cells, SlotsPerDay)
	for _, row := range cells {
		require.Len(t, row, 2)
	}

	anchor := cells[9][0]
	require.Equal(t, CellBooking, anchor.Kind)
	require.NotNil(t, anchor.Placement)
	assert.Equal(t, "museum", anchor.Placement.Booking.Title)
	assert.Equal(t, 2, anchor.Placement.RowSpan)

	assert.Equal(t, CellCovered, cells[10][0].Kind)
	assert.Equal(t, CellBooking, cells[9][1].Kind)
	assert.Equal(t, CellBlank, cells[10][1].Kind)
	assert.Equal(t, CellBlank, cells[8][0].Kind)

	// Every booking is visible exactly once.
	anchors := 0
	for _, row := range cells {
		for _, c := range row {
			if c.Kind == CellBooking {
				anchors++
			}
		}
	}
	assert.Equal(t, 2, anchors)
}
