package models

import "strconv"

// DayPlan owns the bookings of one trip day. Booking order is insertion
// order and is load-bearing: the grid engine breaks column ties by it.
// TotalCost is a cached party total (cost x people); it is refreshed on
// every mutation and never trusted as ground truth by readers.
type DayPlan struct {
	Bookings  []Booking `json:"dayPlan"`
	TotalCost float64   `json:"totalCost,omitempty"`
}

// TripDetails is the root trip record. DayPlans is keyed by the day number
// rendered as a decimal string, matching the stored JSON layout. Keys stay
// within [1, Days]; shrinking Days discards out-of-range plans for good.
type TripDetails struct {
	Destination string             `json:"destination"`
	Days        int                `json:"days"`
	People      int                `json:"people"`
	Budget      float64            `json:"budget,omitempty"`
	DayPlans    map[string]DayPlan `json:"dayPlans,omitempty"`
}

// DayKey renders a day number the way it is stored.
func DayKey(day int) string {
	return strconv.Itoa(day)
}

// ParseDayKey is the inverse of DayKey.
func ParseDayKey(key string) (int, error) {
	return strconv.Atoi(key)
}

// Plan returns the plan for a day, or an empty one if none is stored.
func (t *TripDetails) Plan(day int) DayPlan {
	if t.DayPlans == nil {
		return DayPlan{}
	}
	return t.DayPlans[DayKey(day)]
}

// SetPlan stores the plan for a day, allocating the map on first use.
func (t *TripDetails) SetPlan(day int, plan DayPlan) {
	if t.DayPlans == nil {
		t.DayPlans = make(map[string]DayPlan)
	}
	t.DayPlans[DayKey(day)] = plan
}

// TripSummary is the recomputed budget rollup for the whole trip.
type TripSummary struct {
	Destination    string             `json:"destination"`
	Days           int                `json:"days"`
	People         int                `json:"people"`
	Budget         float64            `json:"budget"`
	BudgetForParty float64            `json:"budgetForParty"`
	DayTotals      map[string]float64 `json:"dayTotals"`
	ActivityTotal  float64            `json:"activityTotal"`
	FlightTotal    float64            `json:"flightTotal"`
	StayTotal      float64            `json:"stayTotal"`
	ExpenseTotal   float64            `json:"expenseTotal"`
	TripTotal      float64            `json:"tripTotal"`
}
