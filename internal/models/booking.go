package models

// Booking is a scheduled instance of an activity on a specific day.
// Title and Cost are snapshots taken at scheduling time and survive the
// activity's later edits or deletion; ActivityID is a weak back-reference
// used for de-duplication and explicit propagation, never ownership.
// Times are wall-clock "HH:MM" strings within a single day.
type Booking struct {
	ID         string  `json:"id,omitempty"`
	ActivityID int64   `json:"activityId"`
	Title      string  `json:"title"`
	Cost       float64 `json:"cost"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	Color      string  `json:"color,omitempty"`
}
