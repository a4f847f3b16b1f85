package models

// Activity is a reusable, cost-bearing itinerary item in the pool,
// independent of any specific day. Cost is per person.
type Activity struct {
	ID          int64   `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description,omitempty" yaml:"description"`
	Cost        float64 `json:"cost" yaml:"cost"`
}

// ActivityUpdate carries the fields of an activity edit. Nil fields are
// left untouched by Update.
type ActivityUpdate struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Cost        *float64 `json:"cost"`
}
