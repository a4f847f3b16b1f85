package models

// Flight, Stay, Expense and TodoItem are the self-contained side
// collections of a trip. Each is stored as an independent JSON array
// under its own key and feeds the trip-level budget rollup (the todo
// list contributes nothing).

type Flight struct {
	ID   string  `json:"id,omitempty"`
	From string  `json:"from"`
	To   string  `json:"to"`
	Date string  `json:"date,omitempty"`
	Cost float64 `json:"cost"`
}

type Stay struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Location string  `json:"location,omitempty"`
	CheckIn  string  `json:"checkIn,omitempty"`
	CheckOut string  `json:"checkOut,omitempty"`
	Cost     float64 `json:"cost"`
}

type Expense struct {
	ID    string  `json:"id,omitempty"`
	Title string  `json:"title"`
	Cost  float64 `json:"cost"`
}

type TodoItem struct {
	ID   string `json:"id,omitempty"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}
