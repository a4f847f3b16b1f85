package models

// ExportBundle is the single JSON document produced by export and accepted
// by import. Every field is a direct copy of the corresponding stored value;
// dayPlans and budget are duplicated out of tripDetails for compatibility
// with the flat file layout. Missing keys default to empty collections.
type ExportBundle struct {
	TripDetails        TripDetails        `json:"tripDetails"`
	DayPlans           map[string]DayPlan `json:"dayPlans"`
	Flights            []Flight           `json:"flights"`
	Stays              []Stay             `json:"stays"`
	AdditionalExpenses []Expense          `json:"additionalExpenses"`
	Budget             float64            `json:"budget"`
	Activities         []Activity         `json:"activities"`
	TodoList           []TodoItem         `json:"todoList"`
}
