package models

// Storage keys. All persistent state lives in one flat key-value namespace
// with JSON-encoded values; these are the only keys the repositories touch.
const (
	KeyTripDetails        = "tripDetails"
	KeyActivities         = "activities"
	KeyFlights            = "flights"
	KeyStays              = "stays"
	KeyAdditionalExpenses = "additionalExpenses"
	KeyTodoList           = "todoList"
	KeySelectedDay        = "selectedDay"
)

const (
	// DefaultMaxTripDays upper bound for trip duration accepted on save
	DefaultMaxTripDays = 90

	// RateLimitRPS requests per second per API client
	RateLimitRPS = 10

	// RateLimitBurst limiter burst size for the API
	RateLimitBurst = 5
)
