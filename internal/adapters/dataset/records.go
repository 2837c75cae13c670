package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document is the on-disk dataset layout shared by the JSON and YAML loaders.
// Fields are pointers so a missing key can be told apart from a zero value.
type Document struct {
	Airports []AirportRecord `json:"airports"`
	Flights  []FlightRecord  `json:"flights"`
	Config   *ConfigRecord   `json:"config,omitempty"`
}

type AirportRecord struct {
	Code           *string  `json:"code"`
	Name           *string  `json:"name"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	MinWaitingTime *int     `json:"min_waiting_time,omitempty"`
}

// FlightRecord is a route with a per-weekday schedule keyed by lower-case day name.
type FlightRecord struct {
	From     *string               `json:"from"`
	To       *string               `json:"to"`
	BaseCost *float64              `json:"base_cost"`
	Distance *float64              `json:"distance,omitempty"`
	Schedule map[string]*DayRecord `json:"schedule"`
}

type DayRecord struct {
	DepartureTime  *string  `json:"departure_time"`
	ArrivalTime    *string  `json:"arrival_time"`
	CostMultiplier *float64 `json:"cost_multiplier"`
	Available      *Flag    `json:"available"`
}

type ConfigRecord struct {
	MinConnectionTime *int `json:"min_connection_time,omitempty"`
}

// Flag is a boolean that also accepts numbers, non-zero meaning true.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "true":
		*f = true
		return nil
	case "false", "null":
		*f = false
		return nil
	}

	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("flag: expected bool or number, got %s", b)
	}
	*f = n != 0
	return nil
}

func strPtr(s string) *string     { return &s }
func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func flagPtr(v bool) *Flag        { f := Flag(v); return &f }
