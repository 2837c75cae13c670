package domain

import "errors"

var (
	// ErrUnknownAirport is returned when a code is absent from the loaded network.
	ErrUnknownAirport = errors.New("unknown airport")

	// ErrNoPathFound is returned by callers that require a route when the search
	// exhausted without reaching the destination.
	ErrNoPathFound = errors.New("no path found")

	// ErrMalformedTime is returned when a clock value cannot be parsed or is out of range.
	ErrMalformedTime = errors.New("malformed time")

	ErrUnknownWeekday   = errors.New("unknown weekday")
	ErrUnknownCriterion = errors.New("unknown criterion")

	// ErrInvalidFlight is returned for flights with negative cost or distance,
	// or whose origin equals their destination.
	ErrInvalidFlight = errors.New("invalid flight")

	ErrDuplicateAirport = errors.New("duplicate airport")
)
