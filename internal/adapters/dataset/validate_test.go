package dataset

import (
	"errors"
	"path/filepath"
	"testing"

	"flight-route-service/internal/domain"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCollectsWarnings(t *testing.T) {
	doc, err := ReadFile(filepath.Join("testdata", "sample.json"))
	require.NoError(t, err)

	n, err := Validate(doc, 60)
	require.NotNil(t, n, "warnings alone do not prevent a network")
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 5)
	assert.True(t, errors.Is(err, ErrInvalidCode))
	assert.True(t, errors.Is(err, domain.ErrMalformedTime))
	assert.Contains(t, err.Error(), "5 dataset problem(s):")
}

func TestValidateFatal(t *testing.T) {
	doc := Document{
		Airports: []AirportRecord{{Code: strPtr("X1"), Name: strPtr("bad"), Latitude: floatPtr(0), Longitude: floatPtr(0)}},
	}
	n, err := Validate(doc, 60)
	assert.Nil(t, n)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyDataset))
	assert.True(t, errors.Is(err, ErrInvalidCode))
}

func TestValidateClean(t *testing.T) {
	doc := Document{
		Airports: []AirportRecord{
			{Code: strPtr("AAA"), Name: strPtr("A"), Latitude: floatPtr(0), Longitude: floatPtr(0)},
			{Code: strPtr("BBB"), Name: strPtr("B"), Latitude: floatPtr(1), Longitude: floatPtr(1)},
		},
		Flights: []FlightRecord{{
			From:     strPtr("AAA"),
			To:       strPtr("BBB"),
			BaseCost: floatPtr(100),
			Schedule: map[string]*DayRecord{
				"monday": {DepartureTime: strPtr("08:00"), ArrivalTime: strPtr("09:00"), CostMultiplier: floatPtr(1), Available: flagPtr(true)},
			},
		}},
	}
	n, err := Validate(doc, 60)
	require.NoError(t, err)
	assert.Equal(t, 1, n.NumFlights())
}
