package services

import (
	"math"
	"strconv"

	"flight-route-service/internal/domain"

	"github.com/cespare/xxhash/v2"
)

// NetworkFingerprint hashes everything that can change a search result:
// airports, flight instances, the default connection time and the expansion cap.
// Two networks loaded from the same dataset get the same fingerprint.
func NetworkFingerprint(n *domain.Network, maxExpansions int) string {
	d := xxhash.New()
	buf := make([]byte, 0, 128)

	field := func(s string) {
		buf = append(buf, s...)
		buf = append(buf, 0)
	}
	num := func(v int) { field(strconv.Itoa(v)) }
	float := func(v float64) { field(strconv.FormatUint(math.Float64bits(v), 16)) }
	flush := func() {
		_, _ = d.Write(buf)
		buf = buf[:0]
	}

	num(n.DefaultMinConnection())
	num(maxExpansions)
	flush()

	for _, a := range n.Airports() {
		field(a.Code)
		field(a.Name)
		float(a.Location.Lat)
		float(a.Location.Lon)
		if a.MinConnectionMinutes != nil {
			num(*a.MinConnectionMinutes)
		} else {
			field("-")
		}
		flush()
	}

	for _, f := range n.Flights() {
		field(f.From)
		field(f.To)
		num(int(f.Day))
		num(f.Departure)
		num(f.Arrival)
		float(f.Cost)
		float(f.DistanceKm)
		field(strconv.FormatBool(f.Available))
		flush()
	}

	return strconv.FormatUint(d.Sum64(), 16)
}
