// Package token builds the itinerary tokens that booking-site deep links
// carry in their "t" query parameter. Two historical formats exist and they
// are not interchangeable: EncodeV1 concatenates every leg, EncodeV2 encodes
// each direction as a whole.
package token

import (
	"strconv"
	"strings"

	"github.com/dharmasatrya/aviasearch/internal/models"
)

const (
	unknownAirport = "XXX"
	noTicket       = "noticket"
)

// Itinerary is the encoder input: a ticket's legs already split into
// outbound and return by segment position.
type Itinerary struct {
	TicketID string
	Outbound []models.FlightLeg
	Return   []models.FlightLeg
	Price    float64
}

// LegTimes returns the departure and arrival instants of a leg, preferring
// the "<dep>:<arr>" pair encoded in its signature over the raw timestamps.
func LegTimes(leg models.FlightLeg) (int64, int64) {
	if strings.Contains(leg.Signature, ":") {
		parts := strings.Split(leg.Signature, ":")
		if len(parts) >= 2 {
			dep, errDep := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
			arr, errArr := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
			if errDep == nil && errArr == nil {
				return dep, arr
			}
		}
	}
	return leg.DepartureUnix, leg.ArrivalUnix
}

// ZeroPad left-pads the decimal form of n with zeros up to width. A minus
// sign stays in front of the padding.
func ZeroPad(n int64, width int) string {
	s := strconv.FormatInt(n, 10)
	if len(s) >= width {
		return s
	}
	if n < 0 {
		return "-" + strings.Repeat("0", width-len(s)) + s[1:]
	}
	return strings.Repeat("0", width-len(s)) + s
}

// MinutesBetween is the floored minute count between two unix instants.
func MinutesBetween(dep, arr int64) int64 {
	return floorDiv(arr-dep, 60)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func airportOr(code string) string {
	if code == "" {
		return unknownAirport
	}
	return code
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
