package token

import (
	"math"
	"strconv"
	"strings"

	"github.com/dharmasatrya/aviasearch/internal/models"
)

// EncodeV1 renders the legacy per-leg token. Every outbound leg followed by
// every return leg contributes one fixed-width block; the ticket id and the
// price in hundredths are appended even when there are no legs.
func EncodeV1(it Itinerary) string {
	var b strings.Builder
	for _, leg := range it.Outbound {
		b.WriteString(v1Leg(leg))
	}
	for _, leg := range it.Return {
		b.WriteString(v1Leg(leg))
	}
	b.WriteByte('_')
	b.WriteString(it.TicketID)
	b.WriteByte('_')
	b.WriteString(strconv.FormatInt(hundredths(it.Price), 10))
	return b.String()
}

func v1Leg(leg models.FlightLeg) string {
	var b strings.Builder
	b.WriteString(truncate(leg.AirlineID, 2))
	b.WriteString(ZeroPad(leg.DepartureUnix, 10))
	b.WriteString(ZeroPad(leg.ArrivalUnix, 10))
	b.WriteString(ZeroPad(MinutesBetween(leg.DepartureUnix, leg.ArrivalUnix), 8))
	b.WriteString(truncate(airportOr(leg.Origin), 3))
	b.WriteString(truncate(leg.Middle, 3))
	b.WriteString(truncate(airportOr(leg.Destination), 3))
	return b.String()
}

// hundredths converts a price to an integer count of hundredths using
// round-half-to-even, the rounding the booking site applies.
func hundredths(price float64) int64 {
	v := math.RoundToEven(price * 100)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int64(v)
}

// UnifiedPrice is the integer price representation shared by the summary
// and the v1 token.
func UnifiedPrice(price float64) int64 {
	return hundredths(price)
}
