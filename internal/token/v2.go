package token

import (
	"math"
	"strconv"
	"strings"

	"github.com/dharmasatrya/aviasearch/internal/models"
)

// EncodeV2 renders the current token format. It returns "" unless both the
// outbound and the return leg lists are non-empty.
func EncodeV2(it Itinerary) string {
	if len(it.Outbound) == 0 || len(it.Return) == 0 {
		return ""
	}

	carrierID := it.Return[len(it.Return)-1].AirlineID

	var b strings.Builder
	b.WriteString(carrierID)
	b.WriteString(v2Block(it.Outbound))
	b.WriteString(v2Block(it.Return))
	b.WriteByte('_')
	if it.TicketID == "" {
		b.WriteString(noTicket)
	} else {
		b.WriteString(it.TicketID)
	}
	b.WriteByte('_')
	b.WriteString(strconv.FormatInt(wholeUnits(it.Price), 10))
	return b.String()
}

func v2Block(legs []models.FlightLeg) string {
	dep, _ := LegTimes(legs[0])
	_, arr := LegTimes(legs[len(legs)-1])

	var b strings.Builder
	b.WriteString(strconv.FormatInt(dep, 10))
	b.WriteString(strconv.FormatInt(arr, 10))
	b.WriteString(ZeroPad(MinutesBetween(dep, arr), 6))
	for _, leg := range legs {
		b.WriteString(airportOr(leg.Origin))
	}
	b.WriteString(airportOr(legs[len(legs)-1].Destination))
	return b.String()
}

func wholeUnits(price float64) int64 {
	v := math.Floor(price)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int64(v)
}
