// Package normalizer turns the index-referential results payload of the
// search backend into flat, self-contained ticket summaries. Normalize is
// total: malformed sub-structures degrade to empty or omitted values.
package normalizer

import (
	"encoding/json"

	"github.com/dharmasatrya/aviasearch/internal/models"
	"github.com/dharmasatrya/aviasearch/internal/ranking"
	"github.com/dharmasatrya/aviasearch/internal/timezone"
	"github.com/dharmasatrya/aviasearch/internal/token"
	"github.com/dharmasatrya/aviasearch/pkg/currency"
)

const resultsChunkID = "results"

type Options struct {
	// Directions of the originating search. When at least two are given
	// they supply the deep-link endpoints instead of the ticket's own legs.
	Directions []models.Direction
	LinkBase   string
}

// Normalize converts a raw results payload into a SearchSummary. The
// boolean is false when the payload has no usable results object, in which
// case the summary is models.EmptySummary().
func Normalize(raw json.RawMessage, opts Options) (models.SearchSummary, bool) {
	results, ok := selectResults(raw)
	if !ok {
		return models.EmptySummary(), false
	}

	legsRaw, present := field(results, "flight_legs")
	if present && !isArray(legsRaw) {
		return models.EmptySummary(), false
	}

	places := fieldOrNil(results, "places")
	dir := BuildDirectory(places)
	table := newLegTable(legsRaw, dir)

	var ticketsRaw flexList
	if v, ok := field(results, "tickets"); ok {
		_ = json.Unmarshal(v, &ticketsRaw)
	}

	summary := models.EmptySummary()
	for _, tr := range ticketsRaw {
		var wt wireTicket
		if !decodeObject(tr, &wt) {
			continue
		}
		summary.Tickets = append(summary.Tickets, buildTicket(wt, table, opts))
	}

	summary.CheapestTicket = ranking.Cheapest(summary.Tickets)
	_, summary.Cities = orderedObject(fieldOrNil(places, "cities"))
	_, summary.Countries = orderedObject(fieldOrNil(places, "countries"))
	summary.CityNamesRu = dir.Names(LocaleRu)
	summary.CityNamesEn = dir.Names(LocaleEn)
	return summary, true
}

// selectResults picks the chunk tagged "results" out of a chunk sequence,
// or accepts a bare object payload as-is.
func selectResults(raw json.RawMessage) (json.RawMessage, bool) {
	if !json.Valid(raw) {
		return nil, false
	}
	if isObject(raw) {
		return raw, true
	}
	if !isArray(raw) {
		return nil, false
	}
	var chunks []json.RawMessage
	if err := json.Unmarshal(raw, &chunks); err != nil {
		return nil, false
	}
	for _, chunk := range chunks {
		if lookupString(chunk, "chunk_id") == resultsChunkID {
			return chunk, true
		}
	}
	return nil, false
}

// legTable is the read-only arena tickets index into.
type legTable struct {
	legs  []models.FlightLeg
	valid []bool
}

func newLegTable(raw json.RawMessage, dir Directory) legTable {
	var items []json.RawMessage
	_ = json.Unmarshal(raw, &items)

	t := legTable{
		legs:  make([]models.FlightLeg, len(items)),
		valid: make([]bool, len(items)),
	}
	for i, item := range items {
		var wl wireLeg
		if !decodeObject(item, &wl) {
			continue
		}
		t.legs[i] = resolveLeg(wl, dir)
		t.valid[i] = true
	}
	return t
}

func (t legTable) at(idx int) (models.FlightLeg, bool) {
	if idx < 0 || idx >= len(t.legs) || !t.valid[idx] {
		return models.FlightLeg{}, false
	}
	return t.legs[idx], true
}

func resolveLeg(wl wireLeg, dir Directory) models.FlightLeg {
	leg := models.FlightLeg{
		Origin:        string(wl.Origin),
		Destination:   string(wl.Destination),
		Middle:        string(wl.Middle),
		AirlineID:     string(wl.OperatingCarrier.Carrier),
		DepartureUnix: int64(wl.DepartureUnix),
		ArrivalUnix:   int64(wl.ArrivalUnix),
		Signature:     string(wl.Signature),
	}
	leg.OriginCityRu = dir.City(leg.Origin, LocaleRu)
	leg.OriginCityEn = dir.City(leg.Origin, LocaleEn)
	leg.DestinationCityRu = dir.City(leg.Destination, LocaleRu)
	leg.DestinationCityEn = dir.City(leg.Destination, LocaleEn)

	dep, arr := token.LegTimes(leg)
	if dep != 0 && arr != 0 {
		leg.DurationMinutes = token.MinutesBetween(dep, arr)
	}

	switch {
	case timezone.DateFromLocal(string(wl.DepartureDate)) != "":
		leg.DepartureDate = timezone.DateFromLocal(string(wl.DepartureDate))
	case timezone.DateFromLocal(string(wl.LocalDepartureDateTime)) != "":
		leg.DepartureDate = timezone.DateFromLocal(string(wl.LocalDepartureDateTime))
	default:
		leg.DepartureDate = timezone.LocalDate(dep, leg.Origin)
	}
	return leg
}

func buildTicket(wt wireTicket, table legTable, opts Options) models.TicketSummary {
	item := models.TicketSummary{
		ID:          string(wt.ID),
		TicketID:    string(wt.ID),
		Price:       firstProposalPrice(wt.Proposals),
		FlightsTo:   []models.FlightLeg{},
		FlightsBack: []models.FlightLeg{},
	}
	item.UnifiedPrice = token.UnifiedPrice(item.Price.Value)

	var durationTo, durationBack int64
	for segIdx, segRaw := range wt.Segments {
		var seg wireSegment
		if !decodeObject(segRaw, &seg) {
			continue
		}
		for _, idxRaw := range seg.Flights {
			idx, ok := legIndex(idxRaw)
			if !ok {
				continue
			}
			leg, ok := table.at(idx)
			if !ok {
				continue
			}
			if segIdx == 0 {
				item.FlightsTo = append(item.FlightsTo, leg)
				durationTo += leg.DurationMinutes
			} else {
				item.FlightsBack = append(item.FlightsBack, leg)
				durationBack += leg.DurationMinutes
			}
		}
	}

	item.FlightsToUnixDeparture, item.FlightsToUnixArrival, item.FlightsToAirlineID, item.FlightsToAirports = flatten(item.FlightsTo)
	item.FlightsReturnUnixDeparture, item.FlightsReturnUnixArrival, item.FlightsReturnAirlineID, item.FlightsReturnAirports = flatten(item.FlightsBack)
	item.DurationTo = token.ZeroPad(durationTo, 8)
	item.DurationReturn = token.ZeroPad(durationBack, 8)

	if len(item.FlightsTo) > 0 && len(item.FlightsBack) > 0 {
		first := item.FlightsTo[0]
		last := item.FlightsBack[len(item.FlightsBack)-1]
		item.RouteRu = first.OriginCityRu + " → " + last.DestinationCityRu
		item.RouteEn = first.OriginCityEn + " → " + last.DestinationCityEn
	}

	tok := token.EncodeV2(token.Itinerary{
		TicketID: item.ID,
		Outbound: item.FlightsTo,
		Return:   item.FlightsBack,
		Price:    item.Price.Value,
	})
	item.URL = token.DeepLink(opts.LinkBase, endpoints(item, opts.Directions), tok)
	return item
}

func firstProposalPrice(proposals flexList) models.Price {
	if len(proposals) == 0 {
		return models.Price{}
	}
	var wp wirePrice
	if !decodeObject(fieldOrNil(proposals[0], "price"), &wp) {
		return models.Price{}
	}
	price := models.Price{
		Value:        wp.Value.Value,
		CurrencyCode: string(wp.CurrencyCode),
		Known:        wp.Value.Valid,
	}
	if price.Known {
		price.Formatted = currency.Format(price.Value, price.CurrencyCode)
	}
	return price
}

func flatten(legs []models.FlightLeg) ([]int64, []int64, []string, []models.AirportPair) {
	deps := make([]int64, 0, len(legs))
	arrs := make([]int64, 0, len(legs))
	airlines := make([]string, 0, len(legs))
	airports := make([]models.AirportPair, 0, len(legs))
	for _, leg := range legs {
		deps = append(deps, leg.DepartureUnix)
		arrs = append(arrs, leg.ArrivalUnix)
		airlines = append(airlines, leg.AirlineID)
		airports = append(airports, models.AirportPair{Origin: leg.Origin, Destination: leg.Destination})
	}
	return deps, arrs, airlines, airports
}

func endpoints(item models.TicketSummary, directions []models.Direction) token.Endpoints {
	if len(directions) >= 2 {
		return token.Endpoints{
			Origin:        directions[0].Origin,
			Destination:   directions[0].Destination,
			DepartureDate: directions[0].Date,
			ReturnDate:    directions[1].Date,
		}
	}

	ep := token.Endpoints{Origin: "XXX", Destination: "XXX"}
	if n := len(item.FlightsTo); n > 0 {
		ep.Origin = item.FlightsTo[0].Origin
		ep.Destination = item.FlightsTo[n-1].Destination
		ep.DepartureDate = item.FlightsTo[0].DepartureDate
	}
	if len(item.FlightsBack) > 0 {
		ep.ReturnDate = item.FlightsBack[0].DepartureDate
	}
	return ep
}
