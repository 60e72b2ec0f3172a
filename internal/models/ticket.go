package models

import "encoding/json"

// FlightLeg is a single flight resolved from the shared leg table and
// enriched with directory city names.
type FlightLeg struct {
	Origin            string `json:"origin"`
	Destination       string `json:"destination"`
	Middle            string `json:"middle,omitempty"`
	AirlineID         string `json:"airline_id"`
	DepartureUnix     int64  `json:"departure_unix_timestamp"`
	ArrivalUnix       int64  `json:"arrival_unix_timestamp"`
	DepartureDate     string `json:"departure_date,omitempty"`
	Signature         string `json:"signature,omitempty"`
	OriginCityRu      string `json:"origin_city_ru"`
	OriginCityEn      string `json:"origin_city_en"`
	DestinationCityRu string `json:"destination_city_ru"`
	DestinationCityEn string `json:"destination_city_en"`
	DurationMinutes   int64  `json:"duration_minutes"`
}

type Price struct {
	Value        float64 `json:"value"`
	CurrencyCode string  `json:"currency_code,omitempty"`
	Formatted    string  `json:"formatted,omitempty"`

	// Known is false when the first proposal carried no price value.
	Known bool `json:"-"`
}

type AirportPair struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

type TicketSummary struct {
	ID           string      `json:"id"`
	TicketID     string      `json:"ticket_id"`
	Price        Price       `json:"price"`
	UnifiedPrice int64       `json:"unified_price"`
	FlightsTo    []FlightLeg `json:"flights_to"`
	FlightsBack  []FlightLeg `json:"flights_return"`

	FlightsToUnixDeparture     []int64       `json:"flights_to_unix_departure"`
	FlightsToUnixArrival       []int64       `json:"flights_to_unix_arrival"`
	FlightsToAirlineID         []string      `json:"flights_to_airline_id"`
	FlightsToAirports          []AirportPair `json:"flights_to_airports"`
	FlightsReturnUnixDeparture []int64       `json:"flights_return_unix_departure"`
	FlightsReturnUnixArrival   []int64       `json:"flights_return_unix_arrival"`
	FlightsReturnAirlineID     []string      `json:"flights_return_airline_id"`
	FlightsReturnAirports      []AirportPair `json:"flights_return_airports"`

	DurationTo     string `json:"duration_to"`
	DurationReturn string `json:"duration_return"`
	RouteRu        string `json:"route_ru,omitempty"`
	RouteEn        string `json:"route_en,omitempty"`
	URL            string `json:"aviasales_url"`
}

// SearchSummary is the normalizer output. Cities and Countries are passed
// through from the payload's place tables untouched.
type SearchSummary struct {
	CheapestTicket *TicketSummary             `json:"cheapest_ticket"`
	Tickets        []TicketSummary            `json:"tickets"`
	Cities         map[string]json.RawMessage `json:"cities"`
	CityNamesRu    []string                   `json:"city_names_ru"`
	CityNamesEn    []string                   `json:"city_names_en"`
	Countries      map[string]json.RawMessage `json:"countries"`
}

func EmptySummary() SearchSummary {
	return SearchSummary{
		Tickets:     []TicketSummary{},
		Cities:      map[string]json.RawMessage{},
		CityNamesRu: []string{},
		CityNamesEn: []string{},
		Countries:   map[string]json.RawMessage{},
	}
}
