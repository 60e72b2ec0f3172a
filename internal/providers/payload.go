package providers

import "github.com/dharmasatrya/aviasearch/internal/models"

type StartPayload struct {
	SearchParams     SearchParams      `json:"search_params"`
	ClientFeatures   ClientFeatures    `json:"client_features"`
	MarketCode       string            `json:"market_code"`
	Marker           string            `json:"marker"`
	Citizenship      string            `json:"citizenship"`
	CurrencyCode     string            `json:"currency_code"`
	Languages        map[string]int    `json:"languages"`
	ExperimentGroups map[string]string `json:"experiment_groups"`
	Debug            Debug             `json:"debug"`
	Brand            string            `json:"brand"`
}

type SearchParams struct {
	Directions []Direction       `json:"directions"`
	Passengers models.Passengers `json:"passengers"`
	TripClass  string            `json:"trip_class"`
}

type Direction struct {
	Origin               string `json:"origin"`
	Destination          string `json:"destination"`
	Date                 string `json:"date"`
	IsOriginAirport      bool   `json:"is_origin_airport"`
	IsDestinationAirport bool   `json:"is_destination_airport"`
}

type ClientFeatures struct {
	DirectFlights bool `json:"direct_flights"`
	BrandTicket   bool `json:"brand_ticket"`
	TopFilters    bool `json:"top_filters"`
	Badges        bool `json:"badges"`
	TourTickets   bool `json:"tour_tickets"`
	Assisted      bool `json:"assisted"`
}

type Debug struct {
	OverrideExperimentGroups map[string]string `json:"override_experiment_groups"`
}

// NewStartPayload builds the fixed-shape start body for a validated request.
func NewStartPayload(req models.SearchRequest) StartPayload {
	directions := make([]Direction, len(req.Directions))
	for i, d := range req.Directions {
		directions[i] = Direction{
			Origin:      d.Origin,
			Destination: d.Destination,
			Date:        d.Date,
		}
	}

	return StartPayload{
		SearchParams: SearchParams{
			Directions: directions,
			Passengers: req.Passengers,
			TripClass:  req.TripClass,
		},
		ClientFeatures: ClientFeatures{
			DirectFlights: true,
			BrandTicket:   false,
			TopFilters:    true,
			Badges:        false,
			TourTickets:   true,
			Assisted:      true,
		},
		MarketCode:       req.Market,
		Marker:           "direct",
		Citizenship:      req.Citizenship,
		CurrencyCode:     req.Currency,
		Languages:        map[string]int{"ru": 1, "en": 2},
		ExperimentGroups: map[string]string{"usc-exp-showSupportLinkNavbar": "enabled"},
		Debug:            Debug{OverrideExperimentGroups: map[string]string{}},
		Brand:            "AS",
	}
}

type pollBody struct {
	Limit               int    `json:"limit"`
	PricePerPerson      bool   `json:"price_per_person"`
	SearchByAirport     bool   `json:"search_by_airport"`
	SearchID            string `json:"search_id"`
	LastUpdateTimestamp int64  `json:"last_update_timestamp"`
}
