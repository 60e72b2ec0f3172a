package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestValidateAppliesDefaults(t *testing.T) {
	req := SearchRequest{
		Directions: []Direction{{Origin: " nqz", Destination: "ala ", Date: "2025-07-09"}},
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	d := req.Directions[0]
	if d.Origin != "NQZ" || d.Destination != "ALA" {
		t.Errorf("codes not normalized: %+v", d)
	}
	if req.Passengers.Adults != 1 || req.TripClass != "Y" {
		t.Errorf("passenger/class defaults = %+v, %q", req.Passengers, req.TripClass)
	}
	if req.Market != "kz" || req.Currency != "kzt" || req.Citizenship != "KZ" {
		t.Errorf("market defaults = %q %q %q", req.Market, req.Currency, req.Citizenship)
	}
}

func TestValidateKeepsExplicitValues(t *testing.T) {
	req := SearchRequest{
		Directions: []Direction{{Origin: "ALA", Destination: "IST", Date: "2025-08-01"}},
		Passengers: Passengers{Adults: 2, Children: 1},
		TripClass:  "C",
		Market:     "ru",
		Currency:   "rub",
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if req.Passengers.Adults != 2 || req.TripClass != "C" || req.Market != "ru" || req.Currency != "rub" {
		t.Fatalf("explicit values overwritten: %+v", req)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		req  SearchRequest
		want error
	}{
		{"no directions", SearchRequest{}, ErrMissingDirections},
		{"no origin", SearchRequest{Directions: []Direction{{Destination: "ALA", Date: "2025-07-09"}}}, ErrMissingOrigin},
		{"no destination", SearchRequest{Directions: []Direction{{Origin: "NQZ", Date: "2025-07-09"}}}, ErrMissingDestination},
		{"no date", SearchRequest{Directions: []Direction{{Origin: "NQZ", Destination: "ALA"}}}, ErrMissingDate},
		{"bad date", SearchRequest{Directions: []Direction{{Origin: "NQZ", Destination: "ALA", Date: "2025-13-01"}}}, ErrInvalidDate},
		{"negative infants", SearchRequest{
			Directions: []Direction{{Origin: "NQZ", Destination: "ALA", Date: "2025-07-09"}},
			Passengers: Passengers{Adults: 1, Infants: -1},
		}, ErrInvalidPassengers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.req.Validate(); !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPriceKnownIsNotSerialized(t *testing.T) {
	data, err := json.Marshal(Price{Value: 100, CurrencyCode: "kzt", Known: true})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if strings.Contains(strings.ToLower(string(data)), "known") {
		t.Fatalf("Known leaked into JSON: %s", data)
	}
}
