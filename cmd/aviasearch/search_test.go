package main

import (
	"errors"
	"testing"

	"github.com/dharmasatrya/aviasearch/internal/models"
)

func TestSearchFlagsRoundTrip(t *testing.T) {
	f := searchFlags{origin: "nqz", destination: "ala", depart: "2025-07-09", ret: "2025-07-17", adults: 2, tripClass: "Y"}

	req, err := f.request()
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if len(req.Directions) != 2 {
		t.Fatalf("directions = %d, want 2", len(req.Directions))
	}
	back := req.Directions[1]
	if back.Origin != "ALA" || back.Destination != "NQZ" || back.Date != "2025-07-17" {
		t.Fatalf("return direction = %+v", back)
	}
	if req.Passengers.Adults != 2 || req.Market != "kz" || req.Currency != "kzt" {
		t.Fatalf("request = %+v", req)
	}
}

func TestSearchFlagsOneWayAndInvalid(t *testing.T) {
	req, err := searchFlags{origin: "NQZ", destination: "ALA", depart: "2025-07-09", adults: 1}.request()
	if err != nil || len(req.Directions) != 1 {
		t.Fatalf("one-way = %+v, %v", req, err)
	}

	_, err = searchFlags{origin: "NQZ", destination: "ALA", depart: "tomorrow", adults: 1}.request()
	if !errors.Is(err, models.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}
