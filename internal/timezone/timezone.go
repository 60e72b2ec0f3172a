package timezone

import (
	"strings"
	"time"
)

var (
	KZT = time.FixedZone("KZT", 5*60*60) // UTC+5 - Kazakhstan (single zone since 2024)
	MSK = time.FixedZone("MSK", 3*60*60) // UTC+3 - Moscow
	GST = time.FixedZone("GST", 4*60*60) // UTC+4 - Gulf
	UZT = time.FixedZone("UZT", 5*60*60) // UTC+5 - Uzbekistan
	KGT = time.FixedZone("KGT", 6*60*60) // UTC+6 - Kyrgyzstan
	TRT = time.FixedZone("TRT", 3*60*60) // UTC+3 - Turkey
)

var airportZones = map[string]*time.Location{
	// Kazakhstan
	"NQZ": KZT, // Astana - Nursultan Nazarbayev
	"ALA": KZT, // Almaty
	"SCO": KZT, // Aktau
	"AKX": KZT, // Aktobe
	"GUW": KZT, // Atyrau
	"CIT": KZT, // Shymkent
	"KGF": KZT, // Karaganda - Sary-Arka
	"PWQ": KZT, // Pavlodar
	"UKK": KZT, // Ust-Kamenogorsk
	"KSN": KZT, // Kostanay
	"URA": KZT, // Uralsk
	"PPK": KZT, // Petropavlovsk
	"DMB": KZT, // Taraz
	"KZO": KZT, // Kyzylorda
	"TDK": KZT, // Taldykorgan
	"TKG": KZT, // Turkistan

	// Neighbours and common connections
	"SVO": MSK, // Moscow - Sheremetyevo
	"DME": MSK, // Moscow - Domodedovo
	"VKO": MSK, // Moscow - Vnukovo
	"LED": MSK, // Saint Petersburg - Pulkovo
	"TAS": UZT, // Tashkent
	"FRU": KGT, // Bishkek - Manas
	"OSS": KGT, // Osh
	"DXB": GST, // Dubai
	"IST": TRT, // Istanbul
	"SAW": TRT, // Istanbul - Sabiha Gokcen
	"AYT": TRT, // Antalya
}

// LocationByAirport returns the fixed zone of a known airport, or UTC.
func LocationByAirport(code string) *time.Location {
	if loc, ok := airportZones[strings.ToUpper(code)]; ok {
		return loc
	}
	return time.UTC
}

// LocalDate renders a unix instant as the YYYY-MM-DD calendar date at the
// given airport. Zero instants yield "".
func LocalDate(unix int64, airport string) string {
	if unix == 0 {
		return ""
	}
	return time.Unix(unix, 0).In(LocationByAirport(airport)).Format("2006-01-02")
}

// DateFromLocal extracts the calendar date from a backend local date-time
// such as "2025-07-09T06:45:00". Malformed input yields "".
func DateFromLocal(s string) string {
	if len(s) < 10 {
		return ""
	}
	if _, err := time.Parse("2006-01-02", s[:10]); err != nil {
		return ""
	}
	return s[:10]
}
