package normalizer

import "encoding/json"

const (
	LocaleRu = "ru"
	LocaleEn = "en"
)

// Directory maps airport codes to localized city names. It is built once
// per payload from the places tables and is read-only afterwards.
type Directory struct {
	names map[string]map[string]string
	order map[string][]string
}

// BuildDirectory resolves every airport through its city_code into the
// city's default name per locale. Airports without a resolvable name are
// left out.
func BuildDirectory(places json.RawMessage) Directory {
	d := Directory{
		names: map[string]map[string]string{LocaleRu: {}, LocaleEn: {}},
		order: map[string][]string{LocaleRu: {}, LocaleEn: {}},
	}

	_, cityTable := orderedObject(fieldOrNil(places, "cities"))
	airportCodes, airports := orderedObject(fieldOrNil(places, "airports"))

	for _, code := range airportCodes {
		cityCode := lookupString(airports[code], "city_code")
		if cityCode == "" {
			continue
		}
		city, ok := cityTable[cityCode]
		if !ok {
			continue
		}
		for _, locale := range []string{LocaleRu, LocaleEn} {
			name := lookupString(city, "name", locale, "default")
			if name == "" {
				continue
			}
			if _, seen := d.names[locale][code]; !seen {
				d.order[locale] = append(d.order[locale], code)
			}
			d.names[locale][code] = name
		}
	}
	return d
}

// City returns the city name of an airport, or the airport code itself when
// the directory has no entry.
func (d Directory) City(airport, locale string) string {
	if name, ok := d.names[locale][airport]; ok {
		return name
	}
	return airport
}

// Names lists the resolved city names for a locale in airport order, one per
// airport, so a city served by two airports appears twice.
func (d Directory) Names(locale string) []string {
	names := make([]string, 0, len(d.order[locale]))
	for _, code := range d.order[locale] {
		names = append(names, d.names[locale][code])
	}
	return names
}

func fieldOrNil(raw json.RawMessage, key string) json.RawMessage {
	v, _ := field(raw, key)
	return v
}
