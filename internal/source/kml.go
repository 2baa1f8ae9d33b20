package source

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"
)

// FirstKMLCoordinate returns the first lon/lat tuple of the first
// <coordinates> element in a KML document. Traces without geometry, and
// anything unparseable, yield the (0, 0) sentinel; the trace files come from
// the vendor's archives and a broken one is not worth failing a rebuild over.
func FirstKMLCoordinate(data []byte) (lon, lat float64) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		tok, err := decoder.Token()
		if err != nil {
			return 0, 0
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "coordinates" {
			continue
		}

		var text string
		if err := decoder.DecodeElement(&text, &start); err != nil {
			return 0, 0
		}
		return parseCoordinateTuple(text)
	}
}

// parseCoordinateTuple reads the first "lon,lat[,alt]" tuple from a KML
// coordinate string
func parseCoordinateTuple(text string) (lon, lat float64) {
	tuples := strings.Fields(strings.TrimSpace(text))
	if len(tuples) == 0 {
		return 0, 0
	}

	parts := strings.Split(tuples[0], ",")
	if len(parts) < 2 {
		return 0, 0
	}

	lon, errLon := strconv.ParseFloat(parts[0], 64)
	lat, errLat := strconv.ParseFloat(parts[1], 64)
	if errLon != nil || errLat != nil {
		return 0, 0
	}
	return lon, lat
}
