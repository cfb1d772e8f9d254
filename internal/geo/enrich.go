// Package geo derives spatial dimensions from event context: H3 cells at
// three resolutions, an accuracy precision class, and the hour bucket used
// by the presence tables.
package geo

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	h3 "github.com/uber/h3-go/v4"
)

const (
	PrecisionUnknown = "unknown"
	PrecisionFine    = "fine"
	PrecisionMedium  = "medium"
	PrecisionCoarse  = "coarse"
)

const (
	ResCity   = 7
	ResBlock  = 9
	ResStreet = 11
)

// Dims holds the spatial dimensions computed from a single event. Admin
// codes and place membership come from PostGIS lookups, not from here.
type Dims struct {
	Lat            float64
	Lon            float64
	AccuracyM      *float64
	H3R7           h3.Cell
	H3R9           h3.Cell
	H3R11          h3.Cell
	PrecisionClass string
}

// FloorToHour truncates a timestamp to the start of its UTC hour.
func FloorToHour(ts time.Time) time.Time {
	return ts.UTC().Truncate(time.Hour)
}

// ClassifyPrecision buckets a reported GPS accuracy radius. Coarse fixes
// are later stripped of municipality and sector attribution.
func ClassifyPrecision(accuracyM *float64) string {
	switch {
	case accuracyM == nil:
		return PrecisionUnknown
	case *accuracyM <= 50:
		return PrecisionFine
	case *accuracyM <= 500:
		return PrecisionMedium
	default:
		return PrecisionCoarse
	}
}

// ComputeDims extracts coordinates from the event context and indexes them.
// It returns nil without error when the context carries no usable lat/lon.
// H3 is always computed at all three resolutions; consumers degrade to
// macro dimensions by filtering on the precision class instead.
func ComputeDims(evtContext map[string]any) (*Dims, error) {
	geoField, _ := evtContext["geo"].(map[string]any)
	lat, latOK := Numeric(geoField["lat"])
	lon, lonOK := Numeric(geoField["lon"])
	if !latOK || !lonOK {
		return nil, nil
	}

	var accuracyM *float64
	if acc, ok := Numeric(geoField["accuracy_m"]); ok {
		accuracyM = &acc
	}

	point := h3.LatLng{Lat: lat, Lng: lon}
	r7, err := h3.LatLngToCell(point, ResCity)
	if err != nil {
		return nil, fmt.Errorf("index r7: %w", err)
	}
	r9, err := h3.LatLngToCell(point, ResBlock)
	if err != nil {
		return nil, fmt.Errorf("index r9: %w", err)
	}
	r11, err := h3.LatLngToCell(point, ResStreet)
	if err != nil {
		return nil, fmt.Errorf("index r11: %w", err)
	}

	return &Dims{
		Lat:            lat,
		Lon:            lon,
		AccuracyM:      accuracyM,
		H3R7:           r7,
		H3R9:           r9,
		H3R11:          r11,
		PrecisionClass: ClassifyPrecision(accuracyM),
	}, nil
}

// Numeric coerces the JSON scalar shapes a decoded document can carry.
// Strings never pass, matching how coordinates are validated at ingest.
func Numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// BoundaryWKT renders a cell outline as a closed POLYGON ring in
// (lon lat) order, which is what ST_GeomFromText expects.
func BoundaryWKT(boundary h3.CellBoundary) string {
	var b strings.Builder
	b.WriteString("POLYGON((")
	for i, p := range boundary {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(p.Lng, 'f', -1, 64))
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(p.Lat, 'f', -1, 64))
	}
	if len(boundary) > 0 && boundary[0] != boundary[len(boundary)-1] {
		b.WriteString(", ")
		b.WriteString(strconv.FormatFloat(boundary[0].Lng, 'f', -1, 64))
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(boundary[0].Lat, 'f', -1, 64))
	}
	b.WriteString("))")
	return b.String()
}
