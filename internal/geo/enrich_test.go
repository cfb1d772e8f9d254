package geo_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	h3 "github.com/uber/h3-go/v4"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/geo"
	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/store"
	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/store/mock"
)

func TestClassifyPrecision(t *testing.T) {
	fine := 50.0
	medium := 500.0
	coarse := 500.1

	assert.Equal(t, geo.PrecisionUnknown, geo.ClassifyPrecision(nil))
	assert.Equal(t, geo.PrecisionFine, geo.ClassifyPrecision(&fine))
	assert.Equal(t, geo.PrecisionMedium, geo.ClassifyPrecision(&medium))
	assert.Equal(t, geo.PrecisionCoarse, geo.ClassifyPrecision(&coarse))
}

func TestComputeDimsWithoutCoordinates(t *testing.T) {
	cases := map[string]map[string]any{
		"no geo":          {},
		"geo not object":  {"geo": "18.5,-69.9"},
		"lat missing":     {"geo": map[string]any{"lon": json.Number("-69.93")}},
		"lat non numeric": {"geo": map[string]any{"lat": "18.48", "lon": json.Number("-69.93")}},
	}
	for name, evtContext := range cases {
		t.Run(name, func(t *testing.T) {
			dims, err := geo.ComputeDims(evtContext)
			require.NoError(t, err)
			assert.Nil(t, dims)
		})
	}
}

func TestComputeDimsIndexesThreeResolutions(t *testing.T) {
	dims, err := geo.ComputeDims(map[string]any{
		"geo": map[string]any{
			"lat":        json.Number("18.4861"),
			"lon":        json.Number("-69.9312"),
			"accuracy_m": json.Number("12"),
		},
	})
	require.NoError(t, err)
	require.NotNil(t, dims)

	assert.Equal(t, 18.4861, dims.Lat)
	assert.Equal(t, -69.9312, dims.Lon)
	require.NotNil(t, dims.AccuracyM)
	assert.Equal(t, 12.0, *dims.AccuracyM)
	assert.Equal(t, geo.PrecisionFine, dims.PrecisionClass)

	assert.Equal(t, 7, dims.H3R7.Resolution())
	assert.Equal(t, 9, dims.H3R9.Resolution())
	assert.Equal(t, 11, dims.H3R11.Resolution())
}

func TestComputeDimsWithoutAccuracy(t *testing.T) {
	dims, err := geo.ComputeDims(map[string]any{
		"geo": map[string]any{"lat": 18.4861, "lon": -69.9312},
	})
	require.NoError(t, err)
	require.NotNil(t, dims)
	assert.Nil(t, dims.AccuracyM)
	assert.Equal(t, geo.PrecisionUnknown, dims.PrecisionClass)
}

func TestFloorToHour(t *testing.T) {
	offset := time.FixedZone("AST", -4*3600)
	ts := time.Date(2025, 3, 1, 10, 42, 59, 123456, offset)

	got := geo.FloorToHour(ts)

	assert.Equal(t, time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestBoundaryWKTClosesRing(t *testing.T) {
	boundary := h3.CellBoundary{
		{Lat: 1, Lng: 10},
		{Lat: 2, Lng: 20},
		{Lat: 3, Lng: 30},
	}

	wkt := geo.BoundaryWKT(boundary)

	assert.True(t, strings.HasPrefix(wkt, "POLYGON((10 1, "))
	assert.True(t, strings.HasSuffix(wkt, ", 10 1))"))
}

func TestCellRegistryInsertsEachCellOnce(t *testing.T) {
	ctrl := gomock.NewController(t)

	cell, err := h3.LatLngToCell(h3.LatLng{Lat: 18.4861, Lng: -69.9312}, 9)
	require.NoError(t, err)

	q := mock.NewMockQuerier(ctrl)
	q.EXPECT().
		InsertH3Cell(gomock.Any(), gomock.AssignableToTypeOf(store.InsertH3CellParams{})).
		DoAndReturn(func(_ context.Context, arg store.InsertH3CellParams) error {
			assert.Equal(t, cell.String(), arg.H3Cell)
			assert.Equal(t, int32(9), arg.Resolution)
			assert.True(t, strings.HasPrefix(arg.BoundaryWKT, "POLYGON(("))
			return nil
		}).
		Times(1)

	reg := geo.NewCellRegistry()
	require.NoError(t, reg.Ensure(context.Background(), q, cell))
	require.NoError(t, reg.Ensure(context.Background(), q, cell))
}
