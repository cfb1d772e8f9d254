// Package materializer turns parsed events into the read-side tables:
// hourly presence, spatial aggregates, license state and the customer_360
// profile. Every Apply runs inside the caller's transaction via the
// store.Querier it is handed.
package materializer

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/envelope"
	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/geo"
	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/store"
)

// Presence materializes geo pings: device and user hourly presence rows,
// the hourly aggregates keyed on H3/place/admin, and the geo side of
// customer_360.
type Presence struct {
	cells *geo.CellRegistry
	log   *zap.Logger
}

func NewPresence(cells *geo.CellRegistry, log *zap.Logger) *Presence {
	return &Presence{cells: cells, log: log}
}

func (p *Presence) Apply(ctx context.Context, q store.Querier, ev *envelope.Event) error {
	dims, err := geo.ComputeDims(ev.Context)
	if err != nil {
		return fmt.Errorf("compute geo dims: %w", err)
	}
	if dims == nil {
		p.log.Debug("geo ping without usable coordinates", zap.String("event_id", ev.EventID))
		return nil
	}

	if err := p.cells.Ensure(ctx, q, dims.H3R7); err != nil {
		return err
	}
	if err := p.cells.Ensure(ctx, q, dims.H3R9); err != nil {
		return err
	}
	if err := p.cells.Ensure(ctx, q, dims.H3R11); err != nil {
		return err
	}

	appUUID, err := store.ParseUUID(ev.AppUUID)
	if err != nil {
		return fmt.Errorf("parse app_uuid: %w", err)
	}
	eventTS := store.Timestamptz(ev.Timestamp)

	placeID, err := q.LookupPlaceID(ctx, store.LookupPlaceIDParams{
		Lat: dims.Lat,
		Lon: dims.Lon,
		At:  eventTS,
	})
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("lookup place: %w", err)
	}

	areas, err := q.LookupAdminCodes(ctx, store.LookupAdminCodesParams{
		Lat: dims.Lat,
		Lon: dims.Lon,
		At:  eventTS,
	})
	if err != nil {
		return fmt.Errorf("lookup admin areas: %w", err)
	}
	country, province, municipality, sector := foldAdminCodes(areas)

	// Coarse fixes keep macro attribution only.
	if dims.PrecisionClass == geo.PrecisionCoarse {
		municipality = ""
		sector = ""
	}

	hourBucket := store.Timestamptz(geo.FloorToHour(ev.Timestamp))
	accuracy := store.Float8Ptr(dims.AccuracyM)

	deviceInserted, err := q.InsertDevicePresence(ctx, store.InsertDevicePresenceParams{
		AppUUID:               appUUID,
		HourBucket:            hourBucket,
		DeviceIDHash:          ev.DeviceIDHash,
		AnonUserID:            ev.AnonUserID,
		H3R7:                  dims.H3R7.String(),
		H3R9:                  dims.H3R9.String(),
		H3R11:                 dims.H3R11.String(),
		PlaceID:               store.TextOrNull(placeID),
		AdminCountryCode:      store.TextOrNull(country),
		AdminProvinceCode:     store.TextOrNull(province),
		AdminMunicipalityCode: store.TextOrNull(municipality),
		AdminSectorCode:       store.TextOrNull(sector),
		GeoAccuracyM:          accuracy,
		GeoPrecisionClass:     dims.PrecisionClass,
		FirstEventTS:          eventTS,
	})
	if err != nil {
		return fmt.Errorf("insert device presence: %w", err)
	}

	userInserted, err := q.InsertUserPresence(ctx, store.InsertUserPresenceParams{
		AppUUID:               appUUID,
		HourBucket:            hourBucket,
		AnonUserID:            ev.AnonUserID,
		H3R7:                  dims.H3R7.String(),
		H3R9:                  dims.H3R9.String(),
		H3R11:                 dims.H3R11.String(),
		PlaceID:               store.TextOrNull(placeID),
		AdminCountryCode:      store.TextOrNull(country),
		AdminProvinceCode:     store.TextOrNull(province),
		AdminMunicipalityCode: store.TextOrNull(municipality),
		AdminSectorCode:       store.TextOrNull(sector),
		GeoAccuracyM:          accuracy,
		GeoPrecisionClass:     dims.PrecisionClass,
		FirstEventTS:          eventTS,
	})
	if err != nil {
		return fmt.Errorf("insert user presence: %w", err)
	}

	var devicesInc, usersInc int64
	if deviceInserted {
		devicesInc = 1
	}
	if userInserted {
		usersInc = 1
	}

	if devicesInc > 0 || usersInc > 0 {
		err = q.UpsertH3Aggregate(ctx, store.UpsertH3AggregateParams{
			AppUUID:    appUUID,
			HourBucket: hourBucket,
			H3R9:       dims.H3R9.String(),
			DevicesInc: devicesInc,
			UsersInc:   usersInc,
		})
		if err != nil {
			return fmt.Errorf("bump h3 aggregate: %w", err)
		}

		if placeID != "" {
			err = q.UpsertPlaceAggregate(ctx, store.UpsertPlaceAggregateParams{
				AppUUID:    appUUID,
				HourBucket: hourBucket,
				PlaceID:    placeID,
				DevicesInc: devicesInc,
				UsersInc:   usersInc,
			})
			if err != nil {
				return fmt.Errorf("bump place aggregate: %w", err)
			}
		}

		for _, lvl := range []struct{ level, code string }{
			{"country", country},
			{"province", province},
			{"municipality", municipality},
			{"sector", sector},
		} {
			if lvl.code == "" {
				continue
			}
			err = q.UpsertAdminAggregate(ctx, store.UpsertAdminAggregateParams{
				AppUUID:    appUUID,
				HourBucket: hourBucket,
				Level:      lvl.level,
				Code:       lvl.code,
				DevicesInc: devicesInc,
				UsersInc:   usersInc,
			})
			if err != nil {
				return fmt.Errorf("bump admin aggregate %s: %w", lvl.level, err)
			}
		}
	}

	err = q.UpsertCustomer360Geo(ctx, store.UpsertCustomer360GeoParams{
		AppUUID:               appUUID,
		AnonUserID:            ev.AnonUserID,
		DeviceIDHash:          ev.DeviceIDHash,
		EventTS:               eventTS,
		EventType:             ev.EventType,
		SessionID:             ev.SessionID,
		SDKVersion:            ev.SDKVersion,
		EventVersion:          ev.EventVersion,
		H3R9:                  store.TextOrNull(dims.H3R9.String()),
		PlaceID:               store.TextOrNull(placeID),
		AdminCountryCode:      store.TextOrNull(country),
		AdminProvinceCode:     store.TextOrNull(province),
		AdminMunicipalityCode: store.TextOrNull(municipality),
		AdminSectorCode:       store.TextOrNull(sector),
	})
	if err != nil {
		return fmt.Errorf("upsert customer_360 geo: %w", err)
	}
	return nil
}

// foldAdminCodes keeps the first code seen per level. Overlapping areas of
// the same level can both contain a point near a boundary.
func foldAdminCodes(areas []store.AdminAreaCode) (country, province, municipality, sector string) {
	for _, area := range areas {
		switch area.Level {
		case "country":
			if country == "" {
				country = area.Code
			}
		case "province":
			if province == "" {
				province = area.Code
			}
		case "municipality":
			if municipality == "" {
				municipality = area.Code
			}
		case "sector":
			if sector == "" {
				sector = area.Code
			}
		}
	}
	return country, province, municipality, sector
}
