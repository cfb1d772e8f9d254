package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const insertH3Cell = `
INSERT INTO h3_cells (h3_cell, resolution, geom, centroid, centroid_lat, centroid_lon)
VALUES (
    $1, $2,
    ST_SetSRID(ST_GeomFromText($3), 4326),
    ST_SetSRID(ST_MakePoint($5::float8, $4::float8), 4326),
    $4, $5
)
ON CONFLICT (h3_cell) DO NOTHING
`

type InsertH3CellParams struct {
	H3Cell      string
	Resolution  int32
	BoundaryWKT string
	CentroidLat float64
	CentroidLon float64
}

func (q *Queries) InsertH3Cell(ctx context.Context, arg InsertH3CellParams) error {
	_, err := q.db.Exec(ctx, insertH3Cell,
		arg.H3Cell,
		arg.Resolution,
		arg.BoundaryWKT,
		arg.CentroidLat,
		arg.CentroidLon,
	)
	return err
}

const lookupAdminCodes = `
WITH p AS (SELECT ST_SetSRID(ST_MakePoint($2::float8, $1::float8), 4326) AS geom)
SELECT a.level, a.code
FROM admin_areas a, p
WHERE ST_Contains(a.geom, p.geom)
  AND (a.valid_from IS NULL OR a.valid_from <= $3)
  AND (a.valid_to IS NULL OR a.valid_to >= $3)
`

type LookupAdminCodesParams struct {
	Lat float64
	Lon float64
	At  pgtype.Timestamptz
}

type AdminAreaCode struct {
	Level string
	Code  string
}

// LookupAdminCodes returns every administrative area containing the point
// and valid at the event time. Callers keep the first code per level.
func (q *Queries) LookupAdminCodes(ctx context.Context, arg LookupAdminCodesParams) ([]AdminAreaCode, error) {
	rows, err := q.db.Query(ctx, lookupAdminCodes, arg.Lat, arg.Lon, arg.At)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []AdminAreaCode
	for rows.Next() {
		var i AdminAreaCode
		if err := rows.Scan(&i.Level, &i.Code); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const lookupPlaceID = `
SELECT place_id
FROM places
WHERE ST_Contains(geofence, ST_SetSRID(ST_MakePoint($2::float8, $1::float8), 4326))
  AND (valid_from IS NULL OR valid_from <= $3)
  AND (valid_to IS NULL OR valid_to >= $3)
LIMIT 1
`

type LookupPlaceIDParams struct {
	Lat float64
	Lon float64
	At  pgtype.Timestamptz
}

// LookupPlaceID returns pgx.ErrNoRows when no geofence contains the point.
func (q *Queries) LookupPlaceID(ctx context.Context, arg LookupPlaceIDParams) (string, error) {
	var placeID string
	err := q.db.QueryRow(ctx, lookupPlaceID, arg.Lat, arg.Lon, arg.At).Scan(&placeID)
	return placeID, err
}
