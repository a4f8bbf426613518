package geo

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"

	"github.com/scanpang/data-pipeline/internal/model"
)

// SRID for WGS84.
const SRID = 4326

// Center of the collection area (Gangnam station).
var DefaultCenter = model.Coordinates{Lat: 37.4979, Lng: 127.0276}

// PointEWKB encodes a WGS84 point as EWKB with SRID 4326, for
// ST_GeomFromEWKB on insert.
func PointEWKB(c model.Coordinates) ([]byte, error) {
	p := geom.NewPointFlat(geom.XY, []float64{c.Lng, c.Lat}).SetSRID(SRID)
	data, err := ewkb.Marshal(p, ewkb.NDR)
	if err != nil {
		return nil, eris.Wrap(err, "geo: encode point")
	}
	return data, nil
}

// OrDefault returns c, or DefaultCenter when c is nil.
func OrDefault(c *model.Coordinates) model.Coordinates {
	if c == nil {
		return DefaultCenter
	}
	return *c
}
