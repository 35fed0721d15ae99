// Package geohash converts coordinates to and from geohashes, the base-32
// strings naming a latitude/longitude cell obtained by alternately halving
// the longitude and latitude ranges.
package geohash

import (
	"strings"
	"sync"
)

// GeoHash is either a coordinate waiting to be hashed or a decoded hash.
// Values are immutable: the With methods return a new GeoHash. The hash of a
// coordinate is computed on first use and kept.
type GeoHash struct {
	latitude, longitude float64
	hasLat, hasLon      bool
	precision           float64

	once sync.Once
	hash string
	err  error
}

// FromCoordinates returns the value for (latitude, longitude). A zero
// precision is inferred from the coordinates when the hash is computed.
func FromCoordinates(latitude, longitude, precision float64) *GeoHash {
	return &GeoHash{
		latitude:  latitude,
		longitude: longitude,
		hasLat:    true,
		hasLon:    true,
		precision: precision,
	}
}

// FromHash decodes hash right away, so that latitude, longitude and
// precision are available. The hash is kept lower-cased.
func FromHash(hash string) (*GeoHash, error) {
	c, err := Decode(hash)
	if err != nil {
		return nil, err
	}
	g := &GeoHash{
		latitude:  c.Latitude,
		longitude: c.Longitude,
		hasLat:    true,
		hasLon:    true,
		precision: c.Precision,
		hash:      strings.ToLower(hash),
	}
	g.once.Do(func() {})
	return g, nil
}

// Hash returns the geohash, encoding the coordinate the first time.
func (g *GeoHash) Hash() (string, error) {
	g.once.Do(func() {
		if !g.hasLat || !g.hasLon {
			g.err = ErrMissingCoordinate
			return
		}
		g.hash, _, g.err = encode(g.latitude, g.longitude, g.precision)
	})
	return g.hash, g.err
}

func (g *GeoHash) Latitude() float64  { return g.latitude }
func (g *GeoHash) Longitude() float64 { return g.longitude }

// Precision returns the explicit precision, the one inferred from the
// coordinates, or for a decoded hash the half-width of its cell.
func (g *GeoHash) Precision() float64 {
	if g.precision == 0 && g.hasLat && g.hasLon {
		return InferPrecision(g.latitude, g.longitude)
	}
	return g.precision
}

// String returns the hash, or "" when it cannot be computed.
func (g *GeoHash) String() string {
	h, _ := g.Hash()
	return h
}

// WithLatitude returns a copy with latitude replaced and no hash.
func (g *GeoHash) WithLatitude(latitude float64) *GeoHash {
	return &GeoHash{
		latitude:  latitude,
		longitude: g.longitude,
		hasLat:    true,
		hasLon:    g.hasLon,
		precision: g.precision,
	}
}

// WithLongitude returns a copy with longitude replaced and no hash.
func (g *GeoHash) WithLongitude(longitude float64) *GeoHash {
	return &GeoHash{
		latitude:  g.latitude,
		longitude: longitude,
		hasLat:    g.hasLat,
		hasLon:    true,
		precision: g.precision,
	}
}

// WithPrecision returns a copy with precision replaced and no hash.
func (g *GeoHash) WithPrecision(precision float64) *GeoHash {
	return &GeoHash{
		latitude:  g.latitude,
		longitude: g.longitude,
		hasLat:    g.hasLat,
		hasLon:    g.hasLon,
		precision: precision,
	}
}

// WithHash is FromHash: every coordinate field is replaced by the decoded one.
func (g *GeoHash) WithHash(hash string) (*GeoHash, error) {
	return FromHash(hash)
}

func (g *GeoHash) MarshalText() ([]byte, error) {
	h, err := g.Hash()
	if err != nil {
		return nil, err
	}
	return []byte(h), nil
}

// UnmarshalText decodes text into g, which must not have been used yet.
func (g *GeoHash) UnmarshalText(text []byte) error {
	d, err := FromHash(string(text))
	if err != nil {
		return err
	}
	g.latitude, g.longitude = d.latitude, d.longitude
	g.hasLat, g.hasLon = true, true
	g.precision = d.precision
	g.hash = d.hash
	g.once.Do(func() {})
	return nil
}
