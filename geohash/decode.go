package geohash

import (
	"math"
	"strconv"
)

// Coordinate is a decoded geohash: the centre of its cell and the larger
// half-width of the cell, in degrees.
type Coordinate struct {
	Latitude  float64
	Longitude float64
	Precision float64
}

// Decode returns the centre of the cell described by hash. Each axis is
// rounded so that it shows no more decimals than the cell size supports.
// Case is ignored. The empty hash decodes to (0, 0) with precision 180.
func Decode(hash string) (Coordinate, error) {
	t, err := decode(hash)
	if err != nil {
		return Coordinate{}, err
	}
	return Coordinate{
		Latitude:  roundToError(t.lat.mid(), t.lat.err),
		Longitude: roundToError(t.lon.mid(), t.lon.err),
		Precision: t.maxErr(),
	}, nil
}

// DecodeExact is Decode without rounding.
func DecodeExact(hash string) (Coordinate, error) {
	t, err := decode(hash)
	if err != nil {
		return Coordinate{}, err
	}
	return Coordinate{
		Latitude:  t.lat.mid(),
		Longitude: t.lon.mid(),
		Precision: t.maxErr(),
	}, nil
}

func decode(hash string) (*tracker, error) {
	t := newTracker()
	for i := 0; i < len(hash); i++ {
		v := decodeTable[toLower(hash[i])]
		if v < 0 {
			return nil, &CharacterError{Hash: hash, Pos: i, Char: hash[i]}
		}
		t.decodeChar(i, byte(v))
	}
	return t, nil
}

// maxRoundPlaces is where rounding stops being meaningful for a float64.
const maxRoundPlaces = 17

// roundToError rounds v to max(1, round(-log10(err))) - 1 decimals.
func roundToError(v, err float64) float64 {
	if !(err > 0) {
		return v
	}
	exp := math.Round(-math.Log10(err))
	if exp > maxRoundPlaces {
		return v
	}
	places := int(exp)
	if places < 1 {
		places = 1
	}
	places--

	r, perr := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if perr != nil {
		return v
	}
	return r
}
