package geohash

const (
	bitsPerChar = 5

	// MaxLength caps encoding. 24 characters is 60 bits per axis, past
	// what a float64 mantissa can still tell apart.
	MaxLength = 24
)

type axis int

const (
	longitudeAxis axis = iota
	latitudeAxis
)

// axisForBit tells which axis bit (4 down to 0) of character charIndex
// carries. Even characters start with longitude on bit 4, odd characters
// with latitude, so the alternation runs unbroken across characters.
func axisForBit(charIndex, bit int) axis {
	if bit&1 == charIndex&1 {
		return longitudeAxis
	}
	return latitudeAxis
}

// interval is one axis of the cell being narrowed. err is the half-width.
type interval struct {
	min, max float64
	err      float64
}

func (iv *interval) mid() float64 {
	return (iv.min + iv.max) / 2
}

// bisect keeps the upper or lower half of the interval. err stops shrinking
// at the smallest positive float64 instead of underflowing to zero.
func (iv *interval) bisect(upper bool) {
	m := iv.mid()
	if upper {
		iv.min = m
	} else {
		iv.max = m
	}
	if half := iv.err / 2; half > 0 {
		iv.err = half
	}
}

// tracker holds the latitude and longitude intervals shared by encode and
// decode.
type tracker struct {
	lat, lon interval
}

func newTracker() *tracker {
	return &tracker{
		lat: interval{min: -90, max: 90, err: 90},
		lon: interval{min: -180, max: 180, err: 180},
	}
}

func (t *tracker) along(a axis) *interval {
	if a == longitudeAxis {
		return &t.lon
	}
	return &t.lat
}

// encodeChar narrows both intervals towards (lat, lon) for character
// position i and returns the 5-bit value produced.
func (t *tracker) encodeChar(i int, lat, lon float64) byte {
	var v byte
	for bit := bitsPerChar - 1; bit >= 0; bit-- {
		a := axisForBit(i, bit)
		target := lat
		if a == longitudeAxis {
			target = lon
		}
		iv := t.along(a)
		upper := target > iv.mid()
		if upper {
			v |= 1 << uint(bit)
		}
		iv.bisect(upper)
	}
	return v
}

// decodeChar narrows both intervals following the 5-bit value v found at
// character position i.
func (t *tracker) decodeChar(i int, v byte) {
	for bit := bitsPerChar - 1; bit >= 0; bit-- {
		t.along(axisForBit(i, bit)).bisect(v&(1<<uint(bit)) != 0)
	}
}

// minErr is the tighter of the two half-widths; encoding stops on it.
func (t *tracker) minErr() float64 {
	if t.lat.err < t.lon.err {
		return t.lat.err
	}
	return t.lon.err
}

func (t *tracker) maxErr() float64 {
	if t.lat.err > t.lon.err {
		return t.lat.err
	}
	return t.lon.err
}
