package geohash

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Encode returns the geohash of (latitude, longitude) whose cell is tighter
// than precision degrees on at least one axis. A zero precision is inferred
// from the inputs, see InferPrecision.
func Encode(latitude, longitude, precision float64) (string, error) {
	hash, _, err := encode(latitude, longitude, precision)
	return hash, err
}

// EncodeWithLength returns the geohash of (latitude, longitude) with exactly
// length characters.
func EncodeWithLength(latitude, longitude float64, length int) (string, error) {
	if err := validateCoordinates(latitude, longitude); err != nil {
		return "", err
	}
	if length < 1 || length > MaxLength {
		return "", fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidLength, length, MaxLength)
	}

	t := newTracker()
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = Alphabet[t.encodeChar(i, latitude, longitude)]
	}
	return string(buf), nil
}

// encode also returns the precision used, inferred or not.
func encode(latitude, longitude, precision float64) (string, float64, error) {
	if err := validateCoordinates(latitude, longitude); err != nil {
		return "", 0, err
	}
	if math.IsNaN(precision) || math.IsInf(precision, 0) || precision < 0 {
		return "", 0, fmt.Errorf("%w: %v", ErrInvalidPrecision, precision)
	}
	if precision == 0 {
		precision = InferPrecision(latitude, longitude)
	}

	t := newTracker()
	var sb strings.Builder
	// Before the first character the whole globe, 180 degrees wide, is
	// checked against precision; afterwards the tighter axis is.
	for e := t.maxErr(); e >= precision && sb.Len() < MaxLength; e = t.minErr() {
		sb.WriteByte(Alphabet[t.encodeChar(sb.Len(), latitude, longitude)])
	}
	return sb.String(), precision, nil
}

// InferPrecision derives a precision from how many decimals the caller wrote:
// with d the larger count of fractional digits of the two coordinates, it is
// 10^-d / 2. Digits are counted on the shortest decimal string that parses
// back to the same float64, so a value that has no short decimal form (a
// computed 0.1+0.2, say) infers a precision far finer than intended. Pass an
// explicit precision whenever the inputs are not literal decimals.
func InferPrecision(latitude, longitude float64) float64 {
	d := fractionalDigits(latitude)
	if dl := fractionalDigits(longitude); dl > d {
		d = dl
	}
	return math.Pow(10, -float64(d)) / 2
}

func fractionalDigits(v float64) int {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

func validateCoordinates(latitude, longitude float64) error {
	if math.IsNaN(latitude) || latitude < -90 || latitude > 90 {
		return fmt.Errorf("%w: latitude %v not in [-90, 90]", ErrInvalidCoordinate, latitude)
	}
	if math.IsNaN(longitude) || longitude < -180 || longitude > 180 {
		return fmt.Errorf("%w: longitude %v not in [-180, 180]", ErrInvalidCoordinate, longitude)
	}
	return nil
}
