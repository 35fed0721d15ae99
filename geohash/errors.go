package geohash

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCoordinate is returned when a hash is requested from a value
	// lacking its latitude or longitude.
	ErrMissingCoordinate = errors.New("geohash: missing coordinate")
	// ErrInvalidCoordinate covers NaN, infinite and out of range values.
	ErrInvalidCoordinate = errors.New("geohash: invalid coordinate")
	ErrInvalidPrecision  = errors.New("geohash: invalid precision")
	ErrInvalidLength     = errors.New("geohash: invalid length")
	// ErrInvalidCharacter is returned when decoding a byte outside Alphabet.
	ErrInvalidCharacter = errors.New("geohash: invalid character")
)

// CharacterError locates the offending byte of a hash that failed to decode.
type CharacterError struct {
	Hash string
	Pos  int
	Char byte
}

func (e *CharacterError) Error() string {
	return fmt.Sprintf("%v %q at position %d of %q", ErrInvalidCharacter, e.Char, e.Pos, e.Hash)
}

func (e *CharacterError) Unwrap() error {
	return ErrInvalidCharacter
}
