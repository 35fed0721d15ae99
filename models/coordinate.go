package models

// Coordinate is a decoded geohash as served by the API and kept in the cache.
type Coordinate struct {
	Hash      string  `json:"hash"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Precision float64 `json:"precision"` // half-width of the cell, in degrees
}

// EncodeResult is the answer to an encode request.
type EncodeResult struct {
	Hash      string  `json:"hash"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Precision float64 `json:"precision,omitempty"`
	Length    int     `json:"length"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
