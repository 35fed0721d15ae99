package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"geohash-codec/cache"
	"geohash-codec/geohash"
	"geohash-codec/models"
)

// Handler serves the codec over HTTP.
type Handler struct {
	cache    *cache.Cache // nil disables caching
	metrics  *Metrics
	registry *prometheus.Registry
}

// NewHandler builds a Handler whose metrics live in a fresh registry.
// c may be nil.
func NewHandler(c *cache.Cache) *Handler {
	reg := prometheus.NewRegistry()
	return &Handler{
		cache:    c,
		metrics:  NewMetrics(reg),
		registry: reg,
	}
}

// Encode handles GET /encode?lat=&lon=[&precision=|&length=].
func (h *Handler) Encode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := parseFloat(q, "lat")
	if err != nil {
		h.fail(w, "encode", err)
		return
	}
	lon, err := parseFloat(q, "lon")
	if err != nil {
		h.fail(w, "encode", err)
		return
	}

	var precision float64
	if q.Get("precision") != "" {
		if precision, err = parseFloat(q, "precision"); err != nil {
			h.fail(w, "encode", err)
			return
		}
	}
	var length int
	if s := q.Get("length"); s != "" {
		if precision != 0 {
			h.fail(w, "encode", errors.New("precision and length are mutually exclusive"))
			return
		}
		if length, err = strconv.Atoi(s); err != nil {
			h.fail(w, "encode", fmt.Errorf("%w: %q", geohash.ErrInvalidLength, s))
			return
		}
	}

	ctx := r.Context()
	if res := h.cachedEncode(ctx, lat, lon, precision, length); res != nil {
		h.respond(w, "encode", res)
		return
	}

	res, err := encode(lat, lon, precision, length)
	if err != nil {
		h.fail(w, "encode", err)
		return
	}
	if h.cache != nil {
		if err := h.cache.SetEncoded(ctx, precision, length, res); err != nil {
			log.Printf("cache: %v", err)
		}
	}
	h.respond(w, "encode", res)
}

func encode(lat, lon, precision float64, length int) (*models.EncodeResult, error) {
	if length != 0 {
		hash, err := geohash.EncodeWithLength(lat, lon, length)
		if err != nil {
			return nil, err
		}
		cell, err := geohash.DecodeExact(hash)
		if err != nil {
			return nil, err
		}
		return &models.EncodeResult{Hash: hash, Latitude: lat, Longitude: lon, Precision: cell.Precision, Length: len(hash)}, nil
	}

	g := geohash.FromCoordinates(lat, lon, precision)
	hash, err := g.Hash()
	if err != nil {
		return nil, err
	}
	return &models.EncodeResult{Hash: hash, Latitude: lat, Longitude: lon, Precision: g.Precision(), Length: len(hash)}, nil
}

// Decode handles GET /decode/{hash}.
func (h *Handler) Decode(w http.ResponseWriter, r *http.Request) {
	hash := strings.ToLower(mux.Vars(r)["hash"])

	ctx := r.Context()
	if h.cache != nil {
		coord, ok, err := h.cache.GetDecoded(ctx, hash)
		h.countLookup("decode", ok, err)
		if ok {
			h.respond(w, "decode", coord)
			return
		}
	}

	c, err := geohash.Decode(hash)
	if err != nil {
		h.fail(w, "decode", err)
		return
	}
	coord := &models.Coordinate{Hash: hash, Latitude: c.Latitude, Longitude: c.Longitude, Precision: c.Precision}
	if h.cache != nil {
		if err := h.cache.SetDecoded(ctx, coord); err != nil {
			log.Printf("cache: %v", err)
		}
	}
	h.respond(w, "decode", coord)
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) cachedEncode(ctx context.Context, lat, lon, precision float64, length int) *models.EncodeResult {
	if h.cache == nil {
		return nil
	}
	res, ok, err := h.cache.GetEncoded(ctx, lat, lon, precision, length)
	h.countLookup("encode", ok, err)
	return res
}

func (h *Handler) countLookup(op string, hit bool, err error) {
	switch {
	case err != nil:
		log.Printf("cache: %v", err)
		h.metrics.CacheLookups.WithLabelValues(op, "error").Inc()
	case hit:
		h.metrics.CacheLookups.WithLabelValues(op, "hit").Inc()
	default:
		h.metrics.CacheLookups.WithLabelValues(op, "miss").Inc()
	}
}

func (h *Handler) respond(w http.ResponseWriter, op string, v interface{}) {
	h.metrics.Requests.WithLabelValues(op, "ok").Inc()
	writeJSON(w, http.StatusOK, v)
}

// fail reports a codec input error. The codec has no other failure mode.
func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	h.metrics.Requests.WithLabelValues(op, "invalid").Inc()
	writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
}

func parseFloat(q map[string][]string, name string) (float64, error) {
	vals := q[name]
	if len(vals) == 0 || vals[0] == "" {
		return 0, fmt.Errorf("%w: %s is required", geohash.ErrMissingCoordinate, name)
	}
	v, err := strconv.ParseFloat(vals[0], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, vals[0])
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
