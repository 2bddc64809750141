package session

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidParams is returned when the host query cannot start a session.
var ErrInvalidParams = errors.New("invalid session parameters")

// newID is swapped in tests.
var newID = uuid.NewString

// Params are the inputs the host page passes to the drawing step.
type Params struct {
	ImageURL  string
	Latitude  *float64
	Longitude *float64
	SessionID string
}

// ParseParams reads imageUrl, lat, lng, sessionId and hasGps. Coordinates
// are kept only when hasGps is true and both parse as finite numbers. A
// missing sessionId is replaced with a fresh one.
func ParseParams(q url.Values) (Params, error) {
	p := Params{
		ImageURL:  strings.TrimSpace(q.Get("imageUrl")),
		SessionID: strings.TrimSpace(q.Get("sessionId")),
	}
	if p.ImageURL == "" {
		return Params{}, fmt.Errorf("%w: imageUrl is required", ErrInvalidParams)
	}
	if p.SessionID == "" {
		p.SessionID = newID()
	}
	if hasGPS, _ := strconv.ParseBool(q.Get("hasGps")); hasGPS {
		lat, errLat := parseCoord(q.Get("lat"), 90)
		lng, errLng := parseCoord(q.Get("lng"), 180)
		if errLat == nil && errLng == nil {
			p.Latitude, p.Longitude = &lat, &lng
		}
	}
	return p, nil
}

// ParseQuery parses a raw query string such as "imageUrl=...&hasGps=true".
func ParseQuery(raw string) (Params, error) {
	q, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return Params{}, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return ParseParams(q)
}

func parseCoord(s string, limit float64) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if v != v || v < -limit || v > limit {
		return 0, fmt.Errorf("coordinate %v out of range", v)
	}
	return v, nil
}

// Encode returns the query for the drawing step.
func (p Params) Encode() string {
	q := url.Values{}
	q.Set("imageUrl", p.ImageURL)
	q.Set("sessionId", p.SessionID)
	if p.Latitude != nil && p.Longitude != nil {
		q.Set("hasGps", "true")
		q.Set("lat", strconv.FormatFloat(*p.Latitude, 'f', -1, 64))
		q.Set("lng", strconv.FormatFloat(*p.Longitude, 'f', -1, 64))
	} else {
		q.Set("hasGps", "false")
	}
	return q.Encode()
}

// NamingQuery returns the query that hands the session to the naming step.
func (p Params) NamingQuery() string {
	return url.Values{"sessionId": {p.SessionID}}.Encode()
}
