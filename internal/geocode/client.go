// Package geocode is a thin forward-geocoding client against a
// Nominatim-compatible search endpoint. Lookups are best-effort: a miss
// and a degraded response both come back as a nil result, since the
// address stays editable and saveable without coordinates either way.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Result is a successfully geocoded address.
type Result struct {
	Latitude  float64
	Longitude float64
	Label     string
}

// nominatimPlace is one entry of a Nominatim search response. Coordinates
// arrive as strings.
type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Client queries a Nominatim-compatible endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a geocoding client for the given search endpoint
// (e.g. https://nominatim.openstreetmap.org/search).
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Geocode looks up the first match for an address. A blank address, no
// match, or an unparsable response yields (nil, nil); only transport
// failures surface as errors, and callers are free to treat those as a
// miss too.
func (c *Client) Geocode(ctx context.Context, address string) (*Result, error) {
	query := strings.TrimSpace(address)
	if query == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil,
	)
	if err != nil {
		return nil, fmt.Errorf("creating geocode request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading geocode response: %w", err)
	}

	var places []nominatimPlace
	if err := json.Unmarshal(body, &places); err != nil || len(places) == 0 {
		return nil, nil
	}

	lat, latErr := strconv.ParseFloat(places[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(places[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return nil, nil
	}

	label := places[0].DisplayName
	if label == "" {
		label = query
	}
	return &Result{Latitude: lat, Longitude: lon, Label: label}, nil
}
