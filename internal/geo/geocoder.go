// Package geo resolves location strings to coordinates through the Google
// Maps Geocoding API. Lookups are best-effort: callers treat a nil result as
// "no coordinates", never as a failure of the surrounding operation.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	geocodeURL     = "https://maps.googleapis.com/maps/api/geocode/json"
	requestTimeout = 5 * time.Second
)

// Development fallback coordinates used when no API key is configured.
var devLat, devLng = 37.7749, -122.4194

type Geocoder interface {
	Geocode(ctx context.Context, address string) (lat, lng *float64, err error)
}

type GoogleGeocoder struct {
	apiURL      string
	apiKey      string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{
		apiURL: geocodeURL,
		apiKey: apiKey,
		// Google allows 50 QPS on the geocoding API; stay well under it.
		rateLimiter: rate.NewLimiter(rate.Limit(10), 10),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (*float64, *float64, error) {
	if address == "" {
		return nil, nil, nil
	}
	if g.apiKey == "" {
		// No key configured: development coordinates
		lat, lng := devLat, devLng
		return &lat, &lng, nil
	}

	if err := g.rateLimiter.Wait(ctx); err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s?address=%s&key=%s", g.apiURL, url.QueryEscape(address), url.QueryEscape(g.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil, err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	var data geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, nil, err
	}
	if data.Status != "OK" || len(data.Results) == 0 {
		return nil, nil, nil
	}

	loc := data.Results[0].Geometry.Location
	return &loc.Lat, &loc.Lng, nil
}
