// Package nominatim implements domain.Geocoder using the OpenStreetMap
// Nominatim reverse-geocoding API.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/croppilot/croppilot/internal/domain"
)

// userAgent identifies the service per the Nominatim usage policy.
const userAgent = "CropPilot/1.0 (farmer decision support)"

// villageZoom requests village-level detail from the reverse endpoint.
const villageZoom = "14"

// Client is a Nominatim reverse-geocoding client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a Nominatim client.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://nominatim.openstreetmap.org",
		logger:  logger,
	}
}

// ReverseGeocode converts coordinates to village/district/state details.
// Failures wrap domain.ErrUnavailable so callers can fall back to the
// coordinate-range region table.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (domain.Place, error) {
	params := url.Values{
		"lat":            {fmt.Sprintf("%.6f", lat)},
		"lon":            {fmt.Sprintf("%.6f", lon)},
		"format":         {"json"},
		"addressdetails": {"1"},
		"zoom":           {villageZoom},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+params.Encode(), nil)
	if err != nil {
		return domain.Place{}, fmt.Errorf("%w: create reverse geocode request: %v", domain.ErrUnavailable, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Place{}, fmt.Errorf("%w: reverse geocode request: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.Place{}, fmt.Errorf("%w: nominatim status %d: %s", domain.ErrUnavailable, resp.StatusCode, body)
	}

	var nr response
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		return domain.Place{}, fmt.Errorf("%w: decode reverse geocode response: %v", domain.ErrUnavailable, err)
	}

	return mapToPlace(nr), nil
}

// mapToPlace picks the best available fields: Nominatim labels settlements
// inconsistently (village, hamlet, town, city, suburb) and districts as
// county or state_district depending on the region.
func mapToPlace(nr response) domain.Place {
	village := firstNonEmpty(nr.Address.Village, nr.Address.Hamlet, nr.Address.Town, nr.Address.City, nr.Address.Suburb)
	district := firstNonEmpty(nr.Address.County, nr.Address.StateDistrict, nr.Address.District)

	var parts []string
	for _, p := range []string{village, district, nr.Address.State} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	display := strings.Join(parts, ", ")
	if display == "" {
		display = nr.DisplayName
	}

	return domain.Place{
		Village:     village,
		District:    district,
		State:       nr.Address.State,
		DisplayName: display,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Nominatim API response types.

type response struct {
	DisplayName string  `json:"display_name"`
	Address     address `json:"address"`
}

type address struct {
	Village       string `json:"village"`
	Hamlet        string `json:"hamlet"`
	Town          string `json:"town"`
	City          string `json:"city"`
	Suburb        string `json:"suburb"`
	County        string `json:"county"`
	StateDistrict string `json:"state_district"`
	District      string `json:"district"`
	State         string `json:"state"`
}
