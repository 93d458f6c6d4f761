// Package geo acquires one-shot device position fixes.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// FixTimeout bounds a single acquisition. Fixes are never cached and never
// retried automatically; callers may re-invoke.
const FixTimeout = 10 * time.Second

var ErrUnavailable = errors.New("geolocation is not available")

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy,omitempty"`
}

// Provider yields the current position. Implementations must honor context
// cancellation.
type Provider interface {
	CurrentPosition(ctx context.Context) (Coordinates, error)
}

// Acquire performs a single bounded fix against the provider. All failure
// modes surface as one descriptive error.
func Acquire(ctx context.Context, p Provider) (Coordinates, error) {
	if p == nil {
		return Coordinates{}, ErrUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, FixTimeout)
	defer cancel()
	coords, err := p.CurrentPosition(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Coordinates{}, fmt.Errorf("position fix timed out after %s", FixTimeout)
		}
		return Coordinates{}, fmt.Errorf("position fix failed: %w", err)
	}
	return coords, nil
}

// HTTPProvider reads a fix from a local bridge (for example a gpsd REST
// shim) returning {"latitude":..,"longitude":..,"accuracy":..}.
type HTTPProvider struct {
	URL    string
	Client *http.Client
}

func (p HTTPProvider) CurrentPosition(ctx context.Context) (Coordinates, error) {
	if p.URL == "" {
		return Coordinates{}, ErrUnavailable
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return Coordinates{}, err
	}
	res, err := client.Do(req)
	if err != nil {
		return Coordinates{}, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return Coordinates{}, fmt.Errorf("fix source returned status %d", res.StatusCode)
	}
	var coords Coordinates
	if err := json.NewDecoder(res.Body).Decode(&coords); err != nil {
		return Coordinates{}, fmt.Errorf("decode fix: %w", err)
	}
	return coords, nil
}

// Static always returns the same coordinates; used in tests and manual entry.
type Static struct {
	Coords Coordinates
	Err    error
}

func (p Static) CurrentPosition(ctx context.Context) (Coordinates, error) {
	if p.Err != nil {
		return Coordinates{}, p.Err
	}
	select {
	case <-ctx.Done():
		return Coordinates{}, ctx.Err()
	default:
	}
	return p.Coords, nil
}

// Format renders coordinates the way they are stored on records.
func Format(c Coordinates) string {
	return fmt.Sprintf("%.6f, %.6f", c.Latitude, c.Longitude)
}

// MapsLink builds a maps URL for a stored coordinate string.
func MapsLink(coords string) string {
	return "https://www.google.com/maps?q=" + coords
}
