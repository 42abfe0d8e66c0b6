// Package places finds businesses without websites through the Google Maps
// Platform. Search results are memoized per city so repeated dashboard runs
// do not burn Places quota.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"

	cacheport "github.com/sernur/SalesShortcut/internal/infrastructure/cache/port"
	"github.com/sernur/SalesShortcut/internal/pkg/lead"
)

const (
	searchRadiusMeters = 25000
	cacheTTL           = time.Hour

	// The Places API imposes a short delay before a next_page_token becomes
	// valid.
	pageTokenDelay = 2 * time.Second
)

// GooglePlaces searches a city for businesses that have no website, the
// target audience for the agency pitch.
type GooglePlaces struct {
	client *maps.Client
	cache  cacheport.Cache
	logger *zap.Logger
}

// NewGooglePlaces builds the searcher. The cache is optional; pass nil to
// search uncached.
func NewGooglePlaces(apiKey string, cache cacheport.Cache, logger *zap.Logger) (*GooglePlaces, error) {
	if apiKey == "" {
		return nil, errors.New("places: missing API key")
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("places: connect: %w", err)
	}
	return &GooglePlaces{client: client, cache: cache, logger: logger}, nil
}

// Search returns up to max leads for the city, each a business the Places
// details listing shows no website for.
func (g *GooglePlaces) Search(ctx context.Context, city string, max int) ([]lead.Lead, error) {
	if max <= 0 {
		max = 50
	}
	cacheKey := fmt.Sprintf("leadfinder:search:%s:%d", strings.ToLower(strings.TrimSpace(city)), max)

	if cached, ok := g.fromCache(ctx, cacheKey); ok {
		g.logger.Info("places cache hit", zap.String("city", city), zap.Int("leads", len(cached)))
		return cached, nil
	}

	center, err := g.geocode(ctx, city)
	if err != nil {
		return nil, err
	}

	leads, err := g.search(ctx, city, center, max)
	if err != nil {
		return nil, err
	}

	g.toCache(ctx, cacheKey, leads)
	return leads, nil
}

func (g *GooglePlaces) geocode(ctx context.Context, city string) (*maps.LatLng, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: city})
	if err != nil {
		return nil, fmt.Errorf("places: geocode %q: %w", city, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("places: unknown city %q", city)
	}
	loc := results[0].Geometry.Location
	return &loc, nil
}

func (g *GooglePlaces) search(ctx context.Context, city string, center *maps.LatLng, max int) ([]lead.Lead, error) {
	var leads []lead.Lead
	pageToken := ""

	for len(leads) < max {
		if pageToken != "" {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(pageTokenDelay):
			}
		}

		resp, err := g.client.NearbySearch(ctx, &maps.NearbySearchRequest{
			Location:  center,
			Radius:    searchRadiusMeters,
			Keyword:   "business",
			PageToken: pageToken,
		})
		if err != nil {
			return nil, fmt.Errorf("places: nearby search %q: %w", city, err)
		}

		for _, result := range resp.Results {
			if len(leads) >= max {
				break
			}
			l, ok := g.qualify(ctx, city, result)
			if ok {
				leads = append(leads, l)
			}
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	return leads, nil
}

// qualify fetches the detail listing and keeps the business only when it has
// no website of its own.
func (g *GooglePlaces) qualify(ctx context.Context, city string, result maps.PlacesSearchResult) (lead.Lead, bool) {
	details, err := g.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID: result.PlaceID,
		Fields: []maps.PlaceDetailsFieldMask{
			maps.PlaceDetailsFieldMaskName,
			maps.PlaceDetailsFieldMaskFormattedAddress,
			maps.PlaceDetailsFieldMaskFormattedPhoneNumber,
			maps.PlaceDetailsFieldMaskWebsite,
			maps.PlaceDetailsFieldMaskRatings,
			maps.PlaceDetailsFieldMaskTypes,
		},
	})
	if err != nil {
		g.logger.Warn("place details failed", zap.String("place_id", result.PlaceID), zap.Error(err))
		return lead.Lead{}, false
	}
	if details.Website != "" {
		return lead.Lead{}, false
	}

	category := ""
	if len(details.Types) > 0 {
		category = details.Types[0]
	}

	l, err := lead.New(lead.Lead{
		ID:          result.PlaceID,
		Name:        details.Name,
		City:        city,
		Address:     details.FormattedAddress,
		Phone:       details.FormattedPhoneNumber,
		Category:    category,
		Rating:      float64(details.Rating),
		Description: fmt.Sprintf("%s business in %s without a website", category, city),
	})
	if err != nil {
		return lead.Lead{}, false
	}
	return *l, true
}

func (g *GooglePlaces) fromCache(ctx context.Context, key string) ([]lead.Lead, bool) {
	if g.cache == nil {
		return nil, false
	}
	raw, err := g.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cacheport.ErrMiss) {
			g.logger.Warn("places cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var leads []lead.Lead
	if err := json.Unmarshal([]byte(raw), &leads); err != nil {
		return nil, false
	}
	return leads, true
}

func (g *GooglePlaces) toCache(ctx context.Context, key string, leads []lead.Lead) {
	if g.cache == nil || len(leads) == 0 {
		return
	}
	raw, err := json.Marshal(leads)
	if err != nil {
		return
	}
	if err := g.cache.Set(ctx, key, string(raw), cacheTTL); err != nil {
		g.logger.Warn("places cache write failed", zap.Error(err))
	}
}
