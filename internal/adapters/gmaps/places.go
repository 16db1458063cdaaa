package gmaps

import (
	"context"
	"encoding/json"
	"fmt"
	"itinerary-route-service/internal/adapters/cache"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/platform/obs"
	"itinerary-route-service/internal/ports"
	"net/http"
	"net/url"
	"strconv"
)

const defaultPhotoWidth = 400

// TextSearch returns places matching a free-text query. Results are
// cached for a week under the normalized query, and concurrent identical
// lookups collapse into a single provider call.
func (c *Client) TextSearch(ctx context.Context, query string) (_ []domain.Place, err error) {
	defer obs.Time(ctx, "gmaps.TextSearch")(&err)

	norm := cache.NormalizeQuery(query)
	if norm == "" {
		return nil, fmt.Errorf("text search: blank query: %w", ports.ErrInvalidInput)
	}

	key := cache.PlaceSearchKey(query)
	if c.cache != nil {
		if payload, ok := c.cache.Get(key); ok {
			var cached []domain.Place
			if err := json.Unmarshal(payload, &cached); err == nil {
				return cached, nil
			}
		}
	}

	v, err, _ := c.lookups.Do(key, func() (any, error) {
		places, err := c.fetchTextSearch(ctx, norm)
		if err != nil {
			return nil, err
		}
		c.cacheSet(key, places, cache.TTLPlaceSearch)
		return places, nil
	})
	if err != nil {
		return nil, fmt.Errorf("text search %q: %w", norm, err)
	}

	return v.([]domain.Place), nil
}

// PlaceDetails returns the full record for a single place, cached for two
// weeks under the place identifier.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (_ domain.Place, err error) {
	defer obs.Time(ctx, "gmaps.PlaceDetails")(&err)

	if placeID == "" {
		return domain.Place{}, fmt.Errorf("place details: blank place id: %w", ports.ErrInvalidInput)
	}

	key := cache.PlaceDetailsKey(placeID)
	if c.cache != nil {
		if payload, ok := c.cache.Get(key); ok {
			var cached domain.Place
			if err := json.Unmarshal(payload, &cached); err == nil {
				return cached, nil
			}
		}
	}

	v, err, _ := c.lookups.Do(key, func() (any, error) {
		place, err := c.fetchPlaceDetails(ctx, placeID)
		if err != nil {
			return nil, err
		}
		c.cacheSet(key, place, cache.TTLPlaceDetails)
		return place, nil
	})
	if err != nil {
		return domain.Place{}, fmt.Errorf("place details %q: %w", placeID, err)
	}

	return v.(domain.Place), nil
}

// PhotoURL resolves a provider photo reference into the image URL behind
// it. The provider answers with a redirect; the Location header is the
// result, cached for a month because resolved URLs barely change.
func (c *Client) PhotoURL(ctx context.Context, photoRef string, maxWidth int) (_ string, err error) {
	defer obs.Time(ctx, "gmaps.PhotoURL")(&err)

	if photoRef == "" {
		return "", fmt.Errorf("photo url: blank photo reference: %w", ports.ErrInvalidInput)
	}
	if maxWidth <= 0 {
		maxWidth = defaultPhotoWidth
	}

	key := cache.PlacePhotoKey(photoRef, maxWidth)
	if c.cache != nil {
		if payload, ok := c.cache.Get(key); ok {
			return string(payload), nil
		}
	}

	v, err, _ := c.lookups.Do(key, func() (any, error) {
		resolved, err := c.fetchPhotoURL(ctx, photoRef, maxWidth)
		if err != nil {
			return nil, err
		}
		if c.cache != nil {
			c.cache.Set(key, []byte(resolved), cache.TTLPlacePhoto)
		}
		return resolved, nil
	})
	if err != nil {
		return "", fmt.Errorf("photo url: %w", err)
	}

	return v.(string), nil
}

func (c *Client) fetchTextSearch(ctx context.Context, normQuery string) ([]domain.Place, error) {
	params := url.Values{}
	params.Set("query", normQuery)
	params.Set("key", c.apiKey)
	endpoint := c.baseURL + "/place/textsearch/json?" + params.Encode()

	resp, err := c.doWithRetry(ctx, c.session, func() (*http.Request, error) {
		return c.newRequest(ctx, endpoint)
	})
	if err != nil {
		return nil, providerErr("textsearch", err)
	}
	defer resp.Body.Close()

	var decoded placesSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode places response: %w", err)
	}

	// ZERO_RESULTS is a valid, cacheable answer: the query matches nothing.
	if decoded.Status != statusOK && decoded.Status != statusZeroResults {
		return nil, &ports.ProviderError{
			Operation: "textsearch",
			Status:    decoded.Status,
			Message:   decoded.ErrorMessage,
		}
	}

	places := make([]domain.Place, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		places = append(places, placeFromWire(r))
	}
	return places, nil
}

func (c *Client) fetchPlaceDetails(ctx context.Context, placeID string) (domain.Place, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "place_id,name,formatted_address,geometry,rating,formatted_phone_number,website")
	params.Set("key", c.apiKey)
	endpoint := c.baseURL + "/place/details/json?" + params.Encode()

	resp, err := c.doWithRetry(ctx, c.session, func() (*http.Request, error) {
		return c.newRequest(ctx, endpoint)
	})
	if err != nil {
		return domain.Place{}, providerErr("placedetails", err)
	}
	defer resp.Body.Close()

	var decoded placeDetailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Place{}, fmt.Errorf("decode place details response: %w", err)
	}

	if decoded.Status != statusOK {
		return domain.Place{}, &ports.ProviderError{
			Operation: "placedetails",
			Status:    decoded.Status,
			Message:   decoded.ErrorMessage,
		}
	}

	return placeFromWire(decoded.Result), nil
}

func (c *Client) fetchPhotoURL(ctx context.Context, photoRef string, maxWidth int) (string, error) {
	params := url.Values{}
	params.Set("photoreference", photoRef)
	params.Set("maxwidth", strconv.Itoa(maxWidth))
	params.Set("key", c.apiKey)
	endpoint := c.baseURL + "/place/photo?" + params.Encode()

	resp, err := c.doWithRetry(ctx, c.noRedirect, func() (*http.Request, error) {
		return c.newRequest(ctx, endpoint)
	})
	if err != nil {
		return "", providerErr("placephoto", err)
	}
	defer resp.Body.Close()

	location := resp.Header.Get("Location")
	if location == "" {
		return "", &ports.ProviderError{
			Operation: "placephoto",
			Status:    fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Message:   "expected a redirect to the image",
		}
	}

	return location, nil
}

func placeFromWire(p wirePlace) domain.Place {
	return domain.Place{
		PlaceID: p.PlaceID,
		Name:    p.Name,
		Address: p.FormattedAddress,
		Lat:     p.Geometry.Location.Lat,
		Lng:     p.Geometry.Location.Lng,
		Rating:  p.Rating,
		Phone:   p.FormattedPhoneNumber,
		Website: p.Website,
	}
}
