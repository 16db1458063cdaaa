package gmaps

import (
	"context"
	"errors"
	"itinerary-route-service/internal/ports"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

const searchResponse = `{
	"status": "OK",
	"results": [{
		"place_id": "ChIJsushi1",
		"name": "Sushi Dai",
		"formatted_address": "5-2-1 Tsukiji, Chuo City, Tokyo",
		"geometry": {"location": {"lat": 35.665498, "lng": 139.770642}},
		"rating": 4.6
	}]
}`

func TestTextSearchCachesNormalizedQuery(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/place/textsearch/json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "sushi tokyo" {
			t.Errorf("query = %q, want normalized form", got)
		}
		_, _ = w.Write([]byte(searchResponse))
	}))
	defer server.Close()

	client, err := NewClient("test-key", server.URL, newTestCache(t), 0)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	first, err := client.TextSearch(context.Background(), "  Sushi   Tokyo ")
	if err != nil {
		t.Fatalf("first TextSearch: %v", err)
	}
	second, err := client.TextSearch(context.Background(), "sushi tokyo")
	if err != nil {
		t.Fatalf("second TextSearch: %v", err)
	}

	if calls.Load() != 1 {
		t.Errorf("provider called %d times, want 1", calls.Load())
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("got %d and %d results, want 1 each", len(first), len(second))
	}
	if second[0].PlaceID != first[0].PlaceID {
		t.Errorf("cached result differs: %+v vs %+v", second[0], first[0])
	}
}

func TestTextSearchBlankQuery(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client, err := NewClient("test-key", server.URL, nil, 0)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := client.TextSearch(context.Background(), "   "); !errors.Is(err, ports.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
	if calls.Load() != 0 {
		t.Errorf("provider was called %d times for a blank query", calls.Load())
	}
}

func TestTextSearchZeroResultsIsEmptyAndCached(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))
	defer server.Close()

	client, err := NewClient("test-key", server.URL, newTestCache(t), 0)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	places, err := client.TextSearch(context.Background(), "nowhere at all")
	if err != nil {
		t.Fatalf("TextSearch: %v", err)
	}
	if len(places) != 0 {
		t.Errorf("got %d results, want 0", len(places))
	}

	if _, err := client.TextSearch(context.Background(), "nowhere at all"); err != nil {
		t.Fatalf("second TextSearch: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("provider called %d times, want 1 (empty answers are cacheable)", calls.Load())
	}
}

func TestTextSearchRetriesOnTooManyRequests(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "slow down", http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(searchResponse))
	}))
	defer server.Close()

	client, err := NewClient("test-key", server.URL, nil, 0)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	places, err := client.TextSearch(context.Background(), "sushi tokyo")
	if err != nil {
		t.Fatalf("TextSearch: %v", err)
	}
	if len(places) != 1 {
		t.Errorf("got %d results, want 1", len(places))
	}
	if calls.Load() != 2 {
		t.Errorf("provider called %d times, want 2 (one retry)", calls.Load())
	}
}

func TestPlaceDetailsParsesFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/place/details/json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("place_id"); got != "ChIJramen1" {
			t.Errorf("place_id = %q", got)
		}
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"result": {
				"place_id": "ChIJramen1",
				"name": "Ichiran Shibuya",
				"formatted_address": "1-22-7 Jinnan, Shibuya City, Tokyo",
				"geometry": {"location": {"lat": 35.661777, "lng": 139.700551}},
				"rating": 4.2,
				"formatted_phone_number": "+81 3-1234-5678",
				"website": "https://ichiran.com"
			}
		}`))
	}))
	defer server.Close()

	client, err := NewClient("test-key", server.URL, nil, 0)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	place, err := client.PlaceDetails(context.Background(), "ChIJramen1")
	if err != nil {
		t.Fatalf("PlaceDetails: %v", err)
	}
	if place.PlaceID != "ChIJramen1" || place.Name != "Ichiran Shibuya" {
		t.Errorf("unexpected identity fields %+v", place)
	}
	if place.Address != "1-22-7 Jinnan, Shibuya City, Tokyo" {
		t.Errorf("address = %q", place.Address)
	}
	if place.Lat != 35.661777 || place.Lng != 139.700551 {
		t.Errorf("location = %f,%f", place.Lat, place.Lng)
	}
	if place.Rating != 4.2 || place.Phone != "+81 3-1234-5678" || place.Website != "https://ichiran.com" {
		t.Errorf("unexpected detail fields %+v", place)
	}
}

func TestPlaceDetailsStatusErrorNotCached(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"status": "NOT_FOUND", "error_message": "no such place"}`))
	}))
	defer server.Close()

	client, err := NewClient("test-key", server.URL, newTestCache(t), 0)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.PlaceDetails(context.Background(), "ChIJgone")
	var pe *ports.ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("got %v, want ProviderError", err)
	}
	if pe.Status != "NOT_FOUND" {
		t.Errorf("status = %q", pe.Status)
	}

	if _, err := client.PlaceDetails(context.Background(), "ChIJgone"); err == nil {
		t.Fatal("expected the second call to fail too")
	}
	if calls.Load() != 2 {
		t.Errorf("provider called %d times, want 2 (failures must not be cached)", calls.Load())
	}
}

func TestPhotoURLResolvesRedirect(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/place/photo" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if got := q.Get("photoreference"); got != "photo-ref-1" {
			t.Errorf("photoreference = %q", got)
		}
		if got := q.Get("maxwidth"); got != "400" {
			t.Errorf("maxwidth = %q, want default 400", got)
		}
		w.Header().Set("Location", "https://images.example.com/photo-1.jpg")
		w.WriteHeader(http.StatusFound)
	}))
	defer server.Close()

	client, err := NewClient("test-key", server.URL, newTestCache(t), 0)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	resolved, err := client.PhotoURL(context.Background(), "photo-ref-1", 0)
	if err != nil {
		t.Fatalf("PhotoURL: %v", err)
	}
	if resolved != "https://images.example.com/photo-1.jpg" {
		t.Errorf("resolved = %q", resolved)
	}

	again, err := client.PhotoURL(context.Background(), "photo-ref-1", 0)
	if err != nil {
		t.Fatalf("second PhotoURL: %v", err)
	}
	if again != resolved {
		t.Errorf("cached url = %q, want %q", again, resolved)
	}
	if calls.Load() != 1 {
		t.Errorf("provider called %d times, want 1", calls.Load())
	}
}

func TestPhotoURLMissingRedirect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClient("test-key", server.URL, nil, 0)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.PhotoURL(context.Background(), "photo-ref-1", 400)
	var pe *ports.ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("got %v, want ProviderError", err)
	}
}

func TestPhotoURLBlankReference(t *testing.T) {
	client, err := NewClient("test-key", "http://unused.invalid", nil, 0)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := client.PhotoURL(context.Background(), "", 400); !errors.Is(err, ports.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
}
