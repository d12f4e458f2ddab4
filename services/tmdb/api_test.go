package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestApi(url string) *Api {
	return &Api{
		url: url,
		cl:  http.DefaultClient,
		prepareRequest: func(r *http.Request) (*http.Request, error) {
			q := r.URL.Query()
			q.Set("api_key", "test-key")
			r.URL.RawQuery = q.Encode()
			return r, nil
		},
		now: func() time.Time {
			return time.Date(2024, time.October, 5, 0, 0, 0, 0, time.UTC)
		},
	}
}

func TestSearchMovieUniqueMatch(t *testing.T) {
	var gotQuery, gotYear, gotAdult string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotYear = r.URL.Query().Get("year")
		gotAdult = r.URL.Query().Get("include_adult")
		_, _ = w.Write([]byte(`{"total_results": 1, "results": [{"title": "The Movie", "vote_average": 7, "poster_path": "/abc.jpg"}]}`))
	}))
	defer srv.Close()

	info, err := newTestApi(srv.URL).SearchMovie(context.Background(), "LA PELICULA")
	if err != nil {
		t.Fatalf("SearchMovie failed: %v", err)
	}
	if info == nil {
		t.Fatal("Expected info, got nil")
	}
	if info.Name != "The Movie" {
		t.Errorf("Expected name 'The Movie', got %q", info.Name)
	}
	if info.Votes != "7.0" {
		t.Errorf("Expected votes '7.0', got %q", info.Votes)
	}
	if info.Poster != "https://image.tmdb.org/t/p/w300/abc.jpg" {
		t.Errorf("Unexpected poster url %q", info.Poster)
	}

	if gotQuery != "LA PELICULA" {
		t.Errorf("Expected query 'LA PELICULA', got %q", gotQuery)
	}
	if gotYear != "2024" {
		t.Errorf("Expected year '2024', got %q", gotYear)
	}
	if gotAdult != "false" {
		t.Errorf("Expected include_adult 'false', got %q", gotAdult)
	}
}

func TestSearchMovieAmbiguous(t *testing.T) {
	for _, tc := range []struct {
		name string
		body string
	}{
		{"no results", `{"total_results": 0, "results": []}`},
		{"multiple results", `{"total_results": 2, "results": [{"title": "A"}, {"title": "B"}]}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			info, err := newTestApi(srv.URL).SearchMovie(context.Background(), "whatever")
			if err != nil {
				t.Fatalf("SearchMovie failed: %v", err)
			}
			if info != nil {
				t.Errorf("Expected nil info for ambiguous match, got %+v", info)
			}
		})
	}
}

func TestSearchMovieBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestApi(srv.URL).SearchMovie(context.Background(), "whatever")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
}

func TestFormatVotes(t *testing.T) {
	for _, tc := range []struct {
		votes    float64
		expected string
	}{
		{7, "7.0"},
		{7.5, "7.5"},
		{10, "10"},
		{6.85, "6.85"},
	} {
		if got := formatVotes(tc.votes); got != tc.expected {
			t.Errorf("formatVotes(%v) = %q, expected %q", tc.votes, got, tc.expected)
		}
	}
}
