package cartelera

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"

	"github.com/cartelera-io/billboard-api/services/billboard"
)

func session(id, feature, dtm string) billboard.Session {
	return billboard.Session{
		Id:      json.Number(id),
		Feature: json.Number(feature),
		Dtm:     dtm,
	}
}

func TestNormalizeShowtimesFlattenAndSort(t *testing.T) {
	// Two format groups with out-of-order sessions collapse into one
	// chronological list.
	doc := &billboard.Document{
		Films: []billboard.Film{
			{
				Id:   "f1",
				Name: "LA PELICULA",
				MovieList: []billboard.Showing{
					{
						Format:  "2D",
						Version: "SUBTITULADA",
						CinemaList: []billboard.ShowingCinema{
							{Id: 12, SessionList: []billboard.Session{
								session("1", "10", "2024-10-05T22:00:00"),
								session("2", "10", "2024-10-05T20:00:00"),
							}},
							{Id: 99, SessionList: []billboard.Session{
								session("3", "10", "2024-10-05T19:00:00"),
							}},
						},
					},
					{
						Format:  "3D",
						Version: "DOBLADA",
						CinemaList: []billboard.ShowingCinema{
							{Id: 12, SessionList: []billboard.Session{
								session("4", "11", "2024-10-05T21:00:00"),
							}},
						},
					},
				},
			},
		},
	}

	view, err := NormalizeShowtimes(doc, "f1", 12)
	if err != nil {
		t.Fatalf("NormalizeShowtimes failed: %v", err)
	}
	if view.Name != "La Pelicula" {
		t.Errorf("Expected name 'La Pelicula', got %q", view.Name)
	}

	expected := []string{"2024-10-05T20:00:00", "2024-10-05T21:00:00", "2024-10-05T22:00:00"}
	if len(view.Shows) != len(expected) {
		t.Fatalf("Expected %d shows, got %d", len(expected), len(view.Shows))
	}
	for i, ts := range expected {
		if view.Shows[i].Timestamp != ts {
			t.Errorf("Expected show[%d] at %q, got %q", i, ts, view.Shows[i].Timestamp)
		}
	}

	// Sessions of other cinemas never leak in.
	for _, s := range view.Shows {
		if s.Timestamp == "2024-10-05T19:00:00" {
			t.Error("Session of another cinema included")
		}
	}

	first := view.Shows[0]
	if first.Date != "sábado 5 de octubre" {
		t.Errorf("Unexpected date %q", first.Date)
	}
	if first.Time != "20:00" {
		t.Errorf("Unexpected time %q", first.Time)
	}
	if first.Version != "Doblada" && first.Version != "Subtitulada" {
		t.Errorf("Unexpected version %q", first.Version)
	}
}

func TestNormalizeShowtimesTicketLink(t *testing.T) {
	doc := &billboard.Document{
		Films: []billboard.Film{
			{
				Id:   "f1",
				Name: "LA PELICULA",
				MovieList: []billboard.Showing{
					{
						Format:  "2D",
						Version: "SUBTITULADA",
						CinemaList: []billboard.ShowingCinema{
							{Id: 12, SessionList: []billboard.Session{
								session("345", "6", "2024-10-05T22:30:00"),
							}},
						},
					},
				},
			},
		},
	}

	view, err := NormalizeShowtimes(doc, "f1", 12)
	if err != nil {
		t.Fatalf("NormalizeShowtimes failed: %v", err)
	}
	if len(view.Shows) != 1 {
		t.Fatalf("Expected 1 show, got %d", len(view.Shows))
	}
	expected := "https://tickets.cinemarkhoyts.com.ar/NSTicketing/?CinemaId=12&SessionId=345&FeatureId=6"
	if view.Shows[0].Link != expected {
		t.Errorf("Expected link %q, got %q", expected, view.Shows[0].Link)
	}
}

func TestNormalizeShowtimesFormatLabel(t *testing.T) {
	doc := &billboard.Document{
		Films: []billboard.Film{
			{
				Id: "f1",
				MovieList: []billboard.Showing{
					{
						Format:  "2D XD MONSTER",
						Version: "CASTELLANO",
						CinemaList: []billboard.ShowingCinema{
							{Id: 12, SessionList: []billboard.Session{
								session("1", "1", "2024-10-05T20:00:00"),
							}},
						},
					},
				},
			},
		},
	}

	view, err := NormalizeShowtimes(doc, "f1", 12)
	if err != nil {
		t.Fatalf("NormalizeShowtimes failed: %v", err)
	}
	// First word forced uppercase even where title-casing lowers it.
	if view.Shows[0].Format != "2D Xd Monster" {
		t.Errorf("Unexpected format %q", view.Shows[0].Format)
	}
	if view.Shows[0].Version != "Castellano" {
		t.Errorf("Unexpected version %q", view.Shows[0].Version)
	}
}

func TestNormalizeShowtimesUnknownMovie(t *testing.T) {
	doc := &billboard.Document{
		Films: []billboard.Film{{Id: "f1"}},
	}
	view, err := NormalizeShowtimes(doc, "nope", 12)
	if view != nil {
		t.Errorf("Expected nil view, got %+v", view)
	}
	if !errors.Is(err, ErrMovieNotFound) {
		t.Errorf("Expected ErrMovieNotFound, got %v", err)
	}
}

func TestNormalizeShowtimesNoSessionsForCinema(t *testing.T) {
	// A known movie with zero matching sessions yields an empty list, not
	// an error.
	doc := &billboard.Document{
		Films: []billboard.Film{
			{
				Id:   "f1",
				Name: "LA PELICULA",
				MovieList: []billboard.Showing{
					{
						Format: "2D",
						CinemaList: []billboard.ShowingCinema{
							{Id: 99, SessionList: []billboard.Session{
								session("1", "1", "2024-10-05T20:00:00"),
							}},
						},
					},
				},
			},
		},
	}

	view, err := NormalizeShowtimes(doc, "f1", 12)
	if err != nil {
		t.Fatalf("NormalizeShowtimes failed: %v", err)
	}
	if view.Shows == nil || len(view.Shows) != 0 {
		t.Errorf("Expected empty shows, got %v", view.Shows)
	}
}
