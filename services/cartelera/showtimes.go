package cartelera

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/cartelera-io/billboard-api/services/billboard"
)

// ticketURLTemplate must match the upstream ticketing deep-link scheme
// byte-for-byte or generated links stop working.
const ticketURLTemplate = "https://tickets.cinemarkhoyts.com.ar/NSTicketing/?CinemaId=%d&SessionId=%s&FeatureId=%s"

// ErrMovieNotFound marks a movieId absent from the current document. An
// empty show list for a known movie is a valid result, not this error.
var ErrMovieNotFound = errors.New("movie not found")

type Show struct {
	Timestamp string `json:"timestamp"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Link      string `json:"link"`
	Format    string `json:"format"`
	Version   string `json:"version"`
}

type ShowtimesView struct {
	Name  string `json:"name"`
	Shows []Show `json:"shows"`
}

// NormalizeShowtimes flattens every session of the target cinema for the
// target movie across all (format, version) groups into one list sorted
// ascending by timestamp.
func NormalizeShowtimes(doc *billboard.Document, movieID string, cinemaID int) (*ShowtimesView, error) {
	var film *billboard.Film
	for i := range doc.Films {
		if doc.Films[i].Id == movieID {
			film = &doc.Films[i]
			break
		}
	}
	if film == nil {
		return nil, errors.Wrapf(ErrMovieNotFound, "movieId %q", movieID)
	}

	shows := []Show{}
	for _, showing := range film.MovieList {
		format := formatLabel(showing.Format)
		version := ToTitleCase(showing.Version)
		for _, sc := range showing.CinemaList {
			if sc.Id != cinemaID {
				continue
			}
			for _, session := range sc.SessionList {
				shows = append(shows, Show{
					Timestamp: session.Dtm,
					Date:      formatSessionDate(session.Dtm),
					Time:      formatSessionTime(session.Dtm),
					Link:      fmt.Sprintf(ticketURLTemplate, sc.Id, session.Id, session.Feature),
					Format:    format,
					Version:   version,
				})
			}
		}
	}

	sort.SliceStable(shows, func(i, j int) bool {
		ti, iok := parseDtm(shows[i].Timestamp)
		tj, jok := parseDtm(shows[j].Timestamp)
		if iok != jok {
			return iok
		}
		return ti.Before(tj)
	})

	return &ShowtimesView{
		Name:  ToTitleCase(film.Name),
		Shows: shows,
	}, nil
}

// formatLabel title-cases a screening format and forces the first word
// fully uppercase so acronyms like "XD" survive, e.g. "2D XD" → "2D Xd".
func formatLabel(format string) string {
	words := strings.Split(ToTitleCase(format), " ")
	if len(words) > 0 {
		words[0] = strings.ToUpper(words[0])
	}
	return strings.Join(words, " ")
}

func parseDtm(dtm string) (time.Time, bool) {
	t, err := time.Parse(DtmLayout, dtm)
	return t, err == nil
}

func formatSessionDate(dtm string) string {
	t, ok := parseDtm(dtm)
	if !ok {
		return dtm
	}
	return FormatDate(t)
}

func formatSessionTime(dtm string) string {
	t, ok := parseDtm(dtm)
	if !ok {
		return dtm
	}
	return FormatTime(t)
}
