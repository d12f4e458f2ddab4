package cartelera

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/cartelera-io/billboard-api/services/billboard"
	"github.com/cartelera-io/billboard-api/services/tmdb"
)

// Enricher supplies best-effort external metadata for a movie title. A nil
// result with nil error means no unique match was found.
type Enricher interface {
	SearchMovie(ctx context.Context, title string) (*tmdb.MovieInfo, error)
}

type Cast struct {
	Directors []string `json:"directors"`
	Actors    []string `json:"actors"`
}

type MovieView struct {
	MovieId     string `json:"movieId"`
	Name        string `json:"name"`
	MinAge      string `json:"minAge"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Category    string `json:"category"`
	Emoji       string `json:"emoji"`
	IsPremiere  bool   `json:"isPremiere"`
	Poster      string `json:"poster"`
	YouTubeId   string `json:"youTubeId,omitempty"`
	InCinemas   []int  `json:"inCinemas"`
	Cast        Cast   `json:"cast"`
	Votes       string `json:"votes,omitempty"`
}

// enrichConcurrency bounds parallel metadata lookups per request.
const enrichConcurrency = 5

// NormalizeMovies maps premiere-eligible films to enriched views. Lookups
// run concurrently, but the output order is decided solely by the final
// stable sort: premieres first, source order preserved within each group.
// Enrichment failure is never fatal; the base view is kept.
func NormalizeMovies(ctx context.Context, doc *billboard.Document, enricher Enricher) []MovieView {
	var views []MovieView
	var names []string
	for _, f := range doc.Films {
		if !f.IsPremiereEligible() {
			continue
		}
		views = append(views, baseMovieView(&f))
		names = append(names, f.Name)
	}

	if enricher != nil {
		sem := make(chan struct{}, enrichConcurrency)
		var wg sync.WaitGroup
		for idx := range views {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()
				info, err := enricher.SearchMovie(ctx, names[i])
				if err != nil {
					log.WithError(err).Warnf("metadata lookup failed for %q", names[i])
					return
				}
				if info == nil {
					return
				}
				views[i].Name = info.Name
				views[i].Votes = info.Votes
				views[i].Poster = info.Poster
			}(idx)
		}
		wg.Wait()
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].IsPremiere && !views[j].IsPremiere
	})
	return views
}

func baseMovieView(f *billboard.Film) MovieView {
	cast := Cast{Directors: []string{}, Actors: []string{}}
	for _, p := range f.PersonList {
		switch p.Type {
		case billboard.RoleDirector:
			cast.Directors = append(cast.Directors, p.Name)
		case billboard.RoleActor:
			cast.Actors = append(cast.Actors, p.Name)
		}
	}

	inCinemas := f.CinemaList
	if inCinemas == nil {
		inCinemas = []int{}
	}

	return MovieView{
		MovieId:     f.Id,
		Name:        ToTitleCase(f.Name),
		MinAge:      strings.Split(f.Rating, " ")[0],
		Description: f.Description,
		Duration:    fmt.Sprintf("%d minutos", f.Duration),
		Category:    f.Category,
		Emoji:       Emoji(f.Category),
		IsPremiere:  f.IsPremiere(),
		Poster:      f.URLPoster,
		YouTubeId:   youTubeID(f.URLTrailerYoutube),
		InCinemas:   inCinemas,
		Cast:        cast,
	}
}

// youTubeID extracts the video id from a youtu.be share link, empty when
// the trailer URL has another shape.
func youTubeID(trailerURL string) string {
	parts := strings.SplitN(trailerURL, ".be/", 2)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
