package cartelera

import (
	"encoding/json"

	"github.com/cartelera-io/billboard-api/services/billboard"
)

const formatsURL = "https://www.cinemarkhoyts.com.ar/formatos"

type Tag struct {
	Tag  string `json:"tag"`
	Link string `json:"link"`
}

type CinemaView struct {
	CinemaId  int         `json:"cinemaId"`
	Value     string      `json:"value"`
	Label     string      `json:"label"`
	Latitude  json.Number `json:"latitude"`
	Longitude json.Number `json:"longitude"`
	Tags      []Tag       `json:"tags"`
}

// cinemaLabel prefers the correction table; unlisted names pass through
// title-cased.
func cinemaLabel(name string) string {
	if fixed := FixName(name); fixed != name {
		return fixed
	}
	return ToTitleCase(name)
}

// NormalizeCinemas maps every cinema of the document to its view record,
// preserving upstream order. Pure and deterministic, no external calls.
func NormalizeCinemas(doc *billboard.Document) []CinemaView {
	views := make([]CinemaView, 0, len(doc.Cinemas))
	for _, c := range doc.Cinemas {
		views = append(views, CinemaView{
			CinemaId:  c.Id,
			Value:     c.Name,
			Label:     cinemaLabel(c.Name),
			Latitude:  c.DecLatitude,
			Longitude: c.DecLongitude,
			Tags: []Tag{
				{Tag: c.Address, Link: c.URLGoogleMaps},
				{Tag: FixFeatures(c.Features), Link: formatsURL},
			},
		})
	}
	return views
}
