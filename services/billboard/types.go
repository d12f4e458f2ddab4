package billboard

import (
	"encoding/json"
)

// Attribute is an upstream film attribute code. The feed only documents
// these three values; anything else is carried through untouched.
type Attribute int

const (
	AttributePremiere Attribute = 0
	AttributeFestival Attribute = 2
	AttributeSpecial  Attribute = 3
)

// Role is an upstream cast role code.
type Role string

const (
	RoleDirector Role = "D"
	RoleActor    Role = "A"
)

// Document is one parsed billboard payload. It is rebuilt from scratch on
// every cache miss and discarded after normalization.
type Document struct {
	Cinemas []Cinema `json:"Cinemas"`
	Films   []Film   `json:"Films"`
}

type Cinema struct {
	Id            int         `json:"Id"`
	Name          string      `json:"Name"`
	Address       string      `json:"Address"`
	Features      string      `json:"Features"`
	DecLatitude   json.Number `json:"decLatitude"`
	DecLongitude  json.Number `json:"decLongitude"`
	URLGoogleMaps string      `json:"URLGoogleMaps"`
}

type Film struct {
	Id                string      `json:"Id"`
	Name              string      `json:"Name"`
	Rating            string      `json:"Rating"`
	Description       string      `json:"Description"`
	Duration          int         `json:"Duration"`
	Category          string      `json:"Category"`
	URLPoster         string      `json:"URLPoster"`
	URLTrailerYoutube string      `json:"URLTrailerYoutube"`
	AttributeList     []Attribute `json:"AttributeList"`
	PersonList        []Person    `json:"PersonList"`
	CinemaList        []int       `json:"CinemaList"`
	MovieList         []Showing   `json:"MovieList"`
}

type Person struct {
	Type Role   `json:"Type"`
	Name string `json:"Name"`
}

// Showing groups the sessions of one film for one (format, version) pair.
type Showing struct {
	Format     string          `json:"Format"`
	Version    string          `json:"Version"`
	CinemaList []ShowingCinema `json:"CinemaList"`
}

type ShowingCinema struct {
	Id          int       `json:"Id"`
	SessionList []Session `json:"SessionList"`
}

// Session is one scheduled screening. Id and Feature are opaque upstream
// tokens that end up verbatim in the ticketing link, so they are kept as
// json.Number instead of being round-tripped through a float.
type Session struct {
	Id      json.Number `json:"Id"`
	Feature json.Number `json:"Feature"`
	Dtm     string      `json:"Dtm"`
}

func (f *Film) hasAttribute(a Attribute) bool {
	for _, attr := range f.AttributeList {
		if attr == a {
			return true
		}
	}
	return false
}

// IsPremiere reports whether the film carries the premiere attribute.
func (f *Film) IsPremiere() bool {
	return f.hasAttribute(AttributePremiere)
}

// IsPremiereEligible is the billboard inclusion predicate for the movies
// view: films with no attributes at all are included (upstream tags some
// records minimally), otherwise a film must be a premiere and be neither
// a festival nor a special showing.
func (f *Film) IsPremiereEligible() bool {
	if len(f.AttributeList) == 0 {
		return true
	}
	return f.hasAttribute(AttributePremiere) &&
		!f.hasAttribute(AttributeFestival) &&
		!f.hasAttribute(AttributeSpecial)
}
