package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const (
	keyFlag    = "tmdb-api-key"
	hostFlag   = "tmdb-api-host"
	portFlag   = "tmdb-api-port"
	secureFlag = "tmdb-api-secure"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   hostFlag,
			Usage:  "tmdb api host",
			EnvVar: "TMDB_API_HOST",
			Value:  "api.themoviedb.org",
		},
		cli.IntFlag{
			Name:   portFlag,
			Usage:  "tmdb api port",
			EnvVar: "TMDB_API_PORT",
			Value:  443,
		},
		cli.BoolTFlag{
			Name:   secureFlag,
			Usage:  "tmdb api secure (https)",
			EnvVar: "TMDB_API_SECURE",
		},
		cli.StringFlag{
			Name:   keyFlag,
			Usage:  "tmdb api key",
			Value:  "",
			EnvVar: "TMDB_API_KEY",
		},
	)
}

const posterBaseURL = "https://image.tmdb.org/t/p/w300"

// MovieInfo is the supplemental record merged into a movie view when the
// search yields exactly one candidate.
type MovieInfo struct {
	Name   string `json:"name"`
	Votes  string `json:"votes"`
	Poster string `json:"poster"`
}

type searchResponse struct {
	TotalResults int `json:"total_results"`
	Results      []struct {
		Title       string  `json:"title"`
		VoteAverage float64 `json:"vote_average"`
		PosterPath  string  `json:"poster_path"`
	} `json:"results"`
}

type Api struct {
	url            string
	cl             *http.Client
	prepareRequest func(r *http.Request) (*http.Request, error)
	now            func() time.Time
}

func New(c *cli.Context, cl *http.Client) *Api {
	host := c.String(hostFlag)
	port := c.Int(portFlag)
	secure := c.BoolT(secureFlag)
	key := c.String(keyFlag)
	if key == "" {
		return nil
	}

	protocol := "http"
	if secure {
		protocol = "https"
	}

	u := fmt.Sprintf("%v://%v:%v", protocol, host, port)
	prepareRequest := func(r *http.Request) (*http.Request, error) {
		q := r.URL.Query()
		q.Set("api_key", key)
		r.URL.RawQuery = q.Encode()
		return r, nil
	}

	log.Infof("tmdb api endpoint %v", u)

	return &Api{
		url:            u,
		cl:             cl,
		prepareRequest: prepareRequest,
		now:            time.Now,
	}
}

// SearchMovie looks up a title limited to the current release year. It
// returns nil without error when the match is ambiguous (zero or more than
// one candidate); the caller keeps the base record in that case.
func (api *Api) SearchMovie(ctx context.Context, title string) (*MovieInfo, error) {
	u, _ := url.Parse(fmt.Sprintf("%s/3/search/movie", api.url))
	q := u.Query()
	q.Set("query", strings.TrimSpace(title))
	q.Set("page", "1")
	q.Set("include_adult", "false")
	q.Set("year", strconv.Itoa(api.now().Year()))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}

	req, err = api.prepareRequest(req)
	if err != nil {
		return nil, errors.Wrap(err, "prepare request")
	}

	resp, err := api.cl.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request failed")
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var raw searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "decode response")
	}

	if raw.TotalResults != 1 || len(raw.Results) == 0 {
		return nil, nil
	}

	movie := raw.Results[0]
	return &MovieInfo{
		Name:   movie.Title,
		Votes:  formatVotes(movie.VoteAverage),
		Poster: posterBaseURL + movie.PosterPath,
	}, nil
}

// formatVotes renders the vote average the way the UI expects: integral
// scores get a trailing ".0" so "7" becomes "7.0".
func formatVotes(votes float64) string {
	s := strconv.FormatFloat(votes, 'f', -1, 64)
	if len(s) == 1 {
		s += ".0"
	}
	return s
}
