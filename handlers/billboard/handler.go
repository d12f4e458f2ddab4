package billboard

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli"

	"github.com/cartelera-io/billboard-api/services/billboard"
	"github.com/cartelera-io/billboard-api/services/cache"
	"github.com/cartelera-io/billboard-api/services/cartelera"
)

const (
	cinemasTTLFlag   = "cinemas-cache-ttl"
	moviesTTLFlag    = "movies-cache-ttl"
	showtimesTTLFlag = "showtimes-cache-ttl"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.DurationFlag{
			Name:   cinemasTTLFlag,
			Usage:  "cinemas response cache ttl",
			EnvVar: "CINEMAS_CACHE_TTL",
			Value:  24 * time.Hour,
		},
		cli.DurationFlag{
			Name:   moviesTTLFlag,
			Usage:  "movies response cache ttl",
			EnvVar: "MOVIES_CACHE_TTL",
			Value:  3 * time.Hour,
		},
		cli.DurationFlag{
			Name:   showtimesTTLFlag,
			Usage:  "showtimes response cache ttl",
			EnvVar: "SHOWTIMES_CACHE_TTL",
			Value:  15 * time.Minute,
		},
	)
}

// DocumentFetcher yields the current billboard document.
type DocumentFetcher interface {
	Fetch(ctx context.Context) (*billboard.Document, error)
}

type Handler struct {
	feed      DocumentFetcher
	enricher  cartelera.Enricher
	cinemas   *cache.Cache
	movies    *cache.Cache
	showtimes *cache.Cache
}

func RegisterHandler(c *cli.Context, r *gin.Engine, feed DocumentFetcher, enricher cartelera.Enricher, redis redis.UniversalClient) {
	h := New(
		feed,
		enricher,
		cache.New("cinemas", c.Duration(cinemasTTLFlag), redis),
		cache.New("movies", c.Duration(moviesTTLFlag), redis),
		cache.New("showtimes", c.Duration(showtimesTTLFlag), redis),
	)

	gr := r.Group("/")
	gr.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet},
	}))
	gr.GET("/cinemas", h.getCinemas)
	gr.GET("/movies", h.getMovies)
	gr.GET("/movie/:movieId/:cinemaId", h.getShowtimes)
}

func New(feed DocumentFetcher, enricher cartelera.Enricher, cinemas, movies, showtimes *cache.Cache) *Handler {
	return &Handler{
		feed:      feed,
		enricher:  enricher,
		cinemas:   cinemas,
		movies:    movies,
		showtimes: showtimes,
	}
}

func (s *Handler) getCinemas(c *gin.Context) {
	ctx := c.Request.Context()
	data, err := s.cinemas.Get(ctx, "cinemas", func() (any, error) {
		doc, err := s.feed.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		return cartelera.NormalizeCinemas(doc), nil
	})
	s.render(c, data, err)
}

func (s *Handler) getMovies(c *gin.Context) {
	ctx := c.Request.Context()
	data, err := s.movies.Get(ctx, "movies", func() (any, error) {
		doc, err := s.feed.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		return cartelera.NormalizeMovies(ctx, doc, s.enricher), nil
	})
	s.render(c, data, err)
}

func (s *Handler) getShowtimes(c *gin.Context) {
	movieID := c.Param("movieId")
	cinemaID, err := strconv.Atoi(c.Param("cinemaId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cinemaId"})
		return
	}

	ctx := c.Request.Context()
	key := fmt.Sprintf("%v:%v", movieID, cinemaID)
	data, err := s.showtimes.Get(ctx, key, func() (any, error) {
		doc, err := s.feed.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		return cartelera.NormalizeShowtimes(doc, movieID, cinemaID)
	})
	s.render(c, data, err)
}

func (s *Handler) render(c *gin.Context, data []byte, err error) {
	switch {
	case err == nil:
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
	case errors.Is(err, cartelera.ErrMovieNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
	case errors.Is(err, billboard.ErrParse):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse JSON"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch billboard"})
	}
}
