package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"

	wb "github.com/cartelera-io/billboard-api/handlers/billboard"
	bb "github.com/cartelera-io/billboard-api/services/billboard"
	"github.com/cartelera-io/billboard-api/services/cache"
	"github.com/cartelera-io/billboard-api/services/cartelera"
	"github.com/cartelera-io/billboard-api/services/tmdb"
	w "github.com/cartelera-io/billboard-api/services/web"
)

func makeServeCMD() cli.Command {
	serveCMD := cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serves web server",
		Action:  serve,
	}
	configureServe(&serveCMD)
	return serveCMD
}

func configureServe(c *cli.Command) {
	c.Flags = cs.RegisterProbeFlags(c.Flags)
	c.Flags = cs.RegisterRedisClientFlags(c.Flags)
	c.Flags = w.RegisterFlags(c.Flags)
	c.Flags = bb.RegisterFlags(c.Flags)
	c.Flags = tmdb.RegisterFlags(c.Flags)
	c.Flags = cache.RegisterFlags(c.Flags)
	c.Flags = wb.RegisterFlags(c.Flags)
}

func serve(c *cli.Context) error {
	// Setting HTTP Client
	cl := http.DefaultClient

	var servers []cs.Servable
	// Setting Probe
	probe := cs.NewProbe(c)
	if probe != nil {
		servers = append(servers, probe)
		defer probe.Close()
	}

	// Setting Redis (shared response cache, optional)
	var redisClient redis.UniversalClient
	if c.Bool(cache.UseSharedFlag) {
		rc := cs.NewRedisClient(c)
		redisClient = rc.Get()
		defer rc.Close()
	}

	// Setting Gin
	r := gin.Default()
	r.RedirectTrailingSlash = false

	// Setting Web
	web := w.New(c, r)
	servers = append(servers, web)
	defer web.Close()

	// Setting Billboard feed
	feed := bb.New(c, cl)

	// Setting Enricher
	var enricher cartelera.Enricher
	if t := tmdb.New(c, cl); t != nil {
		enricher = t
	}

	// Setting BillboardHandler
	wb.RegisterHandler(c, r, feed, enricher, redisClient)

	// Setting Serve
	serve := cs.NewServe(servers...)

	// And SERVE!
	err := serve.Serve()
	if err != nil {
		log.WithError(err).Error("got server error")
	}
	return err
}
