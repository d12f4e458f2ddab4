package billboard

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const (
	urlFlag     = "billboard-url"
	timeoutFlag = "billboard-timeout"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   urlFlag,
			Usage:  "billboard feed url",
			EnvVar: "BILLBOARD_URL",
			Value:  "https://www.cinemarkhoyts.com.ar/ws/Billboard_WWW_202410051054157566.js",
		},
		cli.DurationFlag{
			Name:   timeoutFlag,
			Usage:  "billboard feed fetch timeout",
			EnvVar: "BILLBOARD_TIMEOUT",
			Value:  30 * time.Second,
		},
	)
}

// Api fetches and parses the upstream billboard feed.
type Api struct {
	url     string
	timeout time.Duration
	cl      *http.Client
}

func New(c *cli.Context, cl *http.Client) *Api {
	u := c.String(urlFlag)
	log.Infof("billboard feed endpoint %v", u)
	return &Api{
		url:     u,
		timeout: c.Duration(timeoutFlag),
		cl:      cl,
	}
}

// Fetch retrieves the current billboard document. A fetch failure and a
// parse failure are distinct: the latter wraps ErrParse.
func (api *Api) Fetch(ctx context.Context) (*Document, error) {
	if api.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, api.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", api.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
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

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}

	return Parse(raw)
}
