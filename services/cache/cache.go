package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"github.com/webtor-io/lazymap"
)

const (
	UseSharedFlag = "use-shared-cache"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.BoolFlag{
			Name:   UseSharedFlag,
			Usage:  "share serialized responses between replicas through redis",
			EnvVar: "USE_SHARED_CACHE",
		},
	)
}

// Cache holds serialized responses for one logical endpoint. lazymap gives
// each key a TTL window and single-flight computes, so a burst of misses
// for the same key runs the upstream pipeline once. A Redis client, when
// configured, adds a shared second level so replicas reuse entries.
type Cache struct {
	name      string
	ttl       time.Duration
	redis     redis.UniversalClient
	responses *lazymap.LazyMap[[]byte]
}

func New(name string, ttl time.Duration, redis redis.UniversalClient) *Cache {
	return &Cache{
		name:  name,
		ttl:   ttl,
		redis: redis,
		responses: lazymap.New[[]byte](&lazymap.Config{
			Expire:      ttl,
			ErrorExpire: 30 * time.Second,
		}),
	}
}

// Get returns the serialized value for key, invoking compute and
// marshaling its result on a miss. Errors from compute are returned as-is
// (and briefly cached) so callers can match sentinels with errors.Is.
func (s *Cache) Get(ctx context.Context, key string, compute func() (any, error)) ([]byte, error) {
	return s.responses.Get(key, func() ([]byte, error) {
		if data, ok := s.getShared(ctx, key); ok {
			return data, nil
		}
		v, err := compute()
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(err, "marshal response")
		}
		s.setShared(ctx, key, data)
		return data, nil
	})
}

func (s *Cache) sharedKey(key string) string {
	return fmt.Sprintf("cartelera:%v:%v", s.name, key)
}

func (s *Cache) getShared(ctx context.Context, key string) ([]byte, bool) {
	if s.redis == nil {
		return nil, false
	}
	data, err := s.redis.Get(ctx, s.sharedKey(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.WithError(err).Warnf("shared cache read failed for %v", s.sharedKey(key))
		}
		return nil, false
	}
	return data, true
}

func (s *Cache) setShared(ctx context.Context, key string, data []byte) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Set(ctx, s.sharedKey(key), data, s.ttl).Err(); err != nil {
		log.WithError(err).Warnf("shared cache write failed for %v", s.sharedKey(key))
	}
}
