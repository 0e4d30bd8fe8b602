package tag

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"foodgram/internal/pkg/cache"
)

const cachePrefix = "tags:"

// Service serves the tag catalog, reading through the cache.
type Service struct {
	repo  Repository
	cache cache.Cache
	ttl   time.Duration
	log   *zap.Logger
}

func NewService(repo Repository, c cache.Cache, ttl time.Duration, log *zap.Logger) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, cache: c, ttl: ttl, log: log}
}

func (s *Service) List(ctx context.Context) ([]Tag, error) {
	return cache.GetOrLoad(ctx, s.cache, s.log, cachePrefix+"all", s.ttl, func(ctx context.Context) ([]Tag, error) {
		tags, err := s.repo.List(ctx)
		if tags == nil {
			tags = []Tag{}
		}
		return tags, err
	})
}

func (s *Service) Get(ctx context.Context, id int64) (*Tag, error) {
	return cache.GetOrLoad(ctx, s.cache, s.log, cachePrefix+strconv.FormatInt(id, 10), s.ttl, func(ctx context.Context) (*Tag, error) {
		return s.repo.GetByID(ctx, id)
	})
}
