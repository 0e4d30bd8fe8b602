package ingredient

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"foodgram/internal/pkg/cache"
)

const cachePrefix = "ingredients:"

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

// List returns the catalog filtered by a case-insensitive name prefix.
func (s *Service) List(ctx context.Context, namePrefix string) ([]Ingredient, error) {
	prefix := strings.TrimSpace(namePrefix)
	key := cachePrefix + "search:" + strings.ToLower(prefix)

	return cache.GetOrLoad(ctx, s.cache, s.log, key, s.ttl, func(ctx context.Context) ([]Ingredient, error) {
		items, err := s.repo.Search(ctx, prefix)
		if items == nil {
			items = []Ingredient{}
		}
		return items, err
	})
}

func (s *Service) Get(ctx context.Context, id int64) (*Ingredient, error) {
	return cache.GetOrLoad(ctx, s.cache, s.log, cachePrefix+strconv.FormatInt(id, 10), s.ttl, func(ctx context.Context) (*Ingredient, error) {
		return s.repo.GetByID(ctx, id)
	})
}
