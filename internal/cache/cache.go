// Package cache keeps a copy of the company catalogue in Redis so the
// spreadsheet is not read on every request.
package cache

import (
	"context"
	"encoding/json"
	"github.com/limchewyew/CompanyDirectory/internal/model"
	"github.com/limchewyew/CompanyDirectory/internal/repository"
	"github.com/limchewyew/CompanyDirectory/pkg/logger"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"time"
)

const companiesKey = "companies:all"

var ErrMiss = errors.New("cache miss")

// Backend is the key/value store behind the cache.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
}

type redisBackend struct {
	client *redis.Client
}

// NewRedisBackend connects using a redis:// URL.
func NewRedisBackend(url string) (Backend, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "invalid REDIS_URL")
	}
	return &redisBackend{client: redis.NewClient(opts)}, nil
}

func (r *redisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return b, err
}

func (r *redisBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisBackend) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

type companyCache struct {
	next    repository.CompanyRepository
	backend Backend
	ttl     time.Duration
}

// NewCompanyCache wraps next. Backend failures are logged and the
// spreadsheet is read directly.
func NewCompanyCache(next repository.CompanyRepository, backend Backend, ttl time.Duration) repository.CompanyRepository {
	return &companyCache{
		next:    next,
		backend: backend,
		ttl:     ttl,
	}
}

func (c *companyCache) All(ctx context.Context) ([]*model.Company, error) {
	l := logger.FromContext(ctx)

	raw, err := c.backend.Get(ctx, companiesKey)
	switch {
	case err == nil:
		var companies []*model.Company
		if err = json.Unmarshal(raw, &companies); err == nil {
			return companies, nil
		}
		l.Warn("discarding corrupt company cache entry", zap.Error(err))
	case errors.Is(err, ErrMiss):
	default:
		l.Warn("company cache read failed", zap.Error(err))
	}

	companies, err := c.next.All(ctx)
	if err != nil {
		return nil, err
	}

	raw, err = json.Marshal(companies)
	if err == nil {
		err = c.backend.Set(ctx, companiesKey, raw, c.ttl)
	}
	if err != nil {
		l.Warn("company cache write failed", zap.Error(err))
	}

	return companies, nil
}
