package ao3

import (
	"ao3search/internal/components/assert"
	"ao3search/internal/components/chrono"
	"ao3search/internal/components/telemetry"
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"net/url"
	"time"

	"github.com/PuerkitoBio/purell"
	"github.com/dgraph-io/badger/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	report_cache_get = "cache.get"
	report_cache_set = "cache.set"
)

var errPageNotCached = errors.New("page not cached")

type cachedPage struct {
	Contents  []byte
	ExpiresAt int64
}

type CacheOptions struct {
	// Lifetime defaults to one hour.
	Lifetime time.Duration
}

// CachedFetcher serves pages from a badger store while they are fresh and
// falls back to the inner Fetcher otherwise. Failed fetches are never cached.
type CachedFetcher struct {
	db       *badger.DB
	inner    Fetcher
	time     chrono.TimeAPI
	lifetime time.Duration
	tel      telemetry.API
}

func NewCachedFetcher(
	db *badger.DB,
	inner Fetcher,
	opts CacheOptions,
	timeAPI chrono.TimeAPI,
	tel telemetry.API,
) CachedFetcher {
	assert.NotNil(db)
	assert.NotNil(inner)
	assert.NotNil(timeAPI)
	assert.NotNil(tel)

	lifetime := opts.Lifetime
	if lifetime <= 0 {
		lifetime = time.Hour
	}
	return CachedFetcher{
		db:       db,
		inner:    inner,
		time:     timeAPI,
		lifetime: lifetime,
		tel:      telemetry.NewScopedAPI("ao3", tel),
	}
}

func cacheKey(rawUrl string) (string, error) {
	parsed, err := url.Parse(rawUrl)
	if err != nil {
		return "", err
	}
	normalized := purell.NormalizeURL(
		parsed,
		purell.FlagsSafe|
			purell.FlagsUsuallySafeNonGreedy|
			purell.FlagRemoveDirectoryIndex|
			purell.FlagRemoveFragment|
			purell.FlagSortQuery,
	)
	return "page:" + normalized, nil
}

func (c CachedFetcher) Fetch(ctx context.Context, rawUrl string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "CachedFetcher.Fetch")
	defer span.End()

	key, err := cacheKey(rawUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create cache key")
		return nil, err
	}
	span.SetAttributes(attribute.String("cache_key", key))

	page, err := c.get(key)
	if err == nil {
		span.SetAttributes(attribute.Bool("cache_hit", true))
		return page.Contents, nil
	}
	if err != errPageNotCached {
		c.tel.ReportWarning(report_cache_get, err, key)
	}
	span.SetAttributes(attribute.Bool("cache_hit", false))

	contents, err := c.inner.Fetch(ctx, rawUrl)
	if err != nil {
		return nil, err
	}

	err = c.set(key, cachedPage{
		Contents:  contents,
		ExpiresAt: c.time.Now().Add(c.lifetime).Unix(),
	})
	if err != nil {
		c.tel.ReportWarning(report_cache_set, err, key)
	}
	return contents, nil
}

func (c CachedFetcher) get(key string) (cachedPage, error) {
	var serialized []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		serialized, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return cachedPage{}, errPageNotCached
	}
	if err != nil {
		return cachedPage{}, err
	}

	var page cachedPage
	err = gob.NewDecoder(bytes.NewBuffer(serialized)).Decode(&page)
	if err != nil {
		return cachedPage{}, err
	}

	if c.time.Now().Unix() >= page.ExpiresAt {
		err = c.db.Update(func(txn *badger.Txn) error {
			return txn.Delete([]byte(key))
		})
		if err != nil {
			c.tel.ReportWarning(report_cache_get, err, key)
		}
		return cachedPage{}, errPageNotCached
	}
	return page, nil
}

func (c CachedFetcher) set(key string, page cachedPage) error {
	serialized := bytes.NewBuffer(nil)
	err := gob.NewEncoder(serialized).Encode(page)
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), serialized.Bytes())
	})
}
