package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"lending-core/internal/domain/customer"
	"lending-core/internal/infrastructure/logging"
)

var _ customer.Directory = (*CachedDirectory)(nil)

const customerKeyPrefix = "lms:customer:"

// CachedDirectory remembers customers that exist. Misses are never cached,
// so a customer created upstream is visible on the next lookup.
type CachedDirectory struct {
	next customer.Directory
	rdb  *redis.Client
	ttl  time.Duration
	log  logrus.FieldLogger
}

func NewCachedDirectory(next customer.Directory, rdb *redis.Client, ttl time.Duration, log logrus.FieldLogger) *CachedDirectory {
	if log == nil {
		log = logging.Discard()
	}
	return &CachedDirectory{next: next, rdb: rdb, ttl: ttl, log: log}
}

func (d *CachedDirectory) Exists(ctx context.Context, customerID string) (bool, error) {
	key := customerKeyPrefix + customerID
	err := d.rdb.Get(ctx, key).Err()
	switch {
	case err == nil:
		return true, nil
	case !errors.Is(err, redis.Nil):
		// cache trouble degrades to the source of truth
		d.log.WithError(err).WithField("customer_id", customerID).Warn("customer cache read")
	}

	ok, err := d.next.Exists(ctx, customerID)
	if err != nil || !ok {
		return ok, err
	}
	if err := d.rdb.Set(ctx, key, "1", d.ttl).Err(); err != nil {
		d.log.WithError(err).WithField("customer_id", customerID).Warn("customer cache write")
	}
	return true, nil
}
