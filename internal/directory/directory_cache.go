package directory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	HRHODCacheKey      = "directory:hr-hod"
	SuperAdminCacheKey = "directory:super-admin"
	HODCacheKeyPrefix  = "directory:hod:"
)

func GetHODCacheKey(departmentID uuid.UUID) string {
	return HODCacheKeyPrefix + departmentID.String()
}

// CachedDirectory keeps approver lookups in redis. Absent approvers are not
// cached, so a newly appointed HOD becomes visible on the next request.
type CachedDirectory struct {
	next   Directory
	rdb    *redis.Client
	ttl    time.Duration
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewCachedDirectory(next Directory, rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) *CachedDirectory {
	l := zap.L().Named("directory.cache")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("directory.cache")
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CachedDirectory{next: next, rdb: rdb, ttl: ttl, sf: &singleflight.Group{}, logger: l}
}

func (d *CachedDirectory) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return d.next.GetUser(ctx, id)
}

func (d *CachedDirectory) FindHOD(ctx context.Context, departmentID uuid.UUID) (*User, error) {
	return d.lookup(ctx, GetHODCacheKey(departmentID), func() (*User, error) {
		return d.next.FindHOD(ctx, departmentID)
	})
}

func (d *CachedDirectory) FindHRHOD(ctx context.Context) (*User, error) {
	return d.lookup(ctx, HRHODCacheKey, func() (*User, error) {
		return d.next.FindHRHOD(ctx)
	})
}

func (d *CachedDirectory) FindSuperAdmin(ctx context.Context) (*User, error) {
	return d.lookup(ctx, SuperAdminCacheKey, func() (*User, error) {
		return d.next.FindSuperAdmin(ctx)
	})
}

func (d *CachedDirectory) lookup(ctx context.Context, key string, load func() (*User, error)) (*User, error) {
	if d.rdb != nil {
		cached, err := d.rdb.Get(ctx, key).Result()
		if err == nil {
			var u User
			if err := json.Unmarshal([]byte(cached), &u); err == nil {
				return &u, nil
			}
			d.logger.Warn("discarding undecodable cache entry", zap.String("key", key))
		} else if err != redis.Nil {
			d.logger.Warn("directory cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	v, err, _ := d.sf.Do(key, func() (interface{}, error) {
		u, err := load()
		if err != nil || u == nil {
			return u, err
		}

		if d.rdb != nil {
			if payload, err := json.Marshal(u); err == nil {
				if err := d.rdb.Set(ctx, key, payload, d.ttl).Err(); err != nil {
					d.logger.Warn("directory cache write failed", zap.String("key", key), zap.Error(err))
				}
			}
		}
		return u, nil
	})
	if err != nil {
		return nil, err
	}

	u, _ := v.(*User)
	return u, nil
}
