package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Cache is the read-through store services consult before the database
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// Cache key prefixes
const (
	donorListPrefix = "donors:"
	userListPrefix  = "admin:users:"
)

// invalidate drops every listing under prefixes. Failures are logged, stale pages expire with their TTL.
func invalidate(ctx context.Context, cache Cache, prefixes ...string) {
	for _, prefix := range prefixes {
		if err := cache.DeletePrefix(ctx, prefix); err != nil {
			logrus.WithFields(logrus.Fields{"prefix": prefix, "error": err.Error()}).Warn("Cache invalidation failed")
		}
	}
}
