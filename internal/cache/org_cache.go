package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/thavon/voice-lead-service/internal/domain"
	"github.com/thavon/voice-lead-service/internal/repository"
	"github.com/thavon/voice-lead-service/pkg/logger"
	"github.com/thavon/voice-lead-service/pkg/redis"
	"go.uber.org/zap"
)

// orgCacheTTL bounds staleness of tenant settings on the inbound call path.
// Settings updates invalidate eagerly; the TTL is a backstop.
const orgCacheTTL = 5 * time.Minute

// OrgLookupCache is a read-through cache over the organization-by-phone-number
// lookup that sits on the assistant-request critical path. A missing or broken
// cache degrades to a direct repository read, never to an error.
type OrgLookupCache struct {
	orgRepo      repository.OrganizationRepository
	redisService redis.RedisServiceInterface
}

// NewOrgLookupCache creates a new lookup cache. redisService may be nil, in
// which case every lookup goes straight to the repository.
func NewOrgLookupCache(orgRepo repository.OrganizationRepository, redisService redis.RedisServiceInterface) *OrgLookupCache {
	return &OrgLookupCache{
		orgRepo:      orgRepo,
		redisService: redisService,
	}
}

// GetByPhoneNumber resolves the tenant owning an inbound routing number.
// Exactly one backing lookup is performed on a cache miss.
func (c *OrgLookupCache) GetByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.Organization, error) {
	if c.redisService != nil {
		key := c.redisService.GenerateKey(redis.ORG_PHONE_LOOKUP, phoneNumber)
		if val, err := c.redisService.GetValue(ctx, key); err == nil {
			var org domain.Organization
			if err := json.Unmarshal([]byte(val), &org); err == nil {
				return &org, nil
			}
			logger.Base().Warn("dropping undecodable org cache entry", zap.String("key", key))
			_ = c.redisService.DelValue(ctx, key)
		} else if !errors.Is(err, redis.ErrKeyNotExist) {
			logger.Base().Warn("org cache read failed, falling back to database",
				zap.String("phone_number", phoneNumber),
				zap.Error(err),
			)
		}
	}

	org, err := c.orgRepo.GetByPhoneNumber(ctx, phoneNumber)
	if err != nil {
		return nil, err
	}

	if c.redisService != nil {
		if data, err := json.Marshal(org); err == nil {
			key := c.redisService.GenerateKey(redis.ORG_PHONE_LOOKUP, phoneNumber)
			if err := c.redisService.SetValue(ctx, key, string(data), orgCacheTTL); err != nil {
				logger.Base().Warn("org cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}

	return org, nil
}

// Invalidate removes the cache entry for a routing number after a settings
// update so the next inbound call sees fresh tenant configuration.
func (c *OrgLookupCache) Invalidate(ctx context.Context, phoneNumber string) {
	if c.redisService == nil || phoneNumber == "" {
		return
	}

	key := c.redisService.GenerateKey(redis.ORG_PHONE_LOOKUP, phoneNumber)
	if err := c.redisService.DelValue(ctx, key); err != nil {
		logger.Base().Warn("org cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}
