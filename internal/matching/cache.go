package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/greensweep/backend/internal/common/logger"
)

// cachedService is a read-through cache in front of the matching engine.
// Scoring is a pure function of its inputs, so a short-TTL stale result is
// safe to serve; cache failures always degrade to a fresh computation.
type cachedService struct {
	inner  Service
	client *redis.Client
	ttl    time.Duration
	log    logger.Logger
}

func NewCachedService(inner Service, client *redis.Client, ttl time.Duration, log logger.Logger) Service {
	return &cachedService{
		inner:  inner,
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

func (c *cachedService) MatchOpportunitiesForVolunteer(ctx context.Context, volunteerID string, limit int) ([]*OpportunityMatch, error) {
	key := fmt.Sprintf("matching:o4v:%s:%d", volunteerID, limit)

	var cached []*OpportunityMatch
	if c.lookup(ctx, key, "opportunities_for_volunteer", &cached) {
		return cached, nil
	}

	matches, err := c.inner.MatchOpportunitiesForVolunteer(ctx, volunteerID, limit)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, matches)
	return matches, nil
}

func (c *cachedService) MatchVolunteersForOpportunity(ctx context.Context, opportunityID string, limit int) ([]*VolunteerMatch, error) {
	key := fmt.Sprintf("matching:v4o:%s:%d", opportunityID, limit)

	var cached []*VolunteerMatch
	if c.lookup(ctx, key, "volunteers_for_opportunity", &cached) {
		return cached, nil
	}

	matches, err := c.inner.MatchVolunteersForOpportunity(ctx, opportunityID, limit)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, matches)
	return matches, nil
}

func (c *cachedService) lookup(ctx context.Context, key, direction string, dest interface{}) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.WithError(err).Warn("match cache lookup failed", map[string]interface{}{"key": key})
		}
		recordCacheResult(direction, "miss")
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.log.WithError(err).Warn("match cache entry corrupt", map[string]interface{}{"key": key})
		recordCacheResult(direction, "miss")
		return false
	}

	recordCacheResult(direction, "hit")
	return true
}

func (c *cachedService) store(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.WithError(err).Warn("match cache store failed", map[string]interface{}{"key": key})
	}
}
