package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/2beens/fitxp/internal/calendar"

	"github.com/go-redis/redis/v8"
)

// LoginChecker checks redis sessions by id.
type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
	clock       calendar.Clock
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client, clock calendar.Clock) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
		clock:       clock,
	}
}

func (c *LoginChecker) IsLogged(ctx context.Context, sessionID string) (bool, error) {
	cmd := c.redisClient.Get(ctx, sessionKeyPrefix+sessionID)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	createdAtUnix, err := strconv.ParseInt(cmd.Val(), 10, 64)
	if err != nil {
		return false, err
	}

	createdAt := time.Unix(createdAtUnix, 0)
	if c.clock.Now().Sub(createdAt) > c.ttl {
		return false, nil
	}
	return true, nil
}

// LoginTestChecker keeps sessions in a map, used where no redis is around.
type LoginTestChecker struct {
	LoggedSessions map[string]bool
}

func NewLoginTestChecker() *LoginTestChecker {
	return &LoginTestChecker{
		LoggedSessions: map[string]bool{},
	}
}

func (c *LoginTestChecker) IsLogged(_ context.Context, sessionID string) (bool, error) {
	return c.LoggedSessions[sessionID], nil
}
