package auth

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/fitscore/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
)

var _ Checker = (*LoginChecker)(nil)
var _ Checker = (*TestChecker)(nil)

type Checker interface {
	// SessionUser returns the user the token belongs to, ok is false for unknown or expired tokens.
	SessionUser(ctx context.Context, token string) (userID string, ok bool, err error)
}

type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
	now         func() time.Time
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
		now:         time.Now,
	}
}

func (c *LoginChecker) SessionUser(ctx context.Context, token string) (_ string, _ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.checker.session_user")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	value, err := c.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	session, err := decodeSession(token, value)
	if err != nil {
		return "", false, err
	}

	if session.Expired(c.ttl, c.now()) {
		return "", false, nil
	}

	return session.UserID, true, nil
}

// TestChecker maps tokens straight to user ids, used in tests and local development.
type TestChecker struct {
	Sessions map[string]string
}

func NewTestChecker() *TestChecker {
	return &TestChecker{
		Sessions: map[string]string{},
	}
}

func (c *TestChecker) SessionUser(_ context.Context, token string) (string, bool, error) {
	userID, ok := c.Sessions[token]
	return userID, ok, nil
}
