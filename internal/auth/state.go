package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/trainerdash/internal/telemetry/tracing"
	"github.com/2beens/trainerdash/pkg"

	"github.com/go-redis/redis/v8"
)

const (
	DefaultStateTTL = 10 * time.Minute
	stateKeyPrefix  = "trainerdash||oauth-state||"
	stateLength     = 32
)

var ErrEmptyState = errors.New("empty oauth state")

// StateService issues single use oauth state values and verifies them on callback.
type StateService struct {
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for states (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewStateService(ttl time.Duration, redisClient *redis.Client) *StateService {
	if ttl <= 0 {
		ttl = DefaultStateTTL
	}
	return &StateService{
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

func (s *StateService) Issue(ctx context.Context) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.oauthState.issue")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	state, err := s.RandStringFunc(stateLength)
	if err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}

	if err := s.redisClient.Set(ctx, stateKeyPrefix+state, 1, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store state: %w", err)
	}

	return state, nil
}

// Consume reports whether state was issued and not yet used. A state is valid only once.
func (s *StateService) Consume(ctx context.Context, state string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.oauthState.consume")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if state == "" {
		return false, ErrEmptyState
	}

	deleted, err := s.redisClient.Del(ctx, stateKeyPrefix+state).Result()
	if err != nil {
		return false, fmt.Errorf("consume state: %w", err)
	}

	return deleted == 1, nil
}
