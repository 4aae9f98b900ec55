package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/2beens/trainerdash/internal/strava"
	"github.com/2beens/trainerdash/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	sessionKey = "trainerdash||strava-session"
	nonceSize  = 24
)

var (
	ErrNoSession      = errors.New("no strava session")
	ErrCorruptSession = errors.New("strava session cannot be decrypted")
)

// Repository persists the single dashboard user's Strava session.
type Repository interface {
	Load(ctx context.Context) (*strava.Session, error)
	Save(ctx context.Context, session *strava.Session) error
	Clear(ctx context.Context) error
}

// RedisRepository keeps the session in redis, sealed with nacl/secretbox.
type RedisRepository struct {
	redisClient *redis.Client
	key         [32]byte
	randReader  io.Reader
}

var _ Repository = (*RedisRepository)(nil)

func NewRedisRepository(redisClient *redis.Client, secret string) (*RedisRepository, error) {
	if secret == "" {
		return nil, errors.New("session secret not set")
	}
	return &RedisRepository{
		redisClient: redisClient,
		key:         sha256.Sum256([]byte(secret)),
		randReader:  rand.Reader,
	}, nil
}

func (r *RedisRepository) Load(ctx context.Context) (_ *strava.Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.session.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	cmd := r.redisClient.Get(ctx, sessionKey)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	session, err := r.open(cmd.Val())
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("athlete.id", session.AthleteID))

	return session, nil
}

func (r *RedisRepository) Save(ctx context.Context, session *strava.Session) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.session.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if session == nil {
		return errors.New("nil session")
	}
	span.SetAttributes(attribute.Int64("athlete.id", session.AthleteID))

	sealed, err := r.seal(session)
	if err != nil {
		return err
	}

	if err := r.redisClient.Set(ctx, sessionKey, sealed, 0).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}

	return nil
}

func (r *RedisRepository) Clear(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.session.clear")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := r.redisClient.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *RedisRepository) seal(session *strava.Session) (string, error) {
	sessionJson, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(r.randReader, nonce[:]); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := secretbox.Seal(nonce[:], sessionJson, &nonce, &r.key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (r *RedisRepository) open(encoded string) (*strava.Session, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(sealed) < nonceSize+secretbox.Overhead {
		return nil, ErrCorruptSession
	}

	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	sessionJson, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &r.key)
	if !ok {
		return nil, ErrCorruptSession
	}

	var session strava.Session
	if err := json.Unmarshal(sessionJson, &session); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSession, err)
	}

	return &session, nil
}

// MemoryRepository keeps the session in process memory. Used by the CLI when
// tokens come from flags, and in tests.
type MemoryRepository struct {
	mutex   sync.RWMutex
	session *strava.Session
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository(session *strava.Session) *MemoryRepository {
	return &MemoryRepository{session: session}
}

func (m *MemoryRepository) Load(_ context.Context) (*strava.Session, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.session == nil {
		return nil, ErrNoSession
	}
	s := *m.session
	return &s, nil
}

func (m *MemoryRepository) Save(_ context.Context, session *strava.Session) error {
	if session == nil {
		return errors.New("nil session")
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	s := *session
	m.session = &s
	return nil
}

func (m *MemoryRepository) Clear(_ context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.session = nil
	return nil
}
