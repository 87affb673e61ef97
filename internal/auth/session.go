package auth

import (
	"context"
	"crypto/sha256"
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/galsan/jungang-heights-api/internal/persistence"
)

// CookieName is the admin session cookie.
const CookieName = "admin_session"

const sessionKeyPrefix = "admin_session:"

// SessionManager issues, validates and revokes admin session tokens.
type SessionManager interface {
	Issue(ctx context.Context) (string, error)
	Validate(ctx context.Context, token string) bool
	Revoke(ctx context.Context, token string) error
	TTL() time.Duration
}

// NewSessionManager selects the session backend. With a reachable Redis the
// sessions are random server-side ids that can be revoked individually;
// without one they are signed tokens whose key derives from the admin
// password, so rotating the password invalidates them all.
func NewSessionManager(redis *persistence.Redis, adminPassword string, ttl time.Duration, logger *zap.Logger) SessionManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	if redis != nil && redis.Client != nil {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := redis.Ping(pingCtx); err == nil {
			logger.Info("using redis-backed admin sessions")
			return &redisSessions{redis: redis, ttl: ttl}
		}
		logger.Warn("redis unreachable; falling back to stateless admin sessions")
	}

	return &statelessSessions{
		key: deriveSessionKey(adminPassword),
		ttl: ttl,
	}
}

// redisSessions stores one key per issued session id.
type redisSessions struct {
	redis *persistence.Redis
	ttl   time.Duration
}

func (s *redisSessions) Issue(ctx context.Context) (string, error) {
	token := uuid.NewString()
	if err := s.redis.Client.Set(ctx, sessionKeyPrefix+token, "1", s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *redisSessions) Validate(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	exists, err := s.redis.Client.Exists(ctx, sessionKeyPrefix+token).Result()
	return err == nil && exists > 0
}

func (s *redisSessions) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.redis.Client.Del(ctx, sessionKeyPrefix+token).Err()
}

func (s *redisSessions) TTL() time.Duration {
	return s.ttl
}

// statelessSessions signs expiring tokens with a password-derived key.
type statelessSessions struct {
	key []byte
	ttl time.Duration
}

func (s *statelessSessions) Issue(_ context.Context) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

func (s *statelessSessions) Validate(_ context.Context, token string) bool {
	if token == "" {
		return false
	}
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.key, nil
	})
	if err != nil || !parsed.Valid {
		return false
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	return ok && claims.Subject == "admin"
}

// Revoke is a no-op for stateless tokens; they lapse at expiry.
func (s *statelessSessions) Revoke(_ context.Context, _ string) error {
	return nil
}

func (s *statelessSessions) TTL() time.Duration {
	return s.ttl
}

func deriveSessionKey(adminPassword string) []byte {
	sum := sha256.Sum256([]byte("jungang-heights-session:" + adminPassword))
	return sum[:]
}
