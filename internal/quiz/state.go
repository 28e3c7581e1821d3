package quiz

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	defaultRoundTTL  = time.Hour
	defaultKeyPrefix = "trivia:quiz"
)

// touchLatest extends the alias TTL only while it still names the popped session.
var touchLatest = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("pexpire", KEYS[1], ARGV[2])
end
return 0
`)

// RedisStore keeps each round as a Redis set of question ids with a TTL.
// SPOP makes removal atomic across API instances.
type RedisStore struct {
	redis  *redis.Client
	logger zerolog.Logger
	ttl    time.Duration
	prefix string
}

var _ RoundStore = (*RedisStore)(nil)

// NewRedisStore creates a round store backed by Redis.
func NewRedisStore(client *redis.Client, ttl time.Duration, prefix string, logger zerolog.Logger) *RedisStore {
	if ttl <= 0 {
		ttl = defaultRoundTTL
	}
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisStore{
		redis:  client,
		logger: logger.With().Str("component", "quiz_redis_store").Logger(),
		ttl:    ttl,
		prefix: prefix,
	}
}

func (s *RedisStore) roundKey(sessionID string) string {
	return fmt.Sprintf("%s:round:%s", s.prefix, sessionID)
}

func (s *RedisStore) latestKey() string {
	return s.prefix + ":latest"
}

// Start replaces the round atomically. An empty id list leaves no key, which
// Pop reads as an exhausted round.
func (s *RedisStore) Start(ctx context.Context, sessionID string, ids []int32) error {
	key := s.roundKey(sessionID)
	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(ids) == 0 {
			return nil
		}
		members := make([]interface{}, len(ids))
		for i, id := range ids {
			members[i] = id
		}
		pipe.SAdd(ctx, key, members...)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("store round: %w", err)
	}
	return nil
}

// Pop removes a random member and refreshes the round TTL, along with the
// latest-round alias when it points at this session.
func (s *RedisStore) Pop(ctx context.Context, sessionID string) (int32, int, bool, error) {
	key := s.roundKey(sessionID)
	raw, err := s.redis.SPop(ctx, key).Result()
	if err == redis.Nil {
		return 0, 0, false, nil
	}
	if err != nil {
		return 0, 0, false, fmt.Errorf("pop question: %w", err)
	}

	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Str("member", raw).Msg("corrupted round member")
		return 0, 0, false, fmt.Errorf("decode round member %q: %w", raw, err)
	}

	var card *redis.IntCmd
	if _, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		card = pipe.SCard(ctx, key)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	}); err != nil {
		return 0, 0, false, fmt.Errorf("count remaining: %w", err)
	}

	if err := touchLatest.Run(ctx, s.redis, []string{s.latestKey()}, sessionID, s.ttl.Milliseconds()).Err(); err != nil {
		return 0, 0, false, fmt.Errorf("refresh latest round: %w", err)
	}

	return int32(id), int(card.Val()), true, nil
}

func (s *RedisStore) SetLatest(ctx context.Context, sessionID string) error {
	return s.redis.Set(ctx, s.latestKey(), sessionID, s.ttl).Err()
}

func (s *RedisStore) Latest(ctx context.Context) (string, error) {
	sessionID, err := s.redis.Get(ctx, s.latestKey()).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get latest round: %w", err)
	}
	return sessionID, nil
}
