package sessionstore

import (
	"context"
	"encoding/json"
	e "resetme/internal/core/domain/errors"
	"resetme/internal/core/domain/resettoken"
	"resetme/internal/core/domain/session"
	"time"

	"github.com/go-redis/redis/v9"
)

const tokenKeyPrefix = "reset:token::"
const flashKeyPrefix = "reset:flash::"

// Redis keeps the per-session token slot and flash messages. Both carry a
// TTL so abandoned flows clean themselves up.
type Redis struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewRedis(redisClient *redis.Client, ttl time.Duration) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	return &Redis{redisClient: redisClient, ttl: ttl}
}

func (s *Redis) Put(ctx context.Context, id session.ID, t resettoken.Token) error {
	return s.redisClient.Set(ctx, tokenKeyPrefix+string(id), string(t), s.ttl).Err()
}

func (s *Redis) Get(ctx context.Context, id session.ID) (t resettoken.Token, ok bool, err error) {
	val, err := s.redisClient.Get(ctx, tokenKeyPrefix+string(id)).Result()
	if err == redis.Nil {
		return t, false, nil
	}
	if err != nil {
		return t, false, err
	}
	return resettoken.Token(val), true, nil
}

func (s *Redis) Clear(ctx context.Context, id session.ID) error {
	return s.redisClient.Del(ctx, tokenKeyPrefix+string(id)).Err()
}

func (s *Redis) Add(ctx context.Context, id session.ID, f session.Flash) error {
	encoded, err := json.Marshal(f)
	if err != nil {
		return err
	}
	key := flashKeyPrefix + string(id)
	_, err = s.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, encoded)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	return err
}

func (s *Redis) Pop(ctx context.Context, id session.ID) (flashes []session.Flash, err error) {
	key := flashKeyPrefix + string(id)
	var rangeCmd *redis.StringSliceCmd
	_, err = s.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		rangeCmd = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, raw := range rangeCmd.Val() {
		var f session.Flash
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			return nil, err
		}
		flashes = append(flashes, f)
	}
	return flashes, nil
}
