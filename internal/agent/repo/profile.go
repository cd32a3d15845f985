package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/gongdu300/localy/internal/agent/model"
	errx "github.com/gongdu300/localy/internal/core/error"
	logx "github.com/gongdu300/localy/pkg/logger"
)

// ErrProfileNotFound is returned when a user has no stored travel persona.
var ErrProfileNotFound = errors.New("profile not found")

// RedisProfileRepository stores travel personas as JSON blobs. Personas have
// no TTL; they persist until overwritten.
type RedisProfileRepository struct {
	rdb redis.Cmdable
}

func NewRedisProfileRepository(rdb redis.Cmdable) *RedisProfileRepository {
	return &RedisProfileRepository{rdb: rdb}
}

func (r *RedisProfileRepository) profileKey(userID string) string {
	return fmt.Sprintf("persona:%s", userID)
}

func (r *RedisProfileRepository) Get(ctx context.Context, userID string) (*model.UserPersona, error) {
	raw, err := r.rdb.Get(ctx, r.profileKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrProfileNotFound
		}
		logx.Error().Err(err).Str("user_id", userID).Msg("failed to load persona from redis")
		return nil, errx.WrapRedis(err)
	}

	var p model.UserPersona
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("unmarshal persona: %w", err)
	}
	return &p, nil
}

func (r *RedisProfileRepository) Save(ctx context.Context, persona *model.UserPersona) error {
	if persona == nil || persona.UserID == "" {
		return fmt.Errorf("persona user id is required")
	}
	b, err := json.Marshal(persona)
	if err != nil {
		return fmt.Errorf("marshal persona: %w", err)
	}
	if err := r.rdb.Set(ctx, r.profileKey(persona.UserID), b, 0).Err(); err != nil {
		logx.Error().Err(err).Str("user_id", persona.UserID).Msg("failed to save persona to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.ProfileRepository = (*RedisProfileRepository)(nil)
