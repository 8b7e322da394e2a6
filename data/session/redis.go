package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/KotFed0t/loi_bazaar_bot/config"
	"github.com/KotFed0t/loi_bazaar_bot/internal/model"
	"github.com/KotFed0t/loi_bazaar_bot/utils"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

var ErrNotFound = errors.New("session not found")

// RedisSession keeps one form session per chat. Every write refreshes the
// expiration, so an idle form disappears like a closed page.
type RedisSession struct {
	redis      *redis.Client
	expiration time.Duration
}

func NewRedisSession(redisClient *redis.Client, cfg *config.Config) *RedisSession {
	return &RedisSession{redis: redisClient, expiration: cfg.SessionExpiration}
}

func (s *RedisSession) GetSession(ctx context.Context, key string) (model.Session, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "RedisSession.GetSession"
	slog.Debug("GetSession start", slog.String("rqID", rqID), slog.String("op", op), slog.String("key", key))

	res, err := s.redis.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Session{}, ErrNotFound
		}
		slog.Error("failed on redis.Get", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()), slog.String("key", key))
		return model.Session{}, err
	}

	chatSession := model.Session{}
	err = json.Unmarshal([]byte(res), &chatSession)
	if err != nil {
		slog.Error(
			"can't unmarshall session",
			slog.String("rqID", rqID),
			slog.String("op", op),
			slog.String("err", err.Error()),
			slog.String("resultFromRedis", res),
		)
		return model.Session{}, errors.New("can't unmarshall session")
	}

	slog.Debug("GetSession completed", slog.String("rqID", rqID), slog.String("op", op))

	return chatSession, nil
}

func (s *RedisSession) SetSession(ctx context.Context, key string, chatSession model.Session) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "RedisSession.SetSession"
	slog.Debug("SetSession start", slog.String("rqID", rqID), slog.String("op", op), slog.String("key", key))

	sessionJson, err := json.Marshal(chatSession)
	if err != nil {
		slog.Error("can't marshall session", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return errors.New("can't marshall session")
	}

	err = s.redis.Set(ctx, keyPrefix+key, sessionJson, s.expiration).Err()
	if err != nil {
		slog.Error("failed on redis.Set", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()), slog.String("key", key))
		return err
	}

	slog.Debug("SetSession completed", slog.String("rqID", rqID), slog.String("op", op))

	return nil
}

func (s *RedisSession) DeleteSession(ctx context.Context, key string) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	err := s.redis.Del(ctx, keyPrefix+key).Err()
	if err != nil {
		slog.Error("failed on redis.Del", slog.String("rqID", rqID), slog.String("op", "RedisSession.DeleteSession"), slog.String("err", err.Error()))
	}
	return err
}
