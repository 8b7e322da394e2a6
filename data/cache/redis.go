package cache

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/KotFed0t/loi_bazaar_bot/config"
	"github.com/KotFed0t/loi_bazaar_bot/utils"
	"github.com/redis/go-redis/v9"
)

const leadsReportCursorKey = "leads_report:cursor"

type RedisCache struct {
	redis *redis.Client
	cfg   *config.Config
}

func NewRedisCache(redisClient *redis.Client, cfg *config.Config) *RedisCache {
	return &RedisCache{redis: redisClient, cfg: cfg}
}

// GetLeadsReportCursor returns the id of the last lead already sent in a
// report, 0 when no report was sent yet.
func (r *RedisCache) GetLeadsReportCursor(ctx context.Context) (int64, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug("GetLeadsReportCursor start", slog.String("rqID", rqID))

	res, err := r.redis.Get(ctx, leadsReportCursorKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		slog.Error("failed on redis.Get", slog.String("rqID", rqID), slog.String("err", err.Error()), slog.String("key", leadsReportCursorKey))
		return 0, err
	}

	cursor, err := strconv.ParseInt(res, 10, 64)
	if err != nil {
		slog.Error("can't parse leads report cursor", slog.String("rqID", rqID), slog.String("resultFromRedis", res))
		return 0, errors.New("can't parse leads report cursor")
	}

	slog.Debug("GetLeadsReportCursor finished", slog.String("rqID", rqID), slog.Int64("cursor", cursor))

	return cursor, nil
}

func (r *RedisCache) SetLeadsReportCursor(ctx context.Context, cursor int64) error {
	rqID := utils.GetRequestIDFromCtx(ctx)

	err := r.redis.Set(ctx, leadsReportCursorKey, cursor, 0).Err()
	if err != nil {
		slog.Error("failed on redis.Set", slog.String("rqID", rqID), slog.String("err", err.Error()), slog.String("key", leadsReportCursorKey))
		return err
	}

	slog.Debug("SetLeadsReportCursor completed", slog.String("rqID", rqID), slog.Int64("cursor", cursor))

	return nil
}
