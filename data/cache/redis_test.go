package cache

import (
	"context"
	"testing"

	"github.com/KotFed0t/loi_bazaar_bot/config"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadsReportCursor(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	c := NewRedisCache(client, &config.Config{})
	ctx := context.Background()

	cursor, err := c.GetLeadsReportCursor(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), cursor)

	require.NoError(t, c.SetLeadsReportCursor(ctx, 17))

	cursor, err = c.GetLeadsReportCursor(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(17), cursor)
}

func TestLeadsReportCursor_Garbage(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	require.NoError(t, mr.Set(leadsReportCursorKey, "abc"))

	_, err := NewRedisCache(client, &config.Config{}).GetLeadsReportCursor(context.Background())
	assert.Error(t, err)
}
