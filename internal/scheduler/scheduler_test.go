package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KotFed0t/loi_bazaar_bot/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalJob_StartsImmediatelyWithRqID(t *testing.T) {
	s := New()
	defer s.Stop()

	rqIDs := make(chan string, 1)
	s.NewIntervalJob("collect", func(ctx context.Context) error {
		select {
		case rqIDs <- utils.GetRequestIDFromCtx(ctx):
		default:
		}
		return nil
	}, time.Hour, true)
	s.Start()

	assert.Equal(t, []string{"collect"}, s.Jobs())

	select {
	case rqID := <-rqIDs:
		assert.NotEmpty(t, rqID)
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run")
	}
}

func TestTaskWithRecover(t *testing.T) {
	s := New()
	defer s.Stop()

	require.NotPanics(t, func() {
		s.taskWithRecover(func(context.Context) error { panic("boom") }, "panicky")(context.Background())
	})
	require.NotPanics(t, func() {
		s.taskWithRecover(func(context.Context) error { return errors.New("failed") }, "failing")(context.Background())
	})
}
