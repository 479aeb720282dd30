package throttle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThrottle_BurstAllowed(t *testing.T) {
	th := New(5, time.Second)

	// The full burst is admitted immediately.
	for i := 0; i < 5; i++ {
		assert.True(t, th.Allow(), "call %d should be admitted", i)
	}
	// The sixth call exceeds the burst.
	assert.False(t, th.Allow())
}

func TestThrottle_WaitRespectsContext(t *testing.T) {
	th := New(1, time.Hour)
	require.NoError(t, th.Wait(context.Background()))

	// The bucket is drained; a cancelled context must not block.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := th.Wait(ctx)
	assert.Error(t, err)
}

func TestThrottle_Refills(t *testing.T) {
	th := New(2, 40*time.Millisecond)

	assert.True(t, th.Allow())
	assert.True(t, th.Allow())
	assert.False(t, th.Allow())

	// One token refills every interval/batch.
	time.Sleep(30 * time.Millisecond)
	assert.True(t, th.Allow())
}

func TestNew_Defaults(t *testing.T) {
	th := New(0, 0)
	for i := 0; i < DefaultBatchSize; i++ {
		assert.True(t, th.Allow())
	}
	assert.False(t, th.Allow())
}
