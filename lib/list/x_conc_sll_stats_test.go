package list

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benz9527/xlist/observability"
)

func TestXConcSll_StatsWithConsoleExporter(t *testing.T) {
	shutdown, err := observability.NewConsoleMetricsExporter(100*time.Millisecond, time.Second)
	require.NoError(t, err)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = shutdown(ctx)
	}()

	teardownCount := 0
	sll := NewThreadSafeLinkedList[int](
		func(v int) { teardownCount++ },
		WithXConcSllStats[int](),
	)

	for i := 0; i < 10; i++ {
		require.Equal(t, int64(i+1), sll.InsertFirst(i))
	}
	require.Equal(t, int64(9), sll.RemoveFirst())
	_, ok := sll.PopFirst()
	require.True(t, ok)
	require.Equal(t, int64(8), sll.Len())

	sll.Clear()
	// 1 indexed removal plus 8 cleared, the pop transfers ownership.
	assert.Equal(t, 9, teardownCount)
}
