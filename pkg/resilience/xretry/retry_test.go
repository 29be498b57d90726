package xretry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestDo_SucceedsAfterRetries(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errBoom
		}
		return nil
	}, 3, time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ReturnsLastError(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return errBoom
	}, 2, time.Millisecond)

	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 2, calls)
}

func TestDo_SingleAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return errBoom
	}, 0, -time.Second)

	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, calls)
}

func TestDo_Unrecoverable(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return Unrecoverable(errBoom)
	}, 5, time.Millisecond)

	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, calls)
}

func TestDo_InvalidArguments(t *testing.T) {
	//nolint:staticcheck // 故意传 nil context
	assert.ErrorIs(t, Do(nil, func() error { return nil }, 1, 0), ErrNilContext)
	assert.ErrorIs(t, Do(context.Background(), nil, 1, 0), ErrNilFunc)
}

func TestDo_CancelledContextStillTriesOnce(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	require.NoError(t, Do(ctx, func() error {
		calls++
		return nil
	}, 3, time.Hour))
	assert.Equal(t, 1, calls)

	calls = 0
	err := Do(ctx, func() error {
		calls++
		return errBoom
	}, 3, time.Hour)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, calls, "取消后不再重试")
}
