package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker_Acquire(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	locker := NewLocalLocker()
	locker.now = func() time.Time { return now }

	release, acquired, err := locker.Acquire(ctx, "account:1", 30*time.Second)
	require.NoError(t, err)
	require.True(t, acquired)

	_, acquired, err = locker.Acquire(ctx, "account:1", 30*time.Second)
	require.NoError(t, err)
	assert.False(t, acquired, "segunda aquisição deve falhar enquanto o lease está ativo")

	_, acquired, err = locker.Acquire(ctx, "account:2", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, acquired, "chaves diferentes não competem")

	require.NoError(t, release(ctx))

	_, acquired, err = locker.Acquire(ctx, "account:1", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestLocalLocker_ExpiredLease(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	locker := NewLocalLocker()
	locker.now = func() time.Time { return now }

	staleRelease, acquired, err := locker.Acquire(ctx, "account:1", time.Second)
	require.NoError(t, err)
	require.True(t, acquired)

	now = now.Add(2 * time.Second)

	_, acquired, err = locker.Acquire(ctx, "account:1", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired, "lease expirado pode ser tomado")

	// O dono antigo não pode liberar o lease do novo dono
	require.NoError(t, staleRelease(ctx))

	_, acquired, err = locker.Acquire(ctx, "account:1", time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired)
}
