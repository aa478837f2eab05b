package lock

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	bonderrors "github.com/sl40168/bondetl/pkg/errors"
)

func TestTryLockRejectsSecondHolder(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bondetl.lock")

	first := New(path)
	require.NoError(t, first.TryLock())
	defer first.Unlock()

	second := New(path)
	err := second.TryLock()
	require.Error(t, err)

	var concurrentErr *bonderrors.ConcurrentExecutionError
	require.ErrorAs(t, err, &concurrentErr)
	require.Equal(t, path, concurrentErr.LockPath)
}

func TestUnlockReleasesForNextHolder(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bondetl.lock")

	first := New(path)
	require.NoError(t, first.TryLock())
	require.NoError(t, first.Unlock())

	second := New(path)
	require.NoError(t, second.TryLock())
	require.NoError(t, second.Unlock())
}
