package file

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "riot/accounts/1/password"

func TestStoreRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	testCases := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty", key: "", wantErr: "secret key is empty"},
		{name: "whitespace", key: "   ", wantErr: "secret key is empty"},
		{name: "absolute", key: "/absolute/path", wantErr: "invalid secret key"},
		{name: "traversal", key: "../escape", wantErr: "invalid secret key"},
		{name: "deep traversal", key: "../../secret", wantErr: "invalid secret key"},
		{name: "store key", key: keyFileName, wantErr: "invalid secret key"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.Put(context.Background(), tc.key, "value")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStorePutGetRoundTripEncryptsAndSetsPermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)
	want := "hunter2-but-longer"

	require.NoError(t, store.Put(context.Background(), testKey, want))

	got, err := store.Get(context.Background(), testKey)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	secretPath := filepath.Join(root, testKey+secretSuffix)
	info, err := os.Stat(secretPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(secretFileMod), info.Mode().Perm())

	raw, err := os.ReadFile(secretPath)
	require.NoError(t, err)
	assert.False(t, bytes.Contains(raw, []byte(want)), "secret must not be stored in clear text")

	keyInfo, err := os.Stat(filepath.Join(root, keyFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(secretFileMod), keyInfo.Mode().Perm())
}

func TestStoreGetMissingSecret(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	_, err := store.Get(context.Background(), testKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetRejectsCiphertextMovedToAnotherKey(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)
	require.NoError(t, store.Put(context.Background(), testKey, "secret"))

	other := "riot/accounts/2/password"
	require.NoError(t, os.MkdirAll(filepath.Dir(filepath.Join(root, other)), 0o700))
	require.NoError(t, os.Rename(filepath.Join(root, testKey+secretSuffix), filepath.Join(root, other+secretSuffix)))

	_, err := store.Get(context.Background(), other)
	require.ErrorContains(t, err, "decrypt file secret")
}

func TestStoreDeleteIsIdempotentWhenSecretMissing(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	require.NoError(t, store.Put(context.Background(), testKey, "secret"))
	require.NoError(t, store.Delete(context.Background(), testKey))
	require.NoError(t, store.Delete(context.Background(), testKey))

	_, err := store.Get(context.Background(), testKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}
