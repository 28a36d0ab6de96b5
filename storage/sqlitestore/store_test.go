package sqlitestore_test

import (
	"path/filepath"
	"testing"

	crmerrors "github.com/jrsteele09/go-crm-workspace/internal/errors"
	"github.com/jrsteele09/go-crm-workspace/storage"
	"github.com/jrsteele09/go-crm-workspace/storage/sqlitestore"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "crm.db")

	s, err := sqlitestore.Open(path)
	require.NoError(t, err)

	_, ok, err := s.Get(storage.KeyAuthToken)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set(storage.KeyAuthToken, "a.b.c"))
	require.NoError(t, s.Set(storage.KeyAuthToken, "d.e.f"))

	v, ok, err := s.Get(storage.KeyAuthToken)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "d.e.f", v)

	require.NoError(t, s.Remove(storage.KeyAuthToken))
	require.NoError(t, s.Remove(storage.KeyAuthToken))

	_, ok, err = s.Get(storage.KeyAuthToken)
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, s.Close())
}

func TestStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crm.db")

	s, err := sqlitestore.Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(storage.KeyTabs, `[{"id":"customer-1"}]`))
	require.NoError(t, s.Close())

	s, err = sqlitestore.Open(path)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get(storage.KeyTabs)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"id":"customer-1"}]`, v)
}

func TestClosedStore(t *testing.T) {
	s, err := sqlitestore.Open(filepath.Join(t.TempDir(), "crm.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, _, err = s.Get(storage.KeyAuthToken)
	require.ErrorIs(t, err, crmerrors.ErrStorageClosed)
	require.ErrorIs(t, s.Set(storage.KeyAuthToken, "x"), crmerrors.ErrStorageClosed)
	require.ErrorIs(t, s.Remove(storage.KeyAuthToken), crmerrors.ErrStorageClosed)
}
