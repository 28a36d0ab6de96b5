package sealed_test

import (
	"testing"

	"github.com/jrsteele09/go-crm-workspace/storage"
	"github.com/jrsteele09/go-crm-workspace/storage/sealed"
	"github.com/jrsteele09/go-crm-workspace/storage/storefake"
	"github.com/stretchr/testify/require"
)

func TestSealedRoundTrip(t *testing.T) {
	inner := storefake.NewFakeStore()
	s, err := sealed.New(inner, "correct horse")
	require.NoError(t, err)

	require.NoError(t, s.Set(storage.KeyAuthToken, "a.b.c"))

	raw, ok, err := inner.Get(storage.KeyAuthToken)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotContains(t, raw, "a.b.c")

	v, ok, err := s.Get(storage.KeyAuthToken)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a.b.c", v)

	require.NoError(t, s.Remove(storage.KeyAuthToken))
	require.False(t, inner.Has(storage.KeyAuthToken))
}

func TestSealedWrongSecretReadsAsAbsent(t *testing.T) {
	inner := storefake.NewFakeStore()
	s, err := sealed.New(inner, "one")
	require.NoError(t, err)
	require.NoError(t, s.Set(storage.KeyTabs, "[]"))

	other, err := sealed.New(inner, "two")
	require.NoError(t, err)
	_, ok, err := other.Get(storage.KeyTabs)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSealedValueBoundToKey(t *testing.T) {
	inner := storefake.NewFakeStore()
	s, err := sealed.New(inner, "secret")
	require.NoError(t, err)
	require.NoError(t, s.Set(storage.KeyTabs, "[]"))

	raw, _, _ := inner.Get(storage.KeyTabs)
	require.NoError(t, inner.Set(storage.KeyActiveTabID, raw))

	_, ok, err := s.Get(storage.KeyActiveTabID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSealedPlaintextReadsAsAbsent(t *testing.T) {
	inner := storefake.NewFakeStore()
	require.NoError(t, inner.Set(storage.KeyAuthToken, "not-base64!"))

	s, err := sealed.New(inner, "secret")
	require.NoError(t, err)
	_, ok, err := s.Get(storage.KeyAuthToken)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSealedRequiresSecret(t *testing.T) {
	_, err := sealed.New(storefake.NewFakeStore(), "")
	require.Error(t, err)
}
