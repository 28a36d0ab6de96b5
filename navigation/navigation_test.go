package navigation_test

import (
	"testing"

	"github.com/jrsteele09/go-crm-workspace/navigation"
	"github.com/stretchr/testify/require"
)

func TestCustomerIDFromPath(t *testing.T) {
	id, ok := navigation.CustomerIDFromPath("/customer/info/42")
	require.True(t, ok)
	require.Equal(t, int64(42), id)

	id, ok = navigation.CustomerIDFromPath("/customer/info/7/notes")
	require.True(t, ok)
	require.Equal(t, int64(7), id)

	_, ok = navigation.CustomerIDFromPath("/customer/info/abc")
	require.False(t, ok)

	_, ok = navigation.CustomerIDFromPath("/customer/search")
	require.False(t, ok)

	require.Equal(t, "/customer/info/42", navigation.CustomerInfoPath(42))
}

func TestIsEntryPath(t *testing.T) {
	require.True(t, navigation.IsEntryPath("/"))
	require.True(t, navigation.IsEntryPath("/login"))
	require.False(t, navigation.IsEntryPath("/customer/search"))
}

func TestHistory(t *testing.T) {
	h := navigation.NewHistory("")
	require.Equal(t, "/", h.Pathname())

	var seen []string
	unsubscribe := h.Subscribe(func(path string) { seen = append(seen, path) })

	h.Navigate("/customer/search")
	h.Navigate("/customer/info/1")
	h.Navigate("/customer/info/1")
	require.Equal(t, []string{"/customer/search", "/customer/info/1"}, seen)

	require.True(t, h.Back())
	require.Equal(t, "/customer/search", h.Pathname())
	require.True(t, h.Forward())
	require.Equal(t, "/customer/info/1", h.Pathname())
	require.False(t, h.Forward())

	h.Replace("/customer/info/2")
	require.True(t, h.Back())
	require.Equal(t, "/customer/search", h.Pathname())

	unsubscribe()
	h.Navigate("/login")
	require.Len(t, seen, 6)
}

func TestHistoryListenerMayNavigate(t *testing.T) {
	h := navigation.NewHistory("/")
	h.Subscribe(func(path string) {
		if path == "/old" {
			h.Replace("/new")
		}
	})

	h.Navigate("/old")
	require.Equal(t, "/new", h.Pathname())
}
