// Package workspace keeps the set of customer tabs a signed-in user has open.
// Tabs are persisted only while a token is present and are wiped the moment
// the session ends.
package workspace

import (
	"context"
	"sync"
	"time"

	"github.com/jrsteele09/go-crm-workspace/customers"
	"github.com/jrsteele09/go-crm-workspace/internal/errors"
	"github.com/jrsteele09/go-crm-workspace/navigation"
	"github.com/jrsteele09/go-crm-workspace/storage"
	"github.com/rs/zerolog/log"
)

// ProfileFetcher loads the full profile of a customer.
type ProfileFetcher interface {
	GetCustomerProfile(ctx context.Context, customerID int64) (*customers.Profile, error)
}

type Manager struct {
	store    storage.Store
	profiles ProfileFetcher
	nav      navigation.Navigator
	nowFunc  func() time.Time

	lock     sync.Mutex
	token    string
	tabs     []*Tab
	activeID string
}

type ManagerOption func(*Manager)

func WithNowFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

// NewManager restores the tab set and active id from store. Missing or
// unreadable state starts an empty workspace. The manager holds no token
// until SetToken is called.
func NewManager(store storage.Store, profiles ProfileFetcher, nav navigation.Navigator, options ...ManagerOption) *Manager {
	m := &Manager{
		store:    store,
		profiles: profiles,
		nav:      nav,
	}

	for _, opt := range options {
		opt(m)
	}

	if m.nowFunc == nil {
		m.nowFunc = time.Now
	}

	m.load()
	return m
}

func (m *Manager) load() {
	raw, ok, err := m.store.Get(storage.KeyTabs)
	if err != nil {
		log.Error().Err(err).Msg("reading saved tabs")
		return
	}
	if !ok || raw == "" {
		return
	}

	tabs, err := decodeTabs(raw)
	if err != nil {
		log.Warn().Err(err).Msg("discarding unreadable saved tabs")
		return
	}
	m.tabs = tabs

	active, ok, err := m.store.Get(storage.KeyActiveTabID)
	if err != nil {
		log.Error().Err(err).Msg("reading saved active tab")
		return
	}
	if ok {
		m.activeID = active
	}
}

// SetToken is the only way the workspace learns about the session. An empty
// token clears every tab and both storage keys before returning. A token that
// appears where there was none persists the current state and, when the user
// sits on the root or login route, navigates back to the saved active tab.
func (m *Manager) SetToken(token string) {
	m.lock.Lock()
	hadToken := m.token != ""
	m.token = token

	if token == "" {
		m.tabs = nil
		m.activeID = ""
		m.removeStoredLocked()
		m.lock.Unlock()
		return
	}

	m.persistTabsLocked()
	m.persistActiveLocked()

	var restore string
	if !hadToken {
		if tab := m.findLocked(m.activeID); tab != nil {
			restore = navigation.CustomerInfoPath(tab.CustomerID)
		}
	}
	m.lock.Unlock()

	if restore != "" && navigation.IsEntryPath(m.nav.Pathname()) {
		log.Debug().Str("path", restore).Msg("restoring active tab")
		m.nav.Replace(restore)
	}
}

// SyncLocation makes the tab named by a customer detail path active, even
// when that tab is not open. Register it as a navigation listener.
func (m *Manager) SyncLocation(path string) {
	customerID, ok := navigation.CustomerIDFromPath(path)
	if !ok {
		return
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	id := TabID(customerID)
	if m.activeID == id {
		return
	}
	m.activeID = id
	m.persistActiveLocked()
}

// OpenTab opens light in a new tab, or activates it when already open. A
// failed profile fetch still opens the tab with the light data; the error is
// logged and not returned. Without a token the call does nothing.
func (m *Manager) OpenTab(ctx context.Context, light customers.LightCustomer) {
	id := TabID(light.CustomerID)

	m.lock.Lock()
	if m.token == "" {
		m.lock.Unlock()
		log.Warn().Int64("customerId", light.CustomerID).Msg("open tab without a session ignored")
		return
	}
	if m.findLocked(id) != nil {
		m.activateLocked(id)
		m.lock.Unlock()
		m.nav.Navigate(navigation.CustomerInfoPath(light.CustomerID))
		return
	}
	m.lock.Unlock()

	customer := customers.FromLight(light)
	profile, err := m.profiles.GetCustomerProfile(ctx, light.CustomerID)
	if err != nil {
		log.Error().Err(err).Int64("customerId", light.CustomerID).Msg("fetching customer profile, opening with summary data")
	} else {
		customer = customers.Merge(light, profile, m.nowFunc())
	}

	m.lock.Lock()
	if m.token == "" {
		m.lock.Unlock()
		log.Warn().Int64("customerId", light.CustomerID).Msg("session ended while opening tab")
		return
	}
	if m.findLocked(id) == nil {
		m.tabs = append(m.tabs, newTab(light, customer))
		m.persistTabsLocked()
	}
	m.activateLocked(id)
	m.lock.Unlock()

	m.nav.Navigate(navigation.CustomerInfoPath(light.CustomerID))
}

// SwitchTab activates an open tab. Unknown ids are ignored.
func (m *Manager) SwitchTab(tabID string) {
	m.lock.Lock()
	tab := m.findLocked(tabID)
	if tab == nil {
		m.lock.Unlock()
		return
	}
	m.activateLocked(tabID)
	path := navigation.CustomerInfoPath(tab.CustomerID)
	m.lock.Unlock()

	m.nav.Navigate(path)
}

// CloseTab removes a tab. Closing the active tab activates the last remaining
// tab, or leaves nothing active and returns to customer search.
func (m *Manager) CloseTab(tabID string) {
	m.lock.Lock()
	remaining := make([]*Tab, 0, len(m.tabs))
	for _, t := range m.tabs {
		if t.ID != tabID {
			remaining = append(remaining, t)
		}
	}
	removed := len(remaining) != len(m.tabs)
	m.tabs = remaining
	if removed {
		m.persistTabsLocked()
	}

	if tabID != m.activeID {
		m.lock.Unlock()
		return
	}

	target := navigation.RouteCustomerSearch
	fallback := ""
	if n := len(remaining); n > 0 {
		last := remaining[n-1]
		fallback = last.ID
		target = navigation.CustomerInfoPath(last.CustomerID)
	}
	m.activateLocked(fallback)
	m.lock.Unlock()

	m.nav.Navigate(target)
}

// ActiveTab returns a copy of the active tab, or nil.
func (m *Manager) ActiveTab() *Tab {
	m.lock.Lock()
	defer m.lock.Unlock()

	if tab := m.findLocked(m.activeID); tab != nil {
		return tab.clone()
	}
	return nil
}

func (m *Manager) ActiveTabID() string {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.activeID
}

// Tabs returns copies of the open tabs in insertion order.
func (m *Manager) Tabs() []*Tab {
	m.lock.Lock()
	defer m.lock.Unlock()

	out := make([]*Tab, 0, len(m.tabs))
	for _, t := range m.tabs {
		out = append(out, t.clone())
	}
	return out
}

// UpdateTabCustomer replaces the cached customer of every tab showing
// customerID. Reports whether any tab matched.
func (m *Manager) UpdateTabCustomer(customerID int64, customer customers.Customer) bool {
	m.lock.Lock()
	defer m.lock.Unlock()

	updated := false
	for i, t := range m.tabs {
		if t.CustomerID != customerID {
			continue
		}
		c := t.clone()
		c.Customer = customer
		m.tabs[i] = c
		updated = true
	}
	if updated {
		m.persistTabsLocked()
	}
	return updated
}

// RefreshTab re-fetches an open tab's profile and replaces the tab's customer
// with it. Unlike OpenTab, failures are returned to the caller.
func (m *Manager) RefreshTab(ctx context.Context, customerID int64) error {
	m.lock.Lock()
	tab := m.findLocked(TabID(customerID))
	var stored customers.LightCustomer
	if tab != nil {
		stored = tab.Customer.LightCustomer
		if stored.CustomerID == 0 {
			stored.CustomerID = customerID
		}
		if stored.CustType == "" {
			stored.CustType = tab.Type
		}
	}
	m.lock.Unlock()

	if tab == nil {
		return errors.Wrapf(errors.ErrNotFound, "[RefreshTab] tab for customer %d", customerID)
	}

	profile, err := m.profiles.GetCustomerProfile(ctx, customerID)
	if err != nil {
		return errors.Wrapf(err, "[RefreshTab] customer %d", customerID)
	}

	m.UpdateTabCustomer(customerID, customers.Merge(profile.Light(stored), profile, m.nowFunc()))
	return nil
}

func (m *Manager) findLocked(id string) *Tab {
	if id == "" {
		return nil
	}
	for _, t := range m.tabs {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (m *Manager) activateLocked(id string) {
	m.activeID = id
	m.persistActiveLocked()
}

func (m *Manager) persistTabsLocked() {
	if m.token == "" {
		return
	}
	raw, err := encodeTabs(m.tabs)
	if err != nil {
		log.Error().Err(err).Msg("encoding tabs")
		return
	}
	if err := m.store.Set(storage.KeyTabs, raw); err != nil {
		log.Error().Err(err).Msg("saving tabs")
	}
}

func (m *Manager) persistActiveLocked() {
	if m.token == "" {
		return
	}
	var err error
	if m.activeID == "" {
		err = m.store.Remove(storage.KeyActiveTabID)
	} else {
		err = m.store.Set(storage.KeyActiveTabID, m.activeID)
	}
	if err != nil {
		log.Error().Err(err).Msg("saving active tab")
	}
}

func (m *Manager) removeStoredLocked() {
	for _, key := range []string{storage.KeyTabs, storage.KeyActiveTabID} {
		if err := m.store.Remove(key); err != nil {
			log.Error().Err(err).Str("key", key).Msg("clearing workspace storage")
		}
	}
}
