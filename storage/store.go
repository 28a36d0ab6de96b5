// Package storage is the durable client-side key/value state of the CRM
// client: the session token and the open workspace tabs.
package storage

// Keys used by the session and workspace managers.
const (
	KeyAuthToken   = "authToken"
	KeyTabs        = "crm_tabs"
	KeyActiveTabID = "crm_activeTabId"
)

// Store defines string key/value persistence. A missing key is reported with
// ok == false and a nil error.
type Store interface {
	// Get returns the value stored under key
	Get(key string) (value string, ok bool, err error)

	// Set creates or replaces the value stored under key
	Set(key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
}
