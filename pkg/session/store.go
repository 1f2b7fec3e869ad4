// Package session manages the authenticated session: the persisted
// bearer token and editor preferences, plus the login/register/logout
// lifecycle around the API client.
package session

import "errors"

// Keys the session layer persists. Values are opaque strings; the
// editor flag and split ratio are stored in their string form.
const (
	KeyAccessToken    = "access_token"
	KeyEditorOpen     = "pipeline_editor_open"
	KeySplitViewRatio = "split_view_ratio"
)

// Store persists session state across restarts.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get retrieves a value.
	// Returns ErrNotFound if the key doesn't exist.
	Get(key string) (string, error)

	// Set stores a value, overwriting any existing one.
	Set(key, value string) error

	// Delete removes a key.
	// Returns nil if the key doesn't exist.
	Delete(key string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates a key doesn't exist.
	ErrNotFound = errors.New("session key not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("session store closed")
)
