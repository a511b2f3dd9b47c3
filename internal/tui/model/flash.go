package model

import (
	"sync"
	"time"
)

// Flash holds one transient status message, e.g. "keyboard lost".
type Flash struct {
	mu      sync.RWMutex
	message string
	expires time.Time
}

// Set stores a flash message that is shown until the given time.
func (f *Flash) Set(msg string, until time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.message = msg
	f.expires = until
}

// Message returns the message current at now, or empty if expired.
func (f *Flash) Message(now time.Time) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if !now.Before(f.expires) {
		return ""
	}
	return f.message
}

// Clear drops the current message.
func (f *Flash) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.message = ""
	f.expires = time.Time{}
}
