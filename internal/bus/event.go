package bus

import "time"

// Event is a notification published on the bus. Kind is dot-namespaced,
// e.g. "keys.changed".
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}
