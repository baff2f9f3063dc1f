package actors

import (
	"github.com/troupelabs/troupe/internal/event"
	"github.com/troupelabs/troupe/internal/logging"
)

// Option configures a Registry.
type Option func(*Registry)

// WithLogger attaches a logger to the registry. Mailboxes created by
// Register derive child loggers stamped with their name.
func WithLogger(log *logging.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// WithBus attaches an event bus. When set, the registry and its mailboxes
// publish lifecycle and delivery events after the corresponding mutation.
func WithBus(bus *event.Bus) Option {
	return func(r *Registry) {
		r.bus = bus
	}
}

// WithMessagesPerTick sets the default drain budget given to newly
// registered mailboxes. Each mailbox's owning context may still change its
// own budget at any time via SetMessagesPerTick. Non-positive values are
// ignored.
func WithMessagesPerTick(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.defaultPerTick = n
		}
	}
}

// WithIDCeiling sets the message id value at which allocation wraps back
// to 1. Values below 2 are ignored. Intended for tests and embedders with
// unusual id-space requirements.
func WithIDCeiling(n uint64) Option {
	return func(r *Registry) {
		if n >= 2 {
			r.idCeiling = n
		}
	}
}
