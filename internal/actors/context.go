package actors

// Context is the boundary to the script runtime that owns a mailbox. The
// interpreter embedding itself lives outside this package; the messaging
// core only needs an identity and a way to copy values into the owning
// context's value space.
type Context interface {
	// Name returns the context's unique name, used as the mailbox's
	// registry identity. Comparison is case-insensitive.
	Name() string

	// Marshal copies a value into this context's value space. Payloads may
	// originate from a different context than the receiving mailbox's, so
	// every enqueue passes through Marshal to avoid cross-context aliasing.
	Marshal(v any) any
}

// Handler processes a message payload for one topic and returns the reply
// value, which resolves a pending ask response if one is registered for the
// message. Handlers bound to tell-only topics simply return nil.
type Handler func(payload any) any
