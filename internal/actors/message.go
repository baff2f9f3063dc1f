package actors

// NoID is the message id returned by a failed send. A successful send never
// assigns it; callers must check for it before registering a response.
const NoID uint64 = 0

// Message is a single queued message as delivered to a mailbox's dispatch.
type Message struct {
	// ID is assigned at enqueue time and is unique among in-flight messages
	// for its mailbox. NoID (0) is reserved as the send-failure sentinel.
	ID uint64

	// Topic identifies the logical message kind. The receiving context
	// routes on it via its bound handlers.
	Topic string

	// Payload is the message value, already copied into the receiving
	// context's value space by the owning context's Marshal hook.
	Payload any
}
