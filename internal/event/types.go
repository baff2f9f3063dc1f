package event

import "time"

// Event is the interface that all events must implement.
// It provides a common way to identify and timestamp events.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "mailbox.registered", "drain.completed")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Mailbox Lifecycle Events
// -----------------------------------------------------------------------------

// MailboxRegisteredEvent is emitted when a script context registers its mailbox.
type MailboxRegisteredEvent struct {
	baseEvent
	Name    string // Mailbox name as registered
	Context string // Name of the owning script context
}

// NewMailboxRegisteredEvent creates a MailboxRegisteredEvent.
func NewMailboxRegisteredEvent(name, context string) MailboxRegisteredEvent {
	return MailboxRegisteredEvent{
		baseEvent: newBaseEvent("mailbox.registered"),
		Name:      name,
		Context:   context,
	}
}

// MailboxClosedEvent is emitted when a mailbox is closed and deregistered.
type MailboxClosedEvent struct {
	baseEvent
	Name    string // Mailbox name
	Dropped int    // Queued messages discarded at close
}

// NewMailboxClosedEvent creates a MailboxClosedEvent.
func NewMailboxClosedEvent(name string, dropped int) MailboxClosedEvent {
	return MailboxClosedEvent{
		baseEvent: newBaseEvent("mailbox.closed"),
		Name:      name,
		Dropped:   dropped,
	}
}

// -----------------------------------------------------------------------------
// Delivery Events
// -----------------------------------------------------------------------------

// MessageEnqueuedEvent is emitted after a message is accepted into a mailbox queue.
type MessageEnqueuedEvent struct {
	baseEvent
	Mailbox string // Target mailbox name
	ID      uint64 // Assigned message id
	Topic   string // Message topic
}

// NewMessageEnqueuedEvent creates a MessageEnqueuedEvent.
func NewMessageEnqueuedEvent(mailbox string, id uint64, topic string) MessageEnqueuedEvent {
	return MessageEnqueuedEvent{
		baseEvent: newBaseEvent("message.enqueued"),
		Mailbox:   mailbox,
		ID:        id,
		Topic:     topic,
	}
}

// MessageDroppedEvent is emitted when a send is refused, e.g. because the
// target mailbox has been closed.
type MessageDroppedEvent struct {
	baseEvent
	Mailbox string // Target mailbox name
	Topic   string // Message topic
	Reason  string // Why the message was dropped (e.g., "closed")
}

// NewMessageDroppedEvent creates a MessageDroppedEvent.
func NewMessageDroppedEvent(mailbox, topic, reason string) MessageDroppedEvent {
	return MessageDroppedEvent{
		baseEvent: newBaseEvent("message.dropped"),
		Mailbox:   mailbox,
		Topic:     topic,
		Reason:    reason,
	}
}

// ResponseResolvedEvent is emitted when a pending ask response is resolved.
type ResponseResolvedEvent struct {
	baseEvent
	Mailbox string // Mailbox that resolved the response
	ID      uint64 // Message id the response was registered under
}

// NewResponseResolvedEvent creates a ResponseResolvedEvent.
func NewResponseResolvedEvent(mailbox string, id uint64) ResponseResolvedEvent {
	return ResponseResolvedEvent{
		baseEvent: newBaseEvent("response.resolved"),
		Mailbox:   mailbox,
		ID:        id,
	}
}

// DrainCompletedEvent is emitted after a drain pass over a mailbox that
// processed at least one message.
type DrainCompletedEvent struct {
	baseEvent
	Mailbox   string // Drained mailbox name
	Processed int    // Messages dispatched during this pass
	Remaining int    // Messages still queued after this pass
}

// NewDrainCompletedEvent creates a DrainCompletedEvent.
func NewDrainCompletedEvent(mailbox string, processed, remaining int) DrainCompletedEvent {
	return DrainCompletedEvent{
		baseEvent: newBaseEvent("drain.completed"),
		Mailbox:   mailbox,
		Processed: processed,
		Remaining: remaining,
	}
}
