package actors

import (
	"sync"
	"weak"

	"github.com/troupelabs/troupe/internal/event"
	"github.com/troupelabs/troupe/internal/logging"
	"github.com/troupelabs/troupe/internal/util"
)

const (
	// DefaultMessagesPerTick is the default drain budget per mailbox.
	DefaultMessagesPerTick = 10

	// DefaultIDCeiling is the id value at which allocation wraps back to 1.
	// A trillion in-flight sends on one mailbox before a wrap is safe margin.
	DefaultIDCeiling uint64 = 1_000_000_000_000

	// payloadPreviewLen bounds payload renderings in debug log entries.
	payloadPreviewLen = 64
)

// Mailbox is a named, context-owned FIFO message queue plus a table of
// pending ask responses keyed by message id. Mailboxes are created only
// through Registry.Register and removed from the registry by Close.
//
// The queue is unbounded; back-pressure comes from the per-tick drain
// budget, not from a capacity cap.
type Mailbox struct {
	name string
	ctx  Context
	reg  *Registry
	log  *logging.Logger
	bus  *event.Bus

	mu        sync.Mutex
	closed    bool
	queue     []Message
	handlers  map[string]Handler
	pending   map[uint64]weak.Pointer[Response]
	nextID    uint64
	idCeiling uint64
	perTick   int
}

// newMailbox constructs a mailbox for Registry.Register.
func newMailbox(reg *Registry, ctx Context) *Mailbox {
	return &Mailbox{
		name:      ctx.Name(),
		ctx:       ctx,
		reg:       reg,
		log:       reg.log.WithMailbox(ctx.Name()),
		bus:       reg.bus,
		handlers:  make(map[string]Handler),
		pending:   make(map[uint64]weak.Pointer[Response]),
		idCeiling: reg.idCeiling,
		perTick:   reg.defaultPerTick,
	}
}

// Name returns the mailbox's registered name.
func (m *Mailbox) Name() string {
	return m.name
}

// Send marshals the payload into the owning context's value space, assigns
// the next message id and appends the message to the queue. It returns the
// assigned id, or NoID if the mailbox has been closed.
//
// Ids increase monotonically and wrap from the ceiling back to 1; NoID (0)
// is never assigned to a real message.
func (m *Mailbox) Send(topic string, payload any) uint64 {
	payload = m.ctx.Marshal(payload)

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		m.log.Debug("send on closed mailbox dropped", "topic", topic)
		if m.bus != nil {
			m.bus.Publish(event.NewMessageDroppedEvent(m.name, topic, "closed"))
		}
		return NoID
	}

	if m.nextID >= m.idCeiling {
		m.nextID = 1
	} else {
		m.nextID++
	}
	id := m.nextID

	m.queue = append(m.queue, Message{ID: id, Topic: topic, Payload: payload})
	m.mu.Unlock()

	m.log.Debug("message enqueued",
		"id", id,
		"topic", topic,
		"payload", util.PreviewValue(payload, payloadPreviewLen))
	if m.bus != nil {
		m.bus.Publish(event.NewMessageEnqueuedEvent(m.name, id, topic))
	}
	return id
}

// AddResponse installs a weak alias to the response under the given message
// id, to be resolved when that message is dispatched. It is a no-op for
// NoID. An existing entry for the id is overwritten: after an id wrap the
// newest ask wins and any ancient still-pending response is silently
// dropped, the same outcome as an abandoned ask.
func (m *Mailbox) AddResponse(id uint64, resp *Response) {
	if id == NoID || resp == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.pending[id] = weak.Make(resp)
}

// Bind registers the handler for a topic, replacing any previous binding.
// Handlers run during Drain on the host tick, in the owning context.
func (m *Mailbox) Bind(topic string, h Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if h == nil {
		delete(m.handlers, topic)
		return
	}
	m.handlers[topic] = h
}

// Unbind removes the handler for a topic. Messages for unbound topics are
// still drained; they simply produce no reply value.
func (m *Mailbox) Unbind(topic string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.handlers, topic)
}

// Receive pops the oldest queued message. It exists for contexts that run
// their own dispatch instead of binding handlers; such contexts pair it
// with Respond to answer asks.
func (m *Mailbox) Receive() (Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || len(m.queue) == 0 {
		return Message{}, false
	}
	msg := m.queue[0]
	m.queue = m.queue[1:]
	return msg, true
}

// Respond resolves the pending response registered under the message's id,
// if one is still alive. Responding to a message nobody asked about, or
// whose asker has abandoned the response, is a silent no-op.
func (m *Mailbox) Respond(msg Message, value any) {
	m.resolvePending(msg.ID, value)
}

// SetMessagesPerTick configures the drain budget for this mailbox. The new
// budget takes effect on the next drain pass. Non-positive values are
// ignored.
func (m *Mailbox) SetMessagesPerTick(n int) {
	if n <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.perTick = n
}

// MessagesPerTick returns the current drain budget.
func (m *Mailbox) MessagesPerTick() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.perTick
}

// Len returns the number of queued messages.
func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Closed reports whether the mailbox has been closed.
func (m *Mailbox) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Drain pops up to the per-tick budget of queued messages, oldest first,
// dispatches each to the handler bound for its topic, and resolves any
// matching pending response with the handler's reply. It stops early once
// the queue is empty and never blocks waiting for messages.
//
// Drain is invoked by the host tick (directly or via Registry.DrainAll),
// not by script callers.
func (m *Mailbox) Drain() {
	m.mu.Lock()
	budget := m.perTick
	m.mu.Unlock()

	processed := 0
	for processed < budget {
		m.mu.Lock()
		if m.closed || len(m.queue) == 0 {
			m.mu.Unlock()
			break
		}
		msg := m.queue[0]
		m.queue = m.queue[1:]
		h := m.handlers[msg.Topic]
		m.mu.Unlock()

		// Dispatch outside the lock: handlers may call Send, Respond or
		// Bind on this same mailbox.
		var reply any
		if h != nil {
			reply = h(msg.Payload)
		}
		m.resolvePending(msg.ID, reply)
		processed++
	}

	if processed > 0 {
		remaining := m.Len()
		m.log.Debug("drain pass completed", "processed", processed, "remaining", remaining)
		if m.bus != nil {
			m.bus.Publish(event.NewDrainCompletedEvent(m.name, processed, remaining))
		}
	}
}

// resolvePending resolves and removes the pending-response entry for an id.
// A dead weak alias (the asker discarded the Response) is discarded
// silently; either way the table entry is gone afterwards.
func (m *Mailbox) resolvePending(id uint64, value any) {
	if id == NoID {
		return
	}

	m.mu.Lock()
	wp, ok := m.pending[id]
	if ok {
		delete(m.pending, id)
	}
	m.mu.Unlock()

	if !ok {
		return
	}

	resp := wp.Value()
	if resp == nil {
		m.log.Debug("pending response abandoned by asker", "id", id)
		return
	}
	if resp.resolve(value) {
		m.log.Debug("response resolved", "id", id)
		if m.bus != nil {
			m.bus.Publish(event.NewResponseResolvedEvent(m.name, id))
		}
	}
}

// Close deregisters the mailbox and discards its queue and pending-response
// table. Stale Actor handles degrade afterwards: Tell becomes a silent
// no-op and Ask resolves immediately with an empty value. Close is
// idempotent.
func (m *Mailbox) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	dropped := len(m.queue)
	m.queue = nil
	m.pending = make(map[uint64]weak.Pointer[Response])
	m.mu.Unlock()

	m.reg.remove(m)

	m.log.Info("mailbox closed", "dropped", dropped)
	if m.bus != nil {
		m.bus.Publish(event.NewMailboxClosedEvent(m.name, dropped))
	}
}

// pendingLen returns the size of the pending-response table. Test hook.
func (m *Mailbox) pendingLen() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}
