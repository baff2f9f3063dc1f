// Package actors provides in-process actor-style messaging between embedded
// script contexts. Contexts register named mailboxes in a process-wide
// Registry; senders obtain lightweight Actor handles by name and exchange
// messages with a fire-and-forget Tell or a non-blocking request/response
// Ask whose Response resolves on a later host tick.
//
// # Architecture
//
// The subsystem is cooperative: nothing here blocks, spawns goroutines, or
// delivers a message inline. Send, Tell and Ask return immediately after
// enqueueing; the host's tick loop calls Registry.DrainAll (or each
// Mailbox.Drain), which pops a bounded number of messages per mailbox,
// dispatches them to handlers bound by the owning context, and resolves any
// pending ask responses.
//
// # Main Types
//
//   - [Registry]: process-wide, case-insensitive name→mailbox directory
//   - [Mailbox]: a context's owned FIFO queue plus pending-response table
//   - [Actor]: non-owning handle to a target mailbox, resolved per call
//   - [Response]: one-shot future produced by Ask
//   - [Message]: id, topic and payload as delivered to a handler
//   - [Context]: the boundary to the embedding script runtime
//
// # Ownership
//
// A Response is owned by the asking side; the target mailbox keeps only a
// weak alias keyed by message id. Abandoning a Response (dropping the last
// reference) therefore cannot keep mailbox bookkeeping alive: the next drain
// that reaches that id finds the alias dead and discards the entry. An Actor
// handle likewise holds its target weakly and degrades to silent no-ops once
// the target mailbox is closed.
//
// # Basic Usage
//
//	reg := actors.NewRegistry()
//	mb, err := reg.Register(ctx) // ctx is the owning script context
//	mb.Bind("greet", func(payload any) any {
//	    return "hello, " + payload.(string)
//	})
//
//	peer, ok := reg.Lookup("other")
//	if ok {
//	    resp := peer.Ask("greet", "world")
//	    // ... later, after a host tick has run reg.DrainAll():
//	    if resp.Received() {
//	        use(resp.Value())
//	    }
//	}
//
// # Thread Safety
//
// The host model is one logical thread per script context with a single
// shared tick, but every type here is internally locked and safe for
// concurrent use, so embedders with coarser threading do not corrupt state.
package actors
