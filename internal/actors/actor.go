package actors

import "weak"

// Actor is a lightweight, non-owning handle to a target mailbox, obtained
// from Registry.Lookup. The target reference is weak and re-resolved on
// every call: a handle obtained before its target's closure safely becomes
// a no-op afterward instead of dangling.
//
// Messaging a gone actor is an expected, recoverable condition, so neither
// Tell nor Ask ever reports an error to the caller.
type Actor struct {
	name   string
	target weak.Pointer[Mailbox]
}

// newActor wraps a mailbox in a non-owning handle.
func newActor(name string, mb *Mailbox) *Actor {
	return &Actor{
		name:   name,
		target: weak.Make(mb),
	}
}

// Name returns the name the handle was looked up under. Display only; the
// target is resolved through the weak reference, not by name.
func (a *Actor) Name() string {
	return a.name
}

// resolve returns the target mailbox if it is still alive and open.
func (a *Actor) resolve() *Mailbox {
	mb := a.target.Value()
	if mb == nil || mb.Closed() {
		return nil
	}
	return mb
}

// Tell sends a fire-and-forget message to the target mailbox. If the target
// is gone or closed, Tell silently does nothing.
func (a *Actor) Tell(topic string, payload any) {
	mb := a.resolve()
	if mb == nil {
		return
	}
	mb.Send(topic, payload)
}

// Ask sends a message expecting a reply and returns a Response future. On a
// live target the Response is unresolved at return and resolves only once a
// later drain dispatches the message. On a gone or closed target — or if
// the send itself fails — Ask returns an already-resolved Response with an
// empty value, so asking a nonexistent actor never hangs forever.
func (a *Actor) Ask(topic string, payload any) *Response {
	mb := a.resolve()
	if mb == nil {
		return resolvedResponse(nil)
	}

	id := mb.Send(topic, payload)
	if id == NoID {
		return resolvedResponse(nil)
	}

	resp := newResponse()
	mb.AddResponse(id, resp)
	return resp
}
