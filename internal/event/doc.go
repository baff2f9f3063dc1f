// Package event defines the event bus and event types used to observe the
// messaging runtime. Events let an embedding host watch mailbox lifecycle
// and delivery activity (registration, closure, enqueues, drops, response
// resolution, drain passes) without the core packages depending on the host.
//
// The bus is synchronous: Publish invokes every matching handler on the
// caller's goroutine before returning, which keeps event ordering identical
// to the cooperative tick order of the runtime itself.
package event
