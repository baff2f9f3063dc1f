package actors

import "sync"

// Response is the one-shot future produced by an Ask. It starts unresolved;
// whichever side answers the ask resolves it exactly once, after which
// Received reports true and Value holds the reply.
//
// The asker owns the Response. The target mailbox keeps only a weak alias,
// so dropping the last reference abandons the ask: the mailbox-side entry
// is discarded the next time a drain reaches that message id.
type Response struct {
	mu       sync.Mutex
	received bool
	value    any
}

// newResponse creates an unresolved Response.
func newResponse() *Response {
	return &Response{}
}

// resolvedResponse creates a Response that is already resolved with the
// given value. Used when an ask cannot reach a live target: asking a gone
// actor resolves immediately rather than hanging forever.
func resolvedResponse(v any) *Response {
	return &Response{received: true, value: v}
}

// resolve records the reply value. The first resolution wins; subsequent
// attempts are ignored. Reports whether this call performed the resolution.
func (r *Response) resolve(v any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.received {
		return false
	}
	r.received = true
	r.value = v
	return true
}

// Received reports whether the response has been resolved.
func (r *Response) Received() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.received
}

// Value returns the reply value. It is only meaningful once Received
// reports true; before that it returns nil.
func (r *Response) Value() any {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.received {
		return nil
	}
	return r.value
}
