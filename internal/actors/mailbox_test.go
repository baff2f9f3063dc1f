package actors

import (
	"fmt"
	"testing"
)

// testContext is a minimal Context for tests. Marshal is the identity
// unless marshal is set.
type testContext struct {
	name    string
	marshal func(any) any
}

func (c *testContext) Name() string { return c.name }

func (c *testContext) Marshal(v any) any {
	if c.marshal != nil {
		return c.marshal(v)
	}
	return v
}

func newTestMailbox(t *testing.T, name string, opts ...Option) *Mailbox {
	t.Helper()

	reg := NewRegistry(opts...)
	mb, err := reg.Register(&testContext{name: name})
	if err != nil {
		t.Fatalf("Register(%q) failed: %v", name, err)
	}
	return mb
}

func TestMailbox_SendAssignsMonotonicIDs(t *testing.T) {
	mb := newTestMailbox(t, "ids")

	for want := uint64(1); want <= 5; want++ {
		got := mb.Send("topic", nil)
		if got != want {
			t.Errorf("Send %d: expected id %d, got %d", want, want, got)
		}
	}
}

func TestMailbox_SendNeverAssignsZero(t *testing.T) {
	mb := newTestMailbox(t, "wrap", WithIDCeiling(3))

	want := []uint64{1, 2, 3, 1, 2, 3, 1}
	for i, w := range want {
		got := mb.Send("topic", nil)
		if got != w {
			t.Errorf("Send %d: expected id %d, got %d", i+1, w, got)
		}
		if got == NoID {
			t.Fatalf("Send %d: assigned the reserved failure id", i+1)
		}
	}
}

func TestMailbox_SendOnClosedReturnsNoID(t *testing.T) {
	mb := newTestMailbox(t, "closing")
	mb.Close()

	if got := mb.Send("topic", "payload"); got != NoID {
		t.Errorf("Send on closed mailbox: expected NoID, got %d", got)
	}
	if mb.Len() != 0 {
		t.Errorf("Closed mailbox should not queue messages, got %d", mb.Len())
	}
}

func TestMailbox_SendMarshalsPayload(t *testing.T) {
	reg := NewRegistry()
	var marshaled []any
	ctx := &testContext{
		name: "marshaling",
		marshal: func(v any) any {
			marshaled = append(marshaled, v)
			return fmt.Sprintf("copy(%v)", v)
		},
	}
	mb, err := reg.Register(ctx)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	mb.Send("topic", "original")

	if len(marshaled) != 1 || marshaled[0] != "original" {
		t.Fatalf("Expected Marshal to see the original payload, got %v", marshaled)
	}

	msg, ok := mb.Receive()
	if !ok {
		t.Fatal("Receive should return the queued message")
	}
	if msg.Payload != "copy(original)" {
		t.Errorf("Expected marshaled payload, got %v", msg.Payload)
	}
}

func TestMailbox_ReceiveIsFIFO(t *testing.T) {
	mb := newTestMailbox(t, "fifo")

	for i := 1; i <= 3; i++ {
		mb.Send("topic", i)
	}

	for want := 1; want <= 3; want++ {
		msg, ok := mb.Receive()
		if !ok {
			t.Fatalf("Receive %d: expected a message", want)
		}
		if msg.Payload != want {
			t.Errorf("Receive %d: expected payload %d, got %v", want, want, msg.Payload)
		}
	}

	if _, ok := mb.Receive(); ok {
		t.Error("Receive on empty queue should report false")
	}
}

func TestMailbox_DrainDispatchesToBoundHandler(t *testing.T) {
	mb := newTestMailbox(t, "dispatch")

	var got []any
	mb.Bind("greet", func(payload any) any {
		got = append(got, payload)
		return nil
	})

	mb.Send("greet", "hello")
	mb.Send("greet", "world")
	mb.Drain()

	if len(got) != 2 || got[0] != "hello" || got[1] != "world" {
		t.Errorf("Expected handler to see [hello world] in order, got %v", got)
	}
	if mb.Len() != 0 {
		t.Errorf("Expected empty queue after drain, got %d", mb.Len())
	}
}

func TestMailbox_DrainRespectsBudget(t *testing.T) {
	mb := newTestMailbox(t, "budget", WithMessagesPerTick(2))

	processed := 0
	mb.Bind("work", func(payload any) any {
		processed++
		return nil
	})

	mb.Send("work", 1)
	mb.Send("work", 2)
	mb.Send("work", 3)

	mb.Drain()
	if processed != 2 {
		t.Errorf("First drain: expected 2 processed, got %d", processed)
	}
	if mb.Len() != 1 {
		t.Errorf("First drain: expected 1 remaining, got %d", mb.Len())
	}

	mb.Drain()
	if processed != 3 {
		t.Errorf("Second drain: expected 3 processed, got %d", processed)
	}
	if mb.Len() != 0 {
		t.Errorf("Second drain: expected empty queue, got %d", mb.Len())
	}
}

func TestMailbox_DrainUnboundTopic(t *testing.T) {
	mb := newTestMailbox(t, "unbound")

	mb.Send("nobody-home", "payload")
	mb.Drain()

	if mb.Len() != 0 {
		t.Errorf("Unbound messages should still be consumed, got %d queued", mb.Len())
	}
}

func TestMailbox_SetMessagesPerTick(t *testing.T) {
	mb := newTestMailbox(t, "tunable")

	if got := mb.MessagesPerTick(); got != DefaultMessagesPerTick {
		t.Errorf("Expected default budget %d, got %d", DefaultMessagesPerTick, got)
	}

	mb.SetMessagesPerTick(1)
	if got := mb.MessagesPerTick(); got != 1 {
		t.Errorf("Expected budget 1, got %d", got)
	}

	mb.SetMessagesPerTick(0)
	mb.SetMessagesPerTick(-5)
	if got := mb.MessagesPerTick(); got != 1 {
		t.Errorf("Non-positive budgets should be ignored, got %d", got)
	}
}

func TestMailbox_HandlerMaySendDuringDrain(t *testing.T) {
	mb := newTestMailbox(t, "reentrant", WithMessagesPerTick(1))

	var order []string
	mb.Bind("first", func(payload any) any {
		order = append(order, "first")
		mb.Send("second", nil)
		return nil
	})
	mb.Bind("second", func(payload any) any {
		order = append(order, "second")
		return nil
	})

	mb.Send("first", nil)
	mb.Drain()
	mb.Drain()

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("Expected [first second], got %v", order)
	}
}

func TestMailbox_RespondResolvesPendingResponse(t *testing.T) {
	mb := newTestMailbox(t, "manual")

	id := mb.Send("query", "state?")
	resp := newResponse()
	mb.AddResponse(id, resp)

	msg, ok := mb.Receive()
	if !ok {
		t.Fatal("Receive should return the queued message")
	}
	mb.Respond(msg, "running")

	if !resp.Received() {
		t.Fatal("Respond should resolve the pending response")
	}
	if resp.Value() != "running" {
		t.Errorf("Expected value 'running', got %v", resp.Value())
	}
	if mb.pendingLen() != 0 {
		t.Errorf("Expected empty pending table, got %d", mb.pendingLen())
	}
}

func TestMailbox_RespondWithoutPendingIsNoOp(t *testing.T) {
	mb := newTestMailbox(t, "nopending")

	id := mb.Send("notice", nil)
	msg, _ := mb.Receive()
	if msg.ID != id {
		t.Fatalf("Expected message id %d, got %d", id, msg.ID)
	}

	// Nobody asked; this must not panic or misbehave.
	mb.Respond(msg, "unwanted")
}

func TestMailbox_AddResponseIgnoresNoID(t *testing.T) {
	mb := newTestMailbox(t, "sentinel")

	mb.AddResponse(NoID, newResponse())
	if mb.pendingLen() != 0 {
		t.Errorf("AddResponse(NoID) should be a no-op, got %d pending", mb.pendingLen())
	}
}

func TestMailbox_AddResponseOverwrites(t *testing.T) {
	mb := newTestMailbox(t, "overwrite")

	id := mb.Send("ask", nil)
	stale := newResponse()
	fresh := newResponse()
	mb.AddResponse(id, stale)
	mb.AddResponse(id, fresh)

	mb.resolvePending(id, "answer")

	if stale.Received() {
		t.Error("Overwritten response should never resolve")
	}
	if !fresh.Received() || fresh.Value() != "answer" {
		t.Errorf("Latest response should win, received=%v value=%v",
			fresh.Received(), fresh.Value())
	}
}

func TestMailbox_UnbindStopsDispatch(t *testing.T) {
	mb := newTestMailbox(t, "unbinding")

	calls := 0
	mb.Bind("topic", func(payload any) any {
		calls++
		return nil
	})
	mb.Unbind("topic")

	mb.Send("topic", nil)
	mb.Drain()

	if calls != 0 {
		t.Errorf("Unbound handler should not run, got %d calls", calls)
	}
	if mb.Len() != 0 {
		t.Errorf("Messages for unbound topics should still drain, got %d queued", mb.Len())
	}
}

func TestMailbox_CloseIsIdempotent(t *testing.T) {
	mb := newTestMailbox(t, "twice")

	mb.Send("topic", nil)
	mb.Close()
	mb.Close()

	if !mb.Closed() {
		t.Error("Mailbox should report closed")
	}
	if mb.Len() != 0 {
		t.Errorf("Close should discard the queue, got %d", mb.Len())
	}
}

func TestMailbox_CloseDiscardsPending(t *testing.T) {
	mb := newTestMailbox(t, "pendingclose")

	id := mb.Send("ask", nil)
	resp := newResponse()
	mb.AddResponse(id, resp)

	mb.Close()

	if mb.pendingLen() != 0 {
		t.Errorf("Close should discard pending responses, got %d", mb.pendingLen())
	}
	if resp.Received() {
		t.Error("Close must not resolve outstanding responses")
	}
}

func TestMailbox_DrainOnClosedIsNoOp(t *testing.T) {
	mb := newTestMailbox(t, "drainclosed")

	calls := 0
	mb.Bind("topic", func(payload any) any {
		calls++
		return nil
	})
	mb.Send("topic", nil)
	mb.Close()
	mb.Drain()

	if calls != 0 {
		t.Errorf("Drain after close should dispatch nothing, got %d calls", calls)
	}
}
