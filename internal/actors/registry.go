package actors

import (
	"sort"
	"strings"
	"sync"

	"github.com/troupelabs/troupe/internal/errors"
	"github.com/troupelabs/troupe/internal/event"
	"github.com/troupelabs/troupe/internal/logging"
)

// Registry is the process-wide name→mailbox directory. Names compare
// case-insensitively, since different interpreter contexts may spell the
// same logical actor with varying case.
//
// The registry never owns a mailbox's queue or bookkeeping: mailboxes
// register themselves on creation and deregister in Close. Membership is
// mutated only by Register and Close; iteration works on ordered snapshots,
// so a cursor obtained before a mutation can never dangle.
type Registry struct {
	log            *logging.Logger
	bus            *event.Bus
	defaultPerTick int
	idCeiling      uint64

	mu        sync.RWMutex
	mailboxes map[string]*Mailbox // folded name -> mailbox
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		log:            logging.NopLogger(),
		defaultPerTick: DefaultMessagesPerTick,
		idCeiling:      DefaultIDCeiling,
		mailboxes:      make(map[string]*Mailbox),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// foldName canonicalizes a mailbox name for case-insensitive comparison.
func foldName(name string) string {
	return strings.ToLower(name)
}

// Register creates and registers a mailbox for the given context. Exactly
// one mailbox may exist per context name at a time; a duplicate
// registration returns an AlreadyExistsError and leaves the existing
// mailbox untouched.
func (r *Registry) Register(ctx Context) (*Mailbox, error) {
	if ctx == nil || ctx.Name() == "" {
		return nil, errors.NewValidationError("context name is required").WithField("name")
	}

	key := foldName(ctx.Name())

	r.mu.Lock()
	if _, exists := r.mailboxes[key]; exists {
		r.mu.Unlock()
		return nil, errors.NewAlreadyExistsError("mailbox", ctx.Name())
	}
	mb := newMailbox(r, ctx)
	r.mailboxes[key] = mb
	r.mu.Unlock()

	r.log.Info("mailbox registered", "mailbox", mb.Name())
	if r.bus != nil {
		r.bus.Publish(event.NewMailboxRegisteredEvent(mb.Name(), ctx.Name()))
	}
	return mb, nil
}

// Exists reports whether a mailbox is registered under the name.
// Comparison is case-insensitive.
func (r *Registry) Exists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.mailboxes[foldName(name)]
	return ok
}

// Lookup returns a non-owning Actor handle for the named mailbox, or false
// if no mailbox is registered under the name. The handle holds its target
// weakly and re-resolves it on every Tell/Ask, so it remains safe to use
// after the target is closed.
func (r *Registry) Lookup(name string) (*Actor, bool) {
	r.mu.RLock()
	mb, ok := r.mailboxes[foldName(name)]
	r.mu.RUnlock()

	if !ok {
		return nil, false
	}
	return newActor(name, mb), true
}

// Next returns the registered name following prev in folded lexicographic
// order, implementing the stateless cursor protocol: Next("") yields the
// first name, and false means the end of the registry. A prev that has been
// removed (or never existed) resolves to its in-order successor, so
// concurrent mutation can skip or repeat names but never fault.
func (r *Registry) Next(prev string) (string, bool) {
	names := r.Names()
	if len(names) == 0 {
		return "", false
	}
	if prev == "" {
		return names[0], true
	}

	key := foldName(prev)
	for _, name := range names {
		if foldName(name) > key {
			return name, true
		}
	}
	return "", false
}

// Names returns a snapshot of registered mailbox names in folded
// lexicographic order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.mailboxes))
	for _, mb := range r.mailboxes {
		names = append(names, mb.Name())
	}
	r.mu.RUnlock()

	sort.Slice(names, func(i, j int) bool {
		return foldName(names[i]) < foldName(names[j])
	})
	return names
}

// SetDefaultMessagesPerTick changes the drain budget handed to mailboxes
// registered from now on, e.g. after a configuration reload. Existing
// mailboxes keep their budgets; the owning context adjusts those through
// Mailbox.SetMessagesPerTick. Non-positive values are ignored.
func (r *Registry) SetDefaultMessagesPerTick(n int) {
	if n <= 0 {
		return
	}
	r.mu.Lock()
	r.defaultPerTick = n
	r.mu.Unlock()
}

// Len returns the number of registered mailboxes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.mailboxes)
}

// DrainAll runs one drain pass over a snapshot of the registered mailboxes,
// in folded name order. This is the host tick entry point: each mailbox
// processes at most its per-tick budget, so a backlog on one mailbox cannot
// starve the host loop.
func (r *Registry) DrainAll() {
	r.mu.RLock()
	snapshot := make([]*Mailbox, 0, len(r.mailboxes))
	for _, mb := range r.mailboxes {
		snapshot = append(snapshot, mb)
	}
	r.mu.RUnlock()

	sort.Slice(snapshot, func(i, j int) bool {
		return foldName(snapshot[i].Name()) < foldName(snapshot[j].Name())
	})

	for _, mb := range snapshot {
		mb.Drain()
	}
}

// remove deregisters a mailbox. Called by Mailbox.Close; removes the entry
// only if it still maps to the same mailbox, so a name re-registered after
// a close is not clobbered by the old mailbox's teardown.
func (r *Registry) remove(mb *Mailbox) {
	key := foldName(mb.Name())

	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.mailboxes[key]; ok && current == mb {
		delete(r.mailboxes, key)
	}
}
