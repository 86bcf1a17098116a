package transientx

import "sync/atomic"

// EventKind identifies a protocol transition reported to an Observer.
type EventKind int

const (
	// EventClone: a structure was cloned into a new or different context.
	EventClone EventKind = iota
	// EventScopeEnter: Modify re-entered an open primary context.
	EventScopeEnter
	// EventScopeExit: Commit left a nested scope without sealing.
	EventScopeExit
	// EventSeal: a primary context sealed its batch.
	EventSeal
	// EventViolation: a contract violation is about to be returned to the caller.
	EventViolation
)

func (k EventKind) String() string {
	switch k {
	case EventClone:
		return "clone"
	case EventScopeEnter:
		return "scope_enter"
	case EventScopeExit:
		return "scope_exit"
	case EventSeal:
		return "seal"
	case EventViolation:
		return "violation"
	default:
		return "unknown"
	}
}

// Event describes one protocol transition.
type Event struct {
	Kind EventKind
	// Op is the protocol function that produced the event, e.g. "Modify".
	Op string
	// Scope is the scope of the affected context after the transition.
	Scope int
	// Err is set for EventViolation.
	Err error
}

// Observer receives protocol events. Implementations must be cheap and must not
// call back into the protocol for the structure being reported.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

type observerHolder struct{ o Observer }

var observer atomic.Pointer[observerHolder]

// SetObserver installs o as the process-wide protocol observer and returns the
// previous one. Passing nil disables observation.
func SetObserver(o Observer) Observer {
	var next *observerHolder
	if o != nil {
		next = &observerHolder{o: o}
	}
	prev := observer.Swap(next)
	if prev == nil {
		return nil
	}
	return prev.o
}

func notify(e Event) {
	if h := observer.Load(); h != nil {
		h.o.Observe(e)
	}
}
