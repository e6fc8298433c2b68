// Package event provides a typed observer registry used to fan session events out
// to renderers, loggers and network adapters.
package event

// Listener receives dispatched events.
type Listener[E any] interface {
	OnEvent(e E)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc[E any] func(e E)

// OnEvent calls f(e).
func (f ListenerFunc[E]) OnEvent(e E) {
	f(e)
}

// Token identifies a subscription so it can be cancelled later.
type Token uint64

type subscription[E any] struct {
	token    Token
	listener Listener[E]
}

// Dispatcher delivers events of kind T to the listeners subscribed to that kind
// and to the listeners subscribed to every kind. Not safe for concurrent use;
// it is driven from the same goroutine that owns the session.
type Dispatcher[T comparable, E any] struct {
	listeners map[T][]subscription[E]
	all       []subscription[E]
	next      Token
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher[T comparable, E any]() *Dispatcher[T, E] {
	return &Dispatcher[T, E]{
		listeners: make(map[T][]subscription[E]),
	}
}

// Subscribe registers l for events of kind t.
func (d *Dispatcher[T, E]) Subscribe(t T, l Listener[E]) Token {
	d.next++
	d.listeners[t] = append(d.listeners[t], subscription[E]{token: d.next, listener: l})
	return d.next
}

// SubscribeAll registers l for every event kind.
func (d *Dispatcher[T, E]) SubscribeAll(l Listener[E]) Token {
	d.next++
	d.all = append(d.all, subscription[E]{token: d.next, listener: l})
	return d.next
}

// Unsubscribe removes the subscription identified by tok. Unknown tokens are ignored.
func (d *Dispatcher[T, E]) Unsubscribe(tok Token) {
	for t, subs := range d.listeners {
		if kept, ok := without(subs, tok); ok {
			d.listeners[t] = kept
			return
		}
	}
	if kept, ok := without(d.all, tok); ok {
		d.all = kept
	}
}

// Dispatch sends e to the listeners of kind t, then to the catch-all listeners.
func (d *Dispatcher[T, E]) Dispatch(t T, e E) {
	for _, s := range d.listeners[t] {
		s.listener.OnEvent(e)
	}
	for _, s := range d.all {
		s.listener.OnEvent(e)
	}
}

// Len returns the number of active subscriptions.
func (d *Dispatcher[T, E]) Len() int {
	n := len(d.all)
	for _, subs := range d.listeners {
		n += len(subs)
	}
	return n
}

func without[E any](subs []subscription[E], tok Token) ([]subscription[E], bool) {
	for i, s := range subs {
		if s.token == tok {
			return append(subs[:i:i], subs[i+1:]...), true
		}
	}
	return subs, false
}
