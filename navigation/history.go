package navigation

import "sync"

// Navigator moves the client between routes.
type Navigator interface {
	// Navigate pushes path onto the history
	Navigate(path string)

	// Replace swaps the current entry for path
	Replace(path string)

	// Pathname returns the current path
	Pathname() string
}

// Listener is called with the new path after every change.
type Listener func(path string)

var _ Navigator = (*History)(nil)

// History is an in-memory browser-style history with back/forward stacks.
type History struct {
	lock      sync.Mutex
	current   string
	back      []string
	forward   []string
	listeners map[int]Listener
	nextID    int
}

func NewHistory(initial string) *History {
	if initial == "" {
		initial = RouteRoot
	}
	return &History{
		current:   initial,
		listeners: make(map[int]Listener),
	}
}

func (h *History) Navigate(path string) {
	h.lock.Lock()
	if path == h.current {
		h.lock.Unlock()
		return
	}
	h.back = append(h.back, h.current)
	h.forward = nil
	h.current = path
	h.lock.Unlock()

	h.notify(path)
}

func (h *History) Replace(path string) {
	h.lock.Lock()
	if path == h.current {
		h.lock.Unlock()
		return
	}
	h.current = path
	h.lock.Unlock()

	h.notify(path)
}

func (h *History) Pathname() string {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.current
}

// Back returns false when there is nothing to go back to.
func (h *History) Back() bool {
	h.lock.Lock()
	if len(h.back) == 0 {
		h.lock.Unlock()
		return false
	}
	h.forward = append(h.forward, h.current)
	h.current = h.back[len(h.back)-1]
	h.back = h.back[:len(h.back)-1]
	path := h.current
	h.lock.Unlock()

	h.notify(path)
	return true
}

// Forward returns false when there is nothing to go forward to.
func (h *History) Forward() bool {
	h.lock.Lock()
	if len(h.forward) == 0 {
		h.lock.Unlock()
		return false
	}
	h.back = append(h.back, h.current)
	h.current = h.forward[len(h.forward)-1]
	h.forward = h.forward[:len(h.forward)-1]
	path := h.current
	h.lock.Unlock()

	h.notify(path)
	return true
}

// Subscribe registers l and returns a function that removes it.
func (h *History) Subscribe(l Listener) (unsubscribe func()) {
	h.lock.Lock()
	defer h.lock.Unlock()

	id := h.nextID
	h.nextID++
	h.listeners[id] = l

	return func() {
		h.lock.Lock()
		defer h.lock.Unlock()
		delete(h.listeners, id)
	}
}

// notify runs listeners outside the lock so they may navigate themselves.
func (h *History) notify(path string) {
	h.lock.Lock()
	listeners := make([]Listener, 0, len(h.listeners))
	for i := 0; i < h.nextID; i++ {
		if l, ok := h.listeners[i]; ok {
			listeners = append(listeners, l)
		}
	}
	h.lock.Unlock()

	for _, l := range listeners {
		l(path)
	}
}
