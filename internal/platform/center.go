package platform

type Handler func(Event)

type observer struct {
	id      uint64
	handler Handler
}

// Center delivers posted events synchronously to every observer of the
// event's type, in registration order. It is used from the UI loop only.
type Center struct {
	nextID    uint64
	observers map[EventType][]observer
}

func NewCenter() *Center {
	return &Center{observers: map[EventType][]observer{}}
}

// Subscribe registers h for events of type t. The returned subscription must
// be cancelled to stop delivery.
func (c *Center) Subscribe(t EventType, h Handler) *Subscription {
	c.nextID++
	c.observers[t] = append(c.observers[t], observer{id: c.nextID, handler: h})
	return &Subscription{center: c, eventType: t, id: c.nextID}
}

func (c *Center) Post(ev Event) {
	list := c.observers[ev.Type]
	if len(list) == 0 {
		return
	}
	snapshot := make([]observer, len(list))
	copy(snapshot, list)
	for _, o := range snapshot {
		o.handler(ev)
	}
}

func (c *Center) ObserverCount(t EventType) int {
	return len(c.observers[t])
}

func (c *Center) remove(t EventType, id uint64) {
	list := c.observers[t]
	for i, o := range list {
		if o.id != id {
			continue
		}
		c.observers[t] = append(list[:i:i], list[i+1:]...)
		if len(c.observers[t]) == 0 {
			delete(c.observers, t)
		}
		return
	}
}

type Subscription struct {
	center    *Center
	eventType EventType
	id        uint64
}

// Cancel stops delivery. Calling it more than once is a no-op.
func (s *Subscription) Cancel() {
	if s == nil || s.center == nil {
		return
	}
	s.center.remove(s.eventType, s.id)
	s.center = nil
}

// Scope groups subscriptions that share a lifetime. Close cancels all of them;
// callers defer it so deregistration happens on every exit path.
type Scope struct {
	center *Center
	subs   []*Subscription
}

func (c *Center) NewScope() *Scope {
	return &Scope{center: c}
}

func (s *Scope) Subscribe(t EventType, h Handler) {
	s.subs = append(s.subs, s.center.Subscribe(t, h))
}

func (s *Scope) Close() {
	if s == nil {
		return
	}
	for _, sub := range s.subs {
		sub.Cancel()
	}
	s.subs = nil
}
