package platform

import "testing"

func TestCenterDeliversToMatchingObservers(t *testing.T) {
	c := NewCenter()
	var shows, hides int
	c.Subscribe(EventKeyboardWillShow, func(ev Event) {
		shows++
		if ev.KeyboardHeight != 250 {
			t.Fatalf("unexpected height %v", ev.KeyboardHeight)
		}
	})
	c.Subscribe(EventKeyboardWillHide, func(Event) { hides++ })

	c.Post(Event{Type: EventKeyboardWillShow, KeyboardHeight: 250})
	c.Post(Event{Type: EventKeyboardWillShow, KeyboardHeight: 250})
	c.Post(Event{Type: EventResize})
	if shows != 2 || hides != 0 {
		t.Fatalf("unexpected deliveries: shows=%d hides=%d", shows, hides)
	}
}

func TestSubscriptionCancel(t *testing.T) {
	c := NewCenter()
	var calls int
	sub := c.Subscribe(EventKeyboardWillHide, func(Event) { calls++ })
	keep := c.Subscribe(EventKeyboardWillHide, func(Event) { calls += 10 })
	sub.Cancel()
	sub.Cancel()
	c.Post(Event{Type: EventKeyboardWillHide})
	if calls != 10 {
		t.Fatalf("cancelled observer still called: %d", calls)
	}
	keep.Cancel()
	if n := c.ObserverCount(EventKeyboardWillHide); n != 0 {
		t.Fatalf("expected no observers, got %d", n)
	}
}

func TestScopeCloseDeregistersAll(t *testing.T) {
	c := NewCenter()
	scope := c.NewScope()
	var calls int
	scope.Subscribe(EventKeyboardWillShow, func(Event) { calls++ })
	scope.Subscribe(EventKeyboardWillHide, func(Event) { calls++ })

	func() {
		defer scope.Close()
		c.Post(Event{Type: EventKeyboardWillShow})
	}()
	c.Post(Event{Type: EventKeyboardWillShow})
	c.Post(Event{Type: EventKeyboardWillHide})
	if calls != 1 {
		t.Fatalf("expected 1 delivery before close, got %d", calls)
	}
	if c.ObserverCount(EventKeyboardWillShow)+c.ObserverCount(EventKeyboardWillHide) != 0 {
		t.Fatalf("scope left observers registered")
	}
	scope.Close()
}

func TestHandlerMayCancelDuringPost(t *testing.T) {
	c := NewCenter()
	var sub *Subscription
	var calls int
	sub = c.Subscribe(EventClose, func(Event) {
		calls++
		sub.Cancel()
	})
	c.Post(Event{Type: EventClose})
	c.Post(Event{Type: EventClose})
	if calls != 1 {
		t.Fatalf("expected single delivery, got %d", calls)
	}
}
