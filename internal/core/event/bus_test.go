package event

import "testing"

type testEvent struct {
	n int
}

func TestBusDeliversNextTick(t *testing.T) {
	b := NewBus()

	var got []int
	Subscribe(b, func(ev testEvent) {
		got = append(got, ev.n)
	})

	Emit(b, testEvent{n: 1})
	Emit(b, testEvent{n: 2})

	// Nothing delivered within the emitting tick.
	b.DispatchAll()
	if len(got) != 0 {
		t.Fatalf("events delivered before buffer swap: %v", got)
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("expected [1 2], got %v", got)
	}

	// A second swap must not re-deliver.
	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 2 {
		t.Fatalf("events delivered twice: %v", got)
	}
}

func TestBusMultipleHandlers(t *testing.T) {
	b := NewBus()

	calls := 0
	Subscribe(b, func(testEvent) { calls++ })
	Subscribe(b, func(testEvent) { calls++ })

	Emit(b, testEvent{})
	b.SwapBuffers()
	b.DispatchAll()

	if calls != 2 {
		t.Fatalf("expected both handlers called, got %d", calls)
	}
}
