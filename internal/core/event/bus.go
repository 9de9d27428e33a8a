package event

import "reflect"

// Bus is a double-buffered event queue. Events emitted during tick N are
// delivered at the start of tick N+1, which keeps handler side effects out
// of the frame that produced the event. Single goroutine access; the game
// loop owns both emission and dispatch.
type Bus struct {
	front    map[reflect.Type][]any
	back     map[reflect.Type][]any
	handlers map[reflect.Type][]func(any)
}

func NewBus() *Bus {
	return &Bus{
		front:    make(map[reflect.Type][]any),
		back:     make(map[reflect.Type][]any),
		handlers: make(map[reflect.Type][]func(any)),
	}
}

func typeKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Emit queues an event for delivery on the next tick.
func Emit[T any](b *Bus, ev T) {
	k := typeKey[T]()
	b.back[k] = append(b.back[k], ev)
}

// Subscribe registers a handler for events of type T. The type assertion
// in the wrapper cannot fail: Emit and Subscribe key on the same type.
func Subscribe[T any](b *Bus, fn func(T)) {
	k := typeKey[T]()
	b.handlers[k] = append(b.handlers[k], func(ev any) { fn(ev.(T)) })
}

// SwapBuffers rotates back to front and clears the new back buffer.
// Called once at tick start, before DispatchAll.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front
	for k := range b.back {
		b.back[k] = b.back[k][:0]
	}
}

// DispatchAll delivers every front-buffer event to its handlers.
func (b *Bus) DispatchAll() {
	for k, events := range b.front {
		handlers := b.handlers[k]
		for _, ev := range events {
			for _, h := range handlers {
				h(ev)
			}
		}
	}
}
