// internal/event/event.go
package event

import (
	"sync"

	"dragon-hunter/internal/logging"
)

// EventType — тип события
type EventType string

// Event — структура события
type Event struct {
	Type EventType
	Data interface{} // Данные события, если нужны
}

// Handler — функция-обработчик события
type Handler func(Event)

// Listener — интерфейс для подписчиков на события
type Listener interface {
	OnEvent(event Event)
}

// Subscription identifies one registered handler; pass it to Off to remove it.
type Subscription struct {
	Type EventType
	id   uint64
}

type entry struct {
	id       uint64
	handler  Handler
	listener Listener
	once     bool
}

type pending struct {
	event Event
	done  chan struct{}
}

// Bus — шина событий внутри процесса. Все вызовы идут из игрового цикла,
// мьютекс защищает только очередь отложенных событий.
type Bus struct {
	handlers map[EventType][]entry
	nextID   uint64

	mu    sync.Mutex
	queue []pending

	log *logging.Logger
}

// NewBus — создаёт новую шину
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]entry),
		log:      logging.For("event"),
	}
}

// On подписывает обработчик; обработчики вызываются в порядке регистрации.
func (b *Bus) On(t EventType, h Handler) Subscription {
	return b.add(t, entry{handler: h})
}

// Once подписывает обработчик, который сработает один раз.
func (b *Bus) Once(t EventType, h Handler) Subscription {
	return b.add(t, entry{handler: h, once: true})
}

func (b *Bus) add(t EventType, e entry) Subscription {
	b.nextID++
	e.id = b.nextID
	b.handlers[t] = append(b.handlers[t], e)
	return Subscription{Type: t, id: e.id}
}

// Off удаляет подписку. Повторный вызов ничего не делает.
func (b *Bus) Off(s Subscription) {
	b.removeWhere(s.Type, func(e entry) bool { return e.id == s.id })
}

func (b *Bus) removeWhere(t EventType, match func(entry) bool) {
	list, ok := b.handlers[t]
	if !ok {
		return
	}
	kept := make([]entry, 0, len(list))
	for _, e := range list {
		if !match(e) {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		delete(b.handlers, t)
		return
	}
	b.handlers[t] = kept
}

// Subscribe — подписка на событие
func (b *Bus) Subscribe(t EventType, listener Listener) {
	b.add(t, entry{listener: listener})
}

// Unsubscribe — отписка от события
func (b *Bus) Unsubscribe(t EventType, listener Listener) {
	b.removeWhere(t, func(e entry) bool { return e.listener != nil && e.listener == listener })
}

// Dispatch — отправка события всем подписчикам
func (b *Bus) Dispatch(ev Event) {
	b.Emit(ev.Type, ev.Data)
}

// Emit synchronously delivers the event. A panicking handler is logged and the
// remaining handlers still run. Handlers added during delivery see the next event.
func (b *Bus) Emit(t EventType, data interface{}) {
	list := b.handlers[t]
	if len(list) == 0 {
		return
	}
	snapshot := make([]entry, len(list))
	copy(snapshot, list)

	ev := Event{Type: t, Data: data}
	for _, e := range snapshot {
		if e.once {
			if !b.has(t, e.id) {
				continue // уже сработал во вложенном Emit
			}
			b.removeWhere(t, func(x entry) bool { return x.id == e.id })
		}
		b.call(e, ev)
	}
}

func (b *Bus) has(t EventType, id uint64) bool {
	for _, e := range b.handlers[t] {
		if e.id == id {
			return true
		}
	}
	return false
}

func (b *Bus) call(e entry, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Errorf("handler for %s panicked: %v", ev.Type, r)
		}
	}()
	if e.listener != nil {
		e.listener.OnEvent(ev)
		return
	}
	if e.handler != nil {
		e.handler(ev)
	}
}

// EmitAsync queues the event until the next Flush. The returned channel is
// closed once the event has been delivered.
func (b *Bus) EmitAsync(t EventType, data interface{}) <-chan struct{} {
	done := make(chan struct{})
	b.mu.Lock()
	b.queue = append(b.queue, pending{event: Event{Type: t, Data: data}, done: done})
	b.mu.Unlock()
	return done
}

// Flush delivers everything queued by EmitAsync before the call.
// Events queued while flushing wait for the next Flush.
func (b *Bus) Flush() int {
	b.mu.Lock()
	queue := b.queue
	b.queue = nil
	b.mu.Unlock()

	for _, p := range queue {
		b.Emit(p.event.Type, p.event.Data)
		close(p.done)
	}
	return len(queue)
}

// Pending returns the number of queued async events.
func (b *Bus) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

// Clear removes every handler. Queued async events are kept.
func (b *Bus) Clear() {
	b.handlers = make(map[EventType][]entry)
}

// ClearEvent removes all handlers of one event type.
func (b *Bus) ClearEvent(t EventType) {
	delete(b.handlers, t)
}

// HandlerCount returns the number of handlers registered for t.
func (b *Bus) HandlerCount(t EventType) int {
	return len(b.handlers[t])
}
