package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingListener struct{ n int }

func (c *countingListener) OnEvent(Event) { c.n++ }

func TestEmitCallsHandlersInOrder(t *testing.T) {
	bus := NewBus()
	var order []int
	bus.On(WaveStarted, func(Event) { order = append(order, 1) })
	bus.On(WaveStarted, func(Event) { order = append(order, 2) })
	bus.On(WaveStarted, func(Event) { order = append(order, 3) })

	bus.Emit(WaveStarted, WaveData{Wave: 1})
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestPanickingHandlerDoesNotStopSiblings(t *testing.T) {
	bus := NewBus()
	called := 0
	bus.On(DamageDealt, func(Event) { panic("boom") })
	bus.On(DamageDealt, func(Event) { called++ })

	assert.NotPanics(t, func() { bus.Emit(DamageDealt, nil) })
	assert.Equal(t, 1, called)
}

func TestOnceFiresOnce(t *testing.T) {
	bus := NewBus()
	calls := 0
	bus.Once(GameOver, func(Event) { calls++ })

	bus.Emit(GameOver, nil)
	bus.Emit(GameOver, nil)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, bus.HandlerCount(GameOver))
}

func TestOnceIsNotRepeatedByNestedEmit(t *testing.T) {
	bus := NewBus()
	calls := 0
	bus.Once(LootChanged, func(Event) {
		calls++
		bus.Emit(LootChanged, nil)
	})
	bus.Emit(LootChanged, nil)
	assert.Equal(t, 1, calls)
}

func TestOffRemovesOnlyThatHandler(t *testing.T) {
	bus := NewBus()
	a, b := 0, 0
	subA := bus.On(LevelUp, func(Event) { a++ })
	bus.On(LevelUp, func(Event) { b++ })

	bus.Off(subA)
	bus.Off(subA)
	bus.Emit(LevelUp, nil)
	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)
}

func TestHandlerAddedDuringEmitWaitsForNextEmit(t *testing.T) {
	bus := NewBus()
	late := 0
	bus.On(SoundCue, func(Event) {
		bus.On(SoundCue, func(Event) { late++ })
	})
	bus.Emit(SoundCue, nil)
	assert.Equal(t, 0, late)
	bus.Emit(SoundCue, nil)
	assert.Equal(t, 1, late)
}

func TestEmitAsyncDeliversOnFlush(t *testing.T) {
	bus := NewBus()
	var got []interface{}
	bus.On(LootChanged, func(e Event) { got = append(got, e.Data) })

	done := bus.EmitAsync(LootChanged, 7)
	assert.Empty(t, got)
	assert.Equal(t, 1, bus.Pending())

	select {
	case <-done:
		t.Fatal("delivered before flush")
	default:
	}

	require.Equal(t, 1, bus.Flush())
	assert.Equal(t, []interface{}{7}, got)
	_, open := <-done
	assert.False(t, open)
	assert.Equal(t, 0, bus.Flush())
}

func TestEmitAsyncFromHandlerWaitsForNextFlush(t *testing.T) {
	bus := NewBus()
	n := 0
	bus.On(ComboChanged, func(Event) {
		n++
		if n == 1 {
			bus.EmitAsync(ComboChanged, nil)
		}
	})
	bus.EmitAsync(ComboChanged, nil)
	bus.Flush()
	assert.Equal(t, 1, n)
	bus.Flush()
	assert.Equal(t, 2, n)
}

func TestListenersAndClear(t *testing.T) {
	bus := NewBus()
	l := &countingListener{}
	bus.Subscribe(KillRecorded, l)
	bus.Dispatch(Event{Type: KillRecorded})
	assert.Equal(t, 1, l.n)

	bus.Unsubscribe(KillRecorded, l)
	bus.Dispatch(Event{Type: KillRecorded})
	assert.Equal(t, 1, l.n)

	bus.On(GameSaved, func(Event) {})
	bus.On(GameLoaded, func(Event) {})
	bus.ClearEvent(GameSaved)
	assert.Equal(t, 0, bus.HandlerCount(GameSaved))
	assert.Equal(t, 1, bus.HandlerCount(GameLoaded))

	bus.Clear()
	assert.Equal(t, 0, bus.HandlerCount(GameLoaded))
}
