package loom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counterModel struct {
	n int
}

func (m counterModel) Clone() Model { return m }

type incMsg struct{ by int }

func counterReducer(m Model, msg Msg) (Model, BatchCmd) {
	cm := m.(counterModel)
	switch msg := msg.(type) {
	case incMsg:
		cm.n += msg.by
		return cm, nil
	}
	return cm, nil
}

func TestStoreDispatchAppliesReducer(t *testing.T) {
	s := NewStore(counterModel{n: 0}, counterReducer)

	s.Dispatch(incMsg{by: 3})
	s.Dispatch(incMsg{by: 4})

	got := s.Model().(counterModel)
	assert.Equal(t, 7, got.n)
}

func TestStoreMiddlewareCanVetoDispatch(t *testing.T) {
	s := NewStore(counterModel{n: 0}, counterReducer)

	vetoed := false
	s.AddMiddleware(func(st *Store, msg Msg) (Msg, bool) {
		if m, ok := msg.(incMsg); ok && m.by < 0 {
			vetoed = true
			return nil, false
		}
		return msg, true
	})

	ok := s.Dispatch(incMsg{by: -1})
	require.False(t, ok)
	assert.True(t, vetoed)
	assert.Equal(t, 0, s.Model().(counterModel).n)

	ok = s.Dispatch(incMsg{by: 5})
	require.True(t, ok)
	assert.Equal(t, 5, s.Model().(counterModel).n)
}

func TestStoreReactionsObserveEveryDispatch(t *testing.T) {
	s := NewStore(counterModel{n: 0}, counterReducer)

	var seen []int
	s.AddReaction(func(m Model) {
		seen = append(seen, m.(counterModel).n)
	})

	s.Dispatch(incMsg{by: 1})
	s.Dispatch(incMsg{by: 1})
	s.Dispatch(incMsg{by: 1})

	assert.Equal(t, []int{1, 2, 3}, seen)
}

func TestStoreCommandsRunConcurrentlyAndFeedBackIntoChannel(t *testing.T) {
	cmdReducer := func(m Model, msg Msg) (Model, BatchCmd) {
		cm := m.(counterModel)
		if _, ok := msg.(incMsg); ok {
			return cm, Batch(
				func() Msg { time.Sleep(20 * time.Millisecond); return incMsg{by: 1} },
				func() Msg { time.Sleep(20 * time.Millisecond); return incMsg{by: 1} },
			)
		}
		return cm, nil
	}

	s := NewStore(counterModel{n: 0}, cmdReducer)

	start := time.Now()
	s.Dispatch(incMsg{by: 0})
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 35*time.Millisecond, "commands should run concurrently, not serially")

	var got []Msg
	for i := 0; i < 2; i++ {
		select {
		case msg := <-s.Channel().Recv():
			got = append(got, msg)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for command result")
		}
	}
	assert.Len(t, got, 2)
}

func TestStoreSubscriptionsObserveASingleSnapshot(t *testing.T) {
	s := NewStore(counterModel{n: 42}, counterReducer)

	type snapMsg struct{ seen int }
	fired := make(chan struct{})
	block := make(chan struct{})
	s.AddSubscription(func(m Model) Msg {
		select {
		case <-fired:
			<-block // only ever fire once in this test
		default:
			close(fired)
		}
		return snapMsg{seen: m.(counterModel).n}
	})

	s.RunSubscriptions()

	// Mutate the store's live model after the subscription snapshot was
	// taken; the subscription must keep observing the original snapshot.
	s.Dispatch(incMsg{by: 100})

	select {
	case msg := <-s.Channel().Recv():
		sm, ok := msg.(snapMsg)
		require.True(t, ok)
		assert.Equal(t, 42, sm.seen)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for subscription message")
	}
}
