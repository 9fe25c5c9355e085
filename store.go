package loom

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

// Store owns the current model and drives the middleware → reducer →
// commands → reactions dispatch pipeline for every message the runtime
// receives. There is one Store per Program.
type Store struct {
	reducer Reducer

	mu    sync.RWMutex
	model Model

	middleware []Middleware
	reactions  []Reaction
	subs       []Sub

	channel *Channel
}

// NewStore creates a store seeded with the given initial model and
// reducer. Middleware and reactions are added with AddMiddleware and
// AddReaction before the store starts dispatching.
func NewStore(initial Model, reducer Reducer) *Store {
	return &Store{
		reducer: reducer,
		model:   initial,
		channel: NewChannel(),
	}
}

// AddMiddleware appends m to the middleware chain. Middleware runs in the
// order it was added; the first one to return ok=false halts the dispatch.
func (s *Store) AddMiddleware(m Middleware) {
	s.middleware = append(s.middleware, m)
}

// AddReaction registers r to be called with every model produced by a
// successful dispatch.
func (s *Store) AddReaction(r Reaction) {
	s.reactions = append(s.reactions, r)
}

// AddSubscription registers a Sub. Subscriptions only take effect once
// RunSubscriptions has been called.
func (s *Store) AddSubscription(sub Sub) {
	s.subs = append(s.subs, sub)
}

// Model returns the current model. Safe to call concurrently with
// Dispatch.
func (s *Store) Model() Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

// Channel returns the store's message channel, the single funnel every
// input event, subscription message, command result, and resize event is
// sent through before Dispatch is called on it.
func (s *Store) Channel() *Channel {
	return s.channel
}

// Dispatch runs msg through the middleware chain, then (if no middleware
// vetoed it) through the reducer, then executes the resulting commands
// concurrently, then invokes every registered reaction with the new model.
// It returns false if a middleware halted the dispatch.
func (s *Store) Dispatch(msg Msg) bool {
	next, ok := s.runMiddleware(0, msg)
	if !ok {
		return false
	}

	s.mu.Lock()
	model, cmds := s.reducer(s.model, next)
	s.model = model
	s.mu.Unlock()

	s.runCommands(cmds)

	for _, r := range s.reactions {
		r(model)
	}
	return true
}

func (s *Store) runMiddleware(i int, msg Msg) (Msg, bool) {
	if i >= len(s.middleware) {
		return msg, true
	}
	next, ok := s.middleware[i](s, msg)
	if !ok {
		return nil, false
	}
	return s.runMiddleware(i+1, next)
}

// runCommands executes a dispatch's commands concurrently, per spec.md's
// Design Note recommending the threaded variant, and feeds every resulting
// non-nil message back into the store's channel once all of them have
// completed. Using an errgroup here keeps the "all of a dispatch's commands
// finish, and their messages are enqueued, before that dispatch's reactions
// run" ordering guarantee while no longer serializing slow commands against
// each other.
func (s *Store) runCommands(cmds BatchCmd) {
	if len(cmds) == 0 {
		return
	}

	var g errgroup.Group
	results := make([]Msg, len(cmds))
	for i, cmd := range cmds {
		i, cmd := i, cmd
		if cmd == nil {
			continue
		}
		g.Go(func() error {
			results[i] = cmd()
			return nil
		})
	}
	_ = g.Wait()

	for _, msg := range results {
		if msg != nil {
			s.channel.Send(msg)
		}
	}
}

// RunSubscriptions spawns one goroutine per registered subscription. Each
// goroutine observes a single Model.Clone() snapshot taken at spawn time
// and loops forever feeding messages into the store's channel; there is no
// mechanism to stop an individual subscription, matching the "no
// unsubscription" non-goal. Subscriptions run for the lifetime of the
// process and are abandoned (not joined) at shutdown.
func (s *Store) RunSubscriptions() {
	for _, sub := range s.subs {
		sub := sub
		snapshot := s.Model().Clone()
		go func() {
			for {
				msg := sub(snapshot)
				s.channel.Send(msg)
			}
		}()
	}
}
