package loom

// Model is the program's state. It must be cheaply value-copyable: the
// Store clones the current model once per subscription, at the moment that
// subscription's thread is spawned, and hands the clone to that thread.
type Model interface {
	// Clone returns an independent value copy of the model.
	Clone() Model
}

// Msg is an opaque, user-defined message. It is produced by the input
// mapper, subscriptions, commands, middleware, and the resize signal
// handler, and consumed exactly once by the reducer (or swallowed by
// middleware).
type Msg any

// Cmd is a deferred, one-shot side-effecting computation that yields a Msg
// when it completes. A nil Cmd is a no-op. The runtime may execute a Cmd on
// a worker goroutine; Cmds must be safe to call from any goroutine.
type Cmd func() Msg

// BatchCmd is an ordered collection of Cmds produced by a single reducer
// call. All of a dispatch's commands are executed before that dispatch's
// reactions run.
type BatchCmd []Cmd

// Reducer is the pure state transition function: given the current model
// and an incoming message, it returns the next model and any commands the
// transition wants to run.
type Reducer func(Model, Msg) (Model, BatchCmd)

// Initialize builds the program's starting model and, optionally, an
// ignition command — the first command the runtime executes, before the
// initial frame is rendered.
type Initialize func() (Model, Cmd)

// InputMapper lifts a decoded InputEvent to an application Msg. Returning
// false means the event should be discarded.
type InputMapper func(InputEvent) (Msg, bool)

// View renders the model to the string that the terminal renderer will
// paint. The core renderer treats '\n' as the only line boundary in the
// returned string — a view must never emit a bare '\n' in the middle of a
// styled run, since the renderer's line-diff accounting depends on it.
type View func(Model) string

// Sub is a long-running source of messages driven from a single snapshot of
// the model, taken once when the subscription's dedicated goroutine starts.
// Subscriptions never see a fresher model than that snapshot.
type Sub func(Model) Msg

// Middleware intercepts a message before it reaches the reducer. Returning
// ok=false halts the dispatch: the reducer is not called and no reactions
// run. Returning ok=true forwards the (possibly rewritten) message to the
// next middleware, or to the reducer if this was the last one. Middleware
// receives the Store so it can inspect the current model or re-dispatch.
type Middleware func(*Store, Msg) (next Msg, ok bool)

// Reaction observes every model produced by a successful reducer call. The
// runtime registers one reaction internally to drive rendering; user code
// never needs to register its own unless it wants a second observer (e.g.
// for logging).
type Reaction func(Model)
