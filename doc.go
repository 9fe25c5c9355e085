// Package loom is a runtime for building terminal user interfaces in the
// Elm-architecture style: a program's state is a pure function of an
// incoming stream of messages.
//
// Callers supply four pieces of domain logic — an initial model, a reducer,
// an input mapper, and a view — plus optional subscriptions, commands, and
// middleware. The runtime takes care of input ingestion, state transitions,
// frame scheduling, concurrent command execution, and incremental terminal
// rendering.
//
// loom does not ship widgets (text input, viewport, paginator, spinner) or
// example programs; those are ordinary users of this package, built and
// distributed separately.
package loom
