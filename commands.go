package loom

import (
	"time"

	"github.com/samber/lo"
)

// Tick returns a Cmd that sleeps for d and then yields fn's message. It is
// the building block subscriptions and reducers use for timers and
// countdowns.
func Tick(d time.Duration, fn func() Msg) Cmd {
	return func() Msg {
		time.Sleep(d)
		return fn()
	}
}

// Batch combines zero or more commands into a single BatchCmd, dropping
// any nil Cmd values so reducers can build a batch conditionally without
// filtering themselves.
func Batch(cmds ...Cmd) BatchCmd {
	out := make(BatchCmd, 0, len(cmds))
	for _, c := range cmds {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Map lifts cmd's result through fn, producing a Cmd whose message has
// been rewritten. This is how a parent reducer embeds a subcomponent's
// commands into its own message space.
func Map(cmd Cmd, fn func(Msg) Msg) Cmd {
	if cmd == nil {
		return nil
	}
	return func() Msg {
		return fn(cmd())
	}
}

// MapBatch lifts every command in cmds through fn, the batch analogue of
// Map. It mirrors original_source/src/core/commands.rs's map_batch, which
// performs the same element-wise lift over a Vec of commands.
func MapBatch(cmds BatchCmd, fn func(Msg) Msg) BatchCmd {
	return lo.Map(cmds, func(c Cmd, _ int) Cmd {
		return Map(c, fn)
	})
}
