package loom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickWaitsThenYieldsMessage(t *testing.T) {
	type tickMsg struct{}

	cmd := Tick(10*time.Millisecond, func() Msg { return tickMsg{} })

	start := time.Now()
	msg := cmd()
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 10*time.Millisecond)
	assert.IsType(t, tickMsg{}, msg)
}

func TestBatchDropsNilCommands(t *testing.T) {
	called := false
	b := Batch(nil, func() Msg { called = true; return nil }, nil)

	assert.Len(t, b, 1)
	b[0]()
	assert.True(t, called)
}

func TestMapLiftsCommandResult(t *testing.T) {
	type inner struct{ n int }
	type outer struct{ wrapped inner }

	cmd := Map(func() Msg { return inner{n: 5} }, func(m Msg) Msg {
		return outer{wrapped: m.(inner)}
	})

	got := cmd().(outer)
	assert.Equal(t, 5, got.wrapped.n)
}

func TestMapOfNilCommandIsNil(t *testing.T) {
	assert.Nil(t, Map(nil, func(m Msg) Msg { return m }))
}

func TestMapBatchLiftsEveryCommand(t *testing.T) {
	type inner struct{ n int }
	type outer struct{ n int }

	batch := Batch(
		func() Msg { return inner{n: 1} },
		func() Msg { return inner{n: 2} },
	)

	lifted := MapBatch(batch, func(m Msg) Msg {
		return outer{n: m.(inner).n * 10}
	})

	assert.Equal(t, 10, lifted[0]().(outer).n)
	assert.Equal(t, 20, lifted[1]().(outer).n)
}
