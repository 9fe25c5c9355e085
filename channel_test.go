package loom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChannelSendNeverBlocks(t *testing.T) {
	c := NewChannel()
	defer c.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			c.Send(i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Send blocked")
	}
}

func TestChannelDeliversInOrder(t *testing.T) {
	c := NewChannel()
	defer c.Close()

	for i := 0; i < 5; i++ {
		c.Send(i)
	}

	for i := 0; i < 5; i++ {
		select {
		case msg := <-c.Recv():
			assert.Equal(t, i, msg)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for message")
		}
	}
}

func TestChannelClosedDropsLateSends(t *testing.T) {
	c := NewChannel()
	c.Send("before")

	select {
	case msg := <-c.Recv():
		assert.Equal(t, "before", msg)
	case <-time.After(time.Second):
		t.Fatal("timed out")
	}

	c.Close()
	c.Send("after")

	select {
	case _, ok := <-c.Recv():
		assert.False(t, ok, "channel should be closed with no further messages")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for close")
	}
}
