package loom

import "sync"

// Channel is a multi-producer, single-consumer message queue. Sends never
// block and never fail: the queue grows without bound rather than stalling
// a producer, and sends after Close are silently dropped, matching the "no
// back-pressure" non-goal and the Rust original's unbounded
// `std::sync::mpsc` channel.
//
// Internally, sent values are appended to an unbounded slice-backed queue
// guarded by a mutex; a single pump goroutine drains that queue into an
// unbuffered Go channel, which is what Recv and Iter read from. The pump
// is what makes Send non-blocking even though the consumer-facing channel
// itself is unbuffered: producers never touch the consumer channel.
type Channel struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Msg
	closed bool

	out  chan Msg
	once sync.Once
}

// NewChannel creates a connected sender/receiver pair and starts the pump
// goroutine that forwards queued messages into the receive channel.
func NewChannel() *Channel {
	c := &Channel{
		out: make(chan Msg),
	}
	c.cond = sync.NewCond(&c.mu)
	go c.pump()
	return c
}

// Send enqueues msg for delivery. It never blocks and is safe to call from
// any number of goroutines concurrently. Sending on a closed channel is a
// silent no-op. Every successful send also pokes the render scheduler, so
// the main loop wakes and drains the channel even if no reaction happens
// to request a render itself.
func (c *Channel) Send(msg Msg) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.queue = append(c.queue, msg)
	c.mu.Unlock()
	c.cond.Signal()
	getScheduler().requestRender()
}

// Recv returns the channel's receive side. Consumers range over it or
// select on it; it is closed once Close has been called and every queued
// message has been delivered.
func (c *Channel) Recv() <-chan Msg {
	return c.out
}

// Close disconnects the channel. Any messages already queued are still
// delivered before Recv's channel closes; sends after Close are dropped.
func (c *Channel) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cond.Signal()
}

func (c *Channel) pump() {
	defer c.once.Do(func() { close(c.out) })
	for {
		c.mu.Lock()
		for len(c.queue) == 0 && !c.closed {
			c.cond.Wait()
		}
		if len(c.queue) == 0 && c.closed {
			c.mu.Unlock()
			return
		}
		msg := c.queue[0]
		c.queue = c.queue[1:]
		c.mu.Unlock()

		c.out <- msg
	}
}
