package loom

import "sync"

// scheduler is the process-wide render scheduler: a single coalescing
// "a frame is wanted" signal shared by every dispatch in the process.
// Because loom runs at most one Program per process (an explicit
// non-goal is supporting more than one), a single package-level instance
// is sufficient and matches the Rust original's static singleton.
type scheduler struct {
	wake chan struct{}
}

var (
	schedOnce sync.Once
	sched     *scheduler
)

func getScheduler() *scheduler {
	schedOnce.Do(func() {
		sched = &scheduler{
			wake: make(chan struct{}, 1),
		}
	})
	return sched
}

// requestRender signals that a frame should be painted. Multiple requests
// that arrive before the main loop takes the pending token coalesce into a
// single wake-up, since wake is a buffered channel of capacity one and the
// send is non-blocking; the loop still dispatches and paints each message
// it drains on that wake-up.
func (s *scheduler) requestRender() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// frames returns the channel the main loop selects on; one value is
// delivered per coalesced batch of requestRender calls.
func (s *scheduler) frames() <-chan struct{} {
	return s.wake
}
