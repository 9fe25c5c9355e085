//go:build !windows

package loom

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"
)

// listenForResize watches for SIGWINCH on unix platforms and sends a
// WindowSizeEvent each time the terminal is resized, until ctx is done.
// done is closed once the goroutine has returned, so callers can wait for
// it during shutdown without leaking the signal.Notify registration.
func listenForResize(ctx context.Context, f *os.File, events chan<- InputEvent, done chan<- struct{}) {
	defer close(done)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGWINCH)
	defer signal.Stop(sig)

	for {
		select {
		case <-ctx.Done():
			return
		case <-sig:
			w, h, err := term.GetSize(int(f.Fd()))
			if err != nil {
				continue
			}
			select {
			case events <- WindowSizeEvent{Width: w, Height: h}:
			case <-ctx.Done():
				return
			}
		}
	}
}
