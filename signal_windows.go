//go:build windows

package loom

import (
	"context"
	"os"
	"time"

	"golang.org/x/term"
)

// listenForResize polls the terminal size on Windows, since SIGWINCH does
// not exist there. A short poll interval keeps resize latency low without
// meaningfully loading the CPU.
func listenForResize(ctx context.Context, f *os.File, events chan<- InputEvent, done chan<- struct{}) {
	defer close(done)

	const pollInterval = 250 * time.Millisecond

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	lastW, lastH, _ := term.GetSize(int(f.Fd()))

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w, h, err := term.GetSize(int(f.Fd()))
			if err != nil || (w == lastW && h == lastH) {
				continue
			}
			lastW, lastH = w, h
			select {
			case events <- WindowSizeEvent{Width: w, Height: h}:
			case <-ctx.Done():
				return
			}
		}
	}
}
