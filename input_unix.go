//go:build !windows

package loom

import (
	"bufio"
	"io"
	"os"
	"sync"

	"github.com/containerd/console"
	"github.com/mattn/go-localereader"
	"github.com/muesli/cancelreader"
)

// InputSource reads raw bytes from a terminal and decodes them into
// InputEvent values, one per call to Next. It wraps the supplied reader in
// a cancelreader so that Cancel can unblock a pending read during shutdown,
// and in a localereader so multi-byte UTF-8 sequences decode correctly
// under non-UTF-8 locales. Decoding itself is the shared ANSI escape-code
// decode in input.go — on Unix terminals, keys always arrive as an escape
// byte stream, unlike Windows where console-mode events are also possible.
type InputSource struct {
	cancel cancelreader.CancelReader
	br     *bufio.Reader

	mu     sync.Mutex
	closed bool
}

// NewInputSource wraps r for cancelable, locale-aware reading.
func NewInputSource(r io.Reader) (*InputSource, error) {
	locale := localereader.NewReader(r)
	cr, err := cancelreader.NewReader(locale)
	if err != nil {
		return nil, err
	}
	return &InputSource{
		cancel: cr,
		br:     bufio.NewReader(cr),
	}, nil
}

// Next blocks until a single InputEvent has been decoded, or returns an
// error if the underlying read was canceled or failed.
func (s *InputSource) Next() (InputEvent, error) {
	b, err := s.br.ReadByte()
	if err != nil {
		return nil, err
	}
	return decodeKey(b, s.br), nil
}

// Cancel interrupts a blocking Next call. It is safe to call concurrently
// with Next, and safe to call more than once.
func (s *InputSource) Cancel() bool {
	return s.cancel.Cancel()
}

// Close releases the underlying reader. Call after Cancel has returned and
// any in-flight Next call has unblocked.
func (s *InputSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.cancel.Close()
}

// enableRawMode puts f into raw mode via containerd/console and returns a
// restore function that undoes it. On unix, raw mode is what lets the
// input source see individual keystrokes (including escape sequences)
// instead of waiting for a line-buffered newline.
func enableRawMode(f *os.File) (restore func() error, err error) {
	c, err := console.ConsoleFromFile(f)
	if err != nil {
		return nil, err
	}
	if err := c.SetRaw(); err != nil {
		return nil, err
	}
	return c.Reset, nil
}
