//go:build windows

package loom

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/erikgeiser/coninput"
	localereader "github.com/mattn/go-localereader"
	"github.com/muesli/cancelreader"
	"golang.org/x/sys/windows"
)

// InputSource decodes input events on Windows. When r is the process's own
// stdin handle it reads typed console input records through coninput,
// which is how mouse and window-resize events reach the runtime on
// Windows (there is no SIGWINCH and no ANSI mouse-reporting mode to rely
// on). Any other reader — a pipe, a file, redirected input — falls back
// to the same escape-byte decode input_unix.go uses, mirroring how the
// teacher's own readInputs dispatches between readConInputs and
// readAnsiInputs.
type InputSource struct {
	conin     windows.Handle
	isConsole bool

	cancel cancelreader.CancelReader
	br     *bufio.Reader

	mu     sync.Mutex
	closed bool
}

// NewInputSource wraps r for cancelable, locale-aware reading.
func NewInputSource(r io.Reader) (*InputSource, error) {
	if f, ok := r.(*os.File); ok && f.Fd() == os.Stdin.Fd() {
		if conin, err := coninput.NewStdinHandle(); err == nil {
			return &InputSource{conin: conin, isConsole: true}, nil
		}
	}

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
// error if the underlying read was canceled or failed. For console input,
// records this runtime ignores (key releases, focus and menu events) are
// skipped and reading continues until something decodable arrives.
func (s *InputSource) Next() (InputEvent, error) {
	if s.isConsole {
		return s.nextConInput()
	}
	b, err := s.br.ReadByte()
	if err != nil {
		return nil, err
	}
	return decodeKey(b, s.br), nil
}

func (s *InputSource) nextConInput() (InputEvent, error) {
	for {
		events, err := coninput.ReadNConsoleInputs(s.conin, 1)
		if err != nil {
			return nil, fmt.Errorf("loom: read console input: %w", err)
		}
		for _, e := range events {
			if ev, ok := decodeConInputEvent(e); ok {
				return ev, nil
			}
		}
	}
}

// Cancel interrupts a blocking Next call.
func (s *InputSource) Cancel() bool {
	if s.isConsole {
		return windows.CancelIo(s.conin) == nil
	}
	return s.cancel.Cancel()
}

// Close releases the underlying reader.
func (s *InputSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.isConsole {
		return nil
	}
	return s.cancel.Close()
}

// enableRawMode switches f's console mode to report individual key and
// mouse events instead of line-buffered input, returning a restore
// function that puts the original mode back.
func enableRawMode(f *os.File) (restore func() error, err error) {
	conin, err := coninput.NewStdinHandle()
	if err != nil {
		return nil, err
	}

	var original uint32
	if err := windows.GetConsoleMode(conin, &original); err != nil {
		return nil, fmt.Errorf("loom: get console mode: %w", err)
	}

	mode := windows.ENABLE_MOUSE_INPUT | windows.ENABLE_WINDOW_INPUT | windows.ENABLE_EXTENDED_FLAGS
	if err := windows.SetConsoleMode(conin, uint32(mode)); err != nil {
		return nil, fmt.Errorf("loom: set console mode: %w", err)
	}

	return func() error {
		return windows.SetConsoleMode(conin, original)
	}, nil
}

// decodeConInputEvent translates a single coninput console event into a
// loom InputEvent, mirroring how the Unix path decodes an escape sequence
// into the same closed InputEvent set. Window-buffer-size and mouse
// events are handled directly here rather than through decodeKey, since on
// Windows they arrive as typed console records instead of raw bytes.
// Focus and menu events carry nothing this runtime acts on.
func decodeConInputEvent(e coninput.EventRecord) (InputEvent, bool) {
	switch rec := e.Unwrap().(type) {
	case coninput.KeyEventRecord:
		if !rec.KeyDown {
			return nil, false
		}
		return KeyEvent{Key: windowsKey(rec)}, true
	case coninput.WindowBufferSizeEventRecord:
		return WindowSizeEvent{Width: int(rec.Size.X), Height: int(rec.Size.Y)}, true
	case coninput.MouseEventRecord:
		btn := MouseButtonNone
		switch {
		case rec.ButtonState&coninput.FROM_LEFT_1ST_BUTTON_PRESSED > 0:
			btn = MouseButtonLeft
		case rec.ButtonState&coninput.RIGHTMOST_BUTTON_PRESSED > 0:
			btn = MouseButtonRight
		}
		return MouseEvent{
			X:      int(rec.MousePosition.X),
			Y:      int(rec.MousePosition.Y),
			Button: btn,
		}, true
	default:
		return nil, false
	}
}

func windowsKey(e coninput.KeyEventRecord) Key {
	switch e.VirtualKeyCode {
	case coninput.VK_BACK:
		return Key{Type: KeyBackspace}
	case coninput.VK_UP:
		return Key{Type: KeyUp}
	case coninput.VK_DOWN:
		return Key{Type: KeyDown}
	case coninput.VK_LEFT:
		return Key{Type: KeyLeft}
	case coninput.VK_RIGHT:
		return Key{Type: KeyRight}
	case coninput.VK_HOME:
		return Key{Type: KeyHome}
	case coninput.VK_END:
		return Key{Type: KeyEnd}
	case coninput.VK_PRIOR:
		return Key{Type: KeyPageUp}
	case coninput.VK_NEXT:
		return Key{Type: KeyPageDown}
	case coninput.VK_DELETE:
		return Key{Type: KeyDelete}
	case coninput.VK_INSERT:
		return Key{Type: KeyInsert}
	case coninput.VK_ESCAPE:
		return Key{Type: KeyEsc}
	default:
		if e.Char == 0 {
			return Key{Type: KeyUnsupported}
		}
		return Key{Type: KeyChar, Rune: e.Char}
	}
}
