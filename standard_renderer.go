package loom

import (
	"io"
	"strings"
	"sync"

	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
)

// StandardRenderer paints frames by clearing and rewriting only the lines
// the previous frame occupied, never a full-screen cell-grid diff. The
// algorithm is deliberately the simplest one that satisfies spec.md §8
// property 2 ("ANSI previous-line sequences emitted before each frame
// equals \r\n count in previous render"):
//
//  1. append a trailing '\n' to the view, then replace every '\n' with
//     "\r\n" so the terminal doesn't rely on the line discipline to supply
//     carriage returns;
//  2. if the previous frame painted N lines (N > 0), emit N repetitions of
//     "move to previous line" + "erase line" before writing anything new;
//  3. write the transformed view;
//  4. record the new line count for next time.
type StandardRenderer struct {
	mu sync.Mutex

	out    *termenv.Output
	width  int
	lines  int
	staged string

	altScreen bool
}

// NewStandardRenderer wraps w (typically os.Stdout, possibly wrapped in an
// ANSI compressor) in a termenv.Output and returns a ready-to-use renderer.
func NewStandardRenderer(w io.Writer) *StandardRenderer {
	return &StandardRenderer{
		out: termenv.NewOutput(w),
	}
}

func (r *StandardRenderer) SetWidth(width int) {
	r.mu.Lock()
	r.width = width
	r.mu.Unlock()
}

func (r *StandardRenderer) Write(view string) {
	r.mu.Lock()
	r.staged = view
	r.mu.Unlock()
}

// Flush paints the staged view, clearing exactly as many previous lines as
// were written last time.
func (r *StandardRenderer) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	view := r.staged
	if r.width > 0 {
		view = truncateLines(view, r.width)
	}
	view += "\n"
	view = strings.ReplaceAll(view, "\n", "\r\n")

	var b strings.Builder
	for i := 0; i < r.lines; i++ {
		b.WriteString("\x1b[1F")
		b.WriteString("\x1b[2K")
	}
	b.WriteString(view)

	if _, err := io.WriteString(r.out, b.String()); err != nil {
		return err
	}
	r.lines = strings.Count(view, "\r\n")
	return nil
}

func truncateLines(view string, width int) string {
	lines := strings.Split(view, "\n")
	for i, line := range lines {
		lines[i] = truncate.String(line, uint(width))
	}
	return strings.Join(lines, "\n")
}

// HandleRenderMsg applies a scroll-region primitive directly, without
// going through the staged-frame Write/Flush cycle. SyncScrollArea writes
// its lines at the current cursor position between a cursor save and
// restore; its Top and Bottom fields are not used. ScrollDown and ScrollUp
// each emit a one-line scroll (CSI S / CSI T).
func (r *StandardRenderer) HandleRenderMsg(m RenderMsg) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch m.Kind {
	case SyncScrollArea:
		var b strings.Builder
		b.WriteString(termenv.CSI + "s")
		for _, l := range m.Lines {
			b.WriteString(l)
			b.WriteString("\r\n")
		}
		b.WriteString(termenv.CSI + "u")
		_, err := io.WriteString(r.out, b.String())
		return err
	case ScrollDown:
		_, err := io.WriteString(r.out, termenv.CSI+"S")
		return err
	case ScrollUp:
		_, err := io.WriteString(r.out, termenv.CSI+"T")
		return err
	}
	return nil
}

func (r *StandardRenderer) EnterAltScreen() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.out.AltScreen()
	r.altScreen = true
	r.lines = 0
	return nil
}

func (r *StandardRenderer) ExitAltScreen() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.out.ExitAltScreen()
	r.altScreen = false
	return nil
}

func (r *StandardRenderer) HideCursor() error {
	r.out.HideCursor()
	return nil
}

func (r *StandardRenderer) ShowCursor() error {
	r.out.ShowCursor()
	return nil
}

// Close restores the cursor and exits the alt screen if it was entered.
func (r *StandardRenderer) Close() error {
	r.mu.Lock()
	alt := r.altScreen
	r.mu.Unlock()

	r.out.ShowCursor()
	if alt {
		r.out.ExitAltScreen()
	}
	return nil
}

// SyncScrollAreaCmd returns a Cmd yielding a SyncScrollArea RenderMsg that
// carries lines, top and bottom, bypassing the normal staged-frame
// Write/Flush cycle. StandardRenderer paints the lines at the cursor and
// does not use top and bottom (see HandleRenderMsg).
func SyncScrollAreaCmd(lines []string, top, bottom int) Cmd {
	return func() Msg {
		return RenderMsg{Kind: SyncScrollArea, Lines: lines, Top: top, Bottom: bottom}
	}
}

// ScrollDownCmd returns a Cmd that scrolls the terminal's scroll region
// down by one line.
func ScrollDownCmd() Cmd {
	return func() Msg { return RenderMsg{Kind: ScrollDown} }
}

// ScrollUpCmd returns a Cmd that scrolls the terminal's scroll region up
// by one line.
func ScrollUpCmd() Cmd {
	return func() Msg { return RenderMsg{Kind: ScrollUp} }
}

// Fullscreen and ExitFullscreen are free functions that emit the alt-screen
// sequence directly to w, usable outside of a running Program, matching
// original_source/src/core/renderer.rs exposing these as bare functions
// rather than only as methods on a running runtime.
func Fullscreen(w io.Writer) error {
	out := termenv.NewOutput(w)
	out.AltScreen()
	return nil
}

func ExitFullscreen(w io.Writer) error {
	out := termenv.NewOutput(w)
	out.ExitAltScreen()
	return nil
}
