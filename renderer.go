package loom

// RenderMsg carries a scroll-region primitive from a command back into the
// renderer, grounded on original_source/src/core/renderer.rs's
// sync_scroll_area/scroll_down/scroll_up. These are the "high-performance
// scrolling" operations the Rust original exposes alongside the plain
// full-frame repaint.
type RenderMsg struct {
	Kind   RenderMsgKind
	Lines  []string
	Top    int
	Bottom int
}

// RenderMsgKind selects which scroll-region primitive a RenderMsg carries.
type RenderMsgKind int

const (
	SyncScrollArea RenderMsgKind = iota
	ScrollDown
	ScrollUp
)

// Renderer is the interface the runtime drives a frame painter through.
// StandardRenderer is the only implementation this package ships, matching
// spec.md's "no double-buffered cell-grid rendering" non-goal: a renderer
// here paints by diffing line counts, not by diffing a cell grid.
type Renderer interface {
	// Write stages view as the next frame's content. It does not paint;
	// painting happens on the next Flush.
	Write(view string)
	// Flush paints the staged frame to the terminal.
	Flush() error
	// HandleRenderMsg applies a scroll-region primitive immediately,
	// outside of the normal staged-frame flow.
	HandleRenderMsg(RenderMsg) error
	// SetWidth records the terminal's current width so long lines can be
	// truncated before they wrap and corrupt the line-count invariant.
	SetWidth(width int)
	// EnterAltScreen/ExitAltScreen/HideCursor/ShowCursor toggle terminal
	// modes usable whether or not a frame is currently staged.
	EnterAltScreen() error
	ExitAltScreen() error
	HideCursor() error
	ShowCursor() error
	// Close restores anything the renderer changed about the terminal.
	Close() error
}
