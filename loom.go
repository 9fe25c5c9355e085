package loom

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	isatty "github.com/mattn/go-isatty"
	"github.com/muesli/ansi/compressor"
	"golang.org/x/term"
)

// ErrProgramPanic is returned by Run when the program's main loop
// recovered from a panic. The terminal is always restored first.
var ErrProgramPanic = errors.New("loom: program panicked")

// ErrTerminalIO wraps an I/O error encountered while setting up or painting
// the terminal. Errors from restoring the terminal at shutdown are not
// reported.
type ErrTerminalIO struct {
	Err error
}

func (e *ErrTerminalIO) Error() string { return fmt.Sprintf("loom: terminal I/O: %v", e.Err) }
func (e *ErrTerminalIO) Unwrap() error { return e.Err }

// Program is the runtime orchestrator: it owns the store, the renderer,
// the input source, and the resize listener, and drives them all from a
// single main loop keyed off the store's channel, the render scheduler and
// the liveness flag.
// loom supports exactly one running Program per process, matching the
// "no multiple concurrent runtimes" non-goal.
type Program struct {
	reducer    Reducer
	initialize Initialize
	inputMap   InputMapper
	view       View

	fullscreen     bool
	ansiCompressor bool
	withoutSignals bool
	middleware     []Middleware
	subs           []Sub

	output io.Writer
	input  io.Reader

	store    *Store
	renderer Renderer

	ctx    context.Context
	cancel context.CancelFunc

	shutdownOnce sync.Once
}

// NewProgram builds a Program from its four required pieces of domain
// logic. Call Run to start it.
func NewProgram(reducer Reducer, initialize Initialize, input InputMapper, view View, opts ...ProgramOption) *Program {
	p := &Program{
		reducer:    reducer,
		initialize: initialize,
		inputMap:   input,
		view:       view,
		output:     os.Stdout,
		input:      os.Stdin,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Send delivers msg to the running program's store, the same way an
// input event, subscription, or command result does. Safe to call before
// Run has finished starting up or after it has returned.
func (p *Program) Send(msg Msg) {
	if p.store == nil {
		return
	}
	p.store.Channel().Send(msg)
}

// Run starts the program and blocks until the liveness flag is stopped
// (via the package-level Stop function, typically from a reducer reacting
// to a quit message) or an unrecoverable error occurs. The terminal is
// always restored before Run returns, including when it returns because of
// a recovered panic.
func (p *Program) Run() (err error) {
	getHeartbeat().reset()

	model, ignition := p.initialize()
	p.store = NewStore(model, p.reducer)
	for _, m := range p.middleware {
		p.store.AddMiddleware(m)
	}
	for _, s := range p.subs {
		p.store.AddSubscription(s)
	}

	p.ctx, p.cancel = context.WithCancel(context.Background())
	defer p.cancel()

	out := p.output
	if p.ansiCompressor {
		out = &compressor.Writer{Forward: out}
	}
	p.renderer = NewStandardRenderer(out)

	var restoreTTY func() error
	var inputSource *InputSource
	var resizeDone chan struct{}

	defer func() {
		if r := recover(); r != nil {
			p.teardown(restoreTTY, inputSource, resizeDone)
			debug.PrintStack()
			err = fmt.Errorf("%w: %v", ErrProgramPanic, r)
		}
	}()

	if f, ok := p.input.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		restore, rerr := enableRawMode(f)
		if rerr != nil {
			return &ErrTerminalIO{Err: rerr}
		}
		restoreTTY = restore
	}

	if p.fullscreen {
		if err := p.renderer.EnterAltScreen(); err != nil {
			return &ErrTerminalIO{Err: err}
		}
	}
	if err := p.renderer.HideCursor(); err != nil {
		return &ErrTerminalIO{Err: err}
	}

	if f, ok := p.output.(*os.File); ok {
		if w, h, serr := term.GetSize(int(f.Fd())); serr == nil {
			p.renderer.SetWidth(w)
			if msg, ok := p.inputMap(WindowSizeEvent{Width: w, Height: h}); ok {
				p.store.Dispatch(msg)
			}
		}
	}

	if ignition != nil {
		p.store.Channel().Send(ignition())
	}

	p.renderer.Write(p.view(p.store.Model()))
	if err := p.renderer.Flush(); err != nil {
		p.teardown(restoreTTY, inputSource, resizeDone)
		return &ErrTerminalIO{Err: err}
	}

	var renderErr error
	p.store.AddReaction(func(m Model) {
		p.renderer.Write(p.view(m))
		if ferr := p.renderer.Flush(); ferr != nil && renderErr == nil {
			renderErr = ferr
			Stop()
		}
	})

	if p.input != nil {
		src, ierr := NewInputSource(p.input)
		if ierr != nil {
			p.teardown(restoreTTY, inputSource, resizeDone)
			return &ErrTerminalIO{Err: ierr}
		}
		inputSource = src
		go p.runInput(inputSource)
	}

	if !p.withoutSignals {
		if f, ok := p.input.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			resizeDone = make(chan struct{})
			go p.listenForResizeEvents(f, resizeDone)
		}
	}

	p.store.RunSubscriptions()

	p.runMainLoop()

	p.teardown(restoreTTY, inputSource, resizeDone)
	if renderErr != nil {
		return &ErrTerminalIO{Err: renderErr}
	}
	return nil
}

// runInput decodes events from src and forwards each one the input mapper
// accepts into the store's channel, until src errors (typically because
// Cancel was called during shutdown).
func (p *Program) runInput(src *InputSource) {
	for {
		ev, err := src.Next()
		if err != nil {
			return
		}
		if msg, ok := p.inputMap(ev); ok {
			p.store.Channel().Send(msg)
		}
	}
}

// listenForResizeEvents bridges the platform resize listener into the
// store, updating the renderer's known width directly and, like runInput,
// running the event through the input mapper before enqueueing whatever
// message (if any) it yields.
func (p *Program) listenForResizeEvents(f *os.File, done chan struct{}) {
	events := make(chan InputEvent)
	go listenForResize(p.ctx, f, events, done)
	for {
		select {
		case <-p.ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ws, ok := ev.(WindowSizeEvent); ok {
				p.renderer.SetWidth(ws.Width)
			}
			if msg, ok := p.inputMap(ev); ok {
				p.store.Channel().Send(msg)
			}
		}
	}
}

// runMainLoop blocks on the render scheduler's coalesced wake-up, the
// liveness flag, and the store's channel. Each wake-up drains the store's
// channel non-blockingly, dispatching every message it finds before going
// back to waiting — so a burst of back-to-back sends can collapse into one
// wake-up without ever collapsing the dispatches (and their synchronous
// paints) it woke up for. The channel case picks up any message the
// channel's pump had not yet handed over when a non-blocking drain ran, so
// no queued message waits for a later send.
func (p *Program) runMainLoop() {
	frames := getScheduler().frames()
	recv := p.store.Channel().Recv()
	died := getHeartbeat().diedCh()

	for {
		select {
		case <-died:
			return
		case msg, ok := <-recv:
			if !ok {
				return
			}
			p.handleMessage(msg)
		case <-frames:
			for drained := false; !drained; {
				select {
				case msg, ok := <-recv:
					if !ok {
						return
					}
					p.handleMessage(msg)
				default:
					drained = true
				}
			}
		}
	}
}

// handleMessage applies a RenderMsg directly to the renderer and routes
// everything else through the store's dispatch pipeline, whose render
// reaction paints synchronously. Raw WindowSizeEvents never reach here:
// runInput and listenForResizeEvents both run the mapper themselves,
// enqueueing only the mapped user Msg (listenForResizeEvents also updates
// the renderer's width; runInput does not).
func (p *Program) handleMessage(msg Msg) {
	if rm, ok := msg.(RenderMsg); ok {
		p.renderer.HandleRenderMsg(rm)
		return
	}
	p.store.Dispatch(msg)
}

func (p *Program) teardown(restoreTTY func() error, input *InputSource, resizeDone chan struct{}) {
	p.shutdownOnce.Do(func() {
		p.cancel()

		if input != nil {
			input.Cancel()
			input.Close()
		}
		if resizeDone != nil {
			<-resizeDone
		}

		if p.fullscreen {
			p.renderer.ExitAltScreen()
		}
		p.renderer.ShowCursor()
		p.renderer.Close()

		if restoreTTY != nil {
			restoreTTY()
		}
	})
}
