package loom

import "io"

// ProgramOption configures a Program at construction time, the same
// functional-options shape the teacher uses for its own startup knobs
// (WithContext/WithOutput/WithInput/WithoutSignals, etc.).
type ProgramOption func(*Program)

// WithFullscreen starts the program in the terminal's alternate screen
// buffer, restoring the original screen contents on exit.
func WithFullscreen() ProgramOption {
	return func(p *Program) {
		p.fullscreen = true
	}
}

// WithMiddleware registers m on the program's store. Middleware added this
// way runs in the order the options were supplied to NewProgram.
func WithMiddleware(m Middleware) ProgramOption {
	return func(p *Program) {
		p.middleware = append(p.middleware, m)
	}
}

// WithSubscription registers a long-running message source that starts
// once the program's main loop begins.
func WithSubscription(s Sub) ProgramOption {
	return func(p *Program) {
		p.subs = append(p.subs, s)
	}
}

// WithOutput overrides the writer frames are painted to. Defaults to
// os.Stdout.
func WithOutput(w io.Writer) ProgramOption {
	return func(p *Program) {
		p.output = w
	}
}

// WithInput overrides the reader input events are decoded from. Defaults
// to os.Stdin.
func WithInput(r io.Reader) ProgramOption {
	return func(p *Program) {
		p.input = r
	}
}

// WithANSICompressor wraps the output writer in an ANSI-run compressor
// before frames are painted, coalescing repeated escape sequences. Matches
// the teacher's standardRenderer.useANSICompressor knob.
func WithANSICompressor() ProgramOption {
	return func(p *Program) {
		p.ansiCompressor = true
	}
}

// WithoutSignalHandler disables the built-in SIGWINCH/resize-poll
// listener. Use this when the host application wants to drive
// WindowSizeEvent dispatch itself.
func WithoutSignalHandler() ProgramOption {
	return func(p *Program) {
		p.withoutSignals = true
	}
}
