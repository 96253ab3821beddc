package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/unitconv"
	"github.com/aretw0/unitconv/internal/presentation/tui"
	"github.com/aretw0/unitconv/pkg/conversion"
	"github.com/aretw0/unitconv/pkg/domain"
	"github.com/aretw0/unitconv/pkg/session"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// errQuit ends the REPL loop normally.
var errQuit = errors.New("quit")

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	SessionID string // persist through the configured store when set
	Fresh     bool   // discard the stored session before starting
	JSON      bool   // one JSON state per line, no banner or prompt
	Quiet     bool   // no banner or system messages

	In  io.Reader
	Out io.Writer
}

// driver forwards REPL events to an embedded or hosted session.
type driver interface {
	Input(ctx context.Context, text string) (domain.State, error)
	Mode(ctx context.Context, mode domain.Mode) (domain.State, error)
	State(ctx context.Context) (domain.State, error)
}

type embeddedDriver struct {
	s *session.Session
}

func (d embeddedDriver) Input(_ context.Context, text string) (domain.State, error) {
	d.s.OnInputChanged(text)
	return d.s.CurrentState(), nil
}

func (d embeddedDriver) Mode(_ context.Context, mode domain.Mode) (domain.State, error) {
	d.s.OnModeSelected(mode)
	return d.s.CurrentState(), nil
}

func (d embeddedDriver) State(context.Context) (domain.State, error) {
	return d.s.CurrentState(), nil
}

type hostedDriver struct {
	c  *unitconv.Converter
	id string
}

func (d hostedDriver) Input(ctx context.Context, text string) (domain.State, error) {
	return deref(d.c.InputChanged(ctx, d.id, text))
}

func (d hostedDriver) Mode(ctx context.Context, mode domain.Mode) (domain.State, error) {
	return deref(d.c.ModeSelected(ctx, d.id, mode))
}

func (d hostedDriver) State(ctx context.Context) (domain.State, error) {
	return deref(d.c.State(ctx, d.id))
}

func deref(s *domain.State, err error) (domain.State, error) {
	if err != nil {
		return domain.State{}, err
	}
	return *s, nil
}

// REPL is the line-oriented front-end over a converter session.
type REPL struct {
	opts        RunOptions
	driver      driver
	printer     *tui.Printer
	render      func(string) (string, error)
	interactive bool
	logger      *slog.Logger
}

// Run starts the REPL and blocks until EOF, :quit or ctx cancellation.
func Run(ctx context.Context, c *unitconv.Converter, opts RunOptions, logger *slog.Logger) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	r := &REPL{
		opts:        opts,
		interactive: isTerminal(opts.In) && !opts.JSON,
		logger:      logger,
	}
	if r.interactive {
		r.printer = tui.NewPrinter(opts.Out)
	} else {
		r.printer = tui.NewPrinter(opts.Out, termenv.WithProfile(termenv.Ascii))
	}

	if opts.SessionID != "" {
		if opts.Fresh {
			if err := c.Manager().Delete(ctx, opts.SessionID); err != nil {
				return fmt.Errorf("failed to reset session: %w", err)
			}
		}
		state, err := c.Start(ctx, opts.SessionID)
		if err != nil {
			return fmt.Errorf("failed to init session: %w", err)
		}
		logger.Info("Session active", "session_id", opts.SessionID, "revision", state.Revision)
		r.driver = hostedDriver{c: c, id: opts.SessionID}
		if !r.silent() {
			if state.Revision > 0 {
				r.printer.System("Resuming session '%s' (%s).", opts.SessionID, state.Mode)
			} else {
				r.printer.System("Session '%s' active.", opts.SessionID)
			}
		}
	} else {
		r.driver = embeddedDriver{s: c.NewSession()}
	}

	if r.interactive && !opts.Quiet {
		r.printer.Banner(strings.TrimSpace(unitconv.Version))
		r.printer.System("Type a number, :help for commands.")
	}

	return handleExecutionError(r.loop(ctx))
}

func (r *REPL) silent() bool {
	return r.opts.Quiet || r.opts.JSON
}

func (r *REPL) loop(ctx context.Context) error {
	scanner := bufio.NewScanner(NewInterruptibleReader(r.opts.In, ctx.Done()))
	for {
		if r.interactive {
			r.printer.Prompt()
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return io.EOF
		}
		if err := r.handle(ctx, scanner.Text()); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return err
		}
	}
}

// handle processes one line: a ":" command or new input text.
func (r *REPL) handle(ctx context.Context, line string) error {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, ":") {
		state, err := r.driver.Input(ctx, line)
		if err != nil {
			return err
		}
		return r.show(state)
	}

	cmd, arg, _ := strings.Cut(strings.TrimPrefix(trimmed, ":"), " ")
	switch cmd {
	case "mode", "m":
		mode, err := conversion.ParseMode(strings.TrimSpace(arg))
		if err != nil {
			r.message("Unknown mode %q. Try :modes.", strings.TrimSpace(arg))
			return nil
		}
		state, err := r.driver.Mode(ctx, mode)
		if err != nil {
			return err
		}
		return r.show(state)
	case "modes":
		for _, p := range conversion.Pairs() {
			fmt.Fprintf(r.opts.Out, "  %s\n", p.Description())
		}
		return nil
	case "state":
		state, err := r.driver.State(ctx)
		if err != nil {
			return err
		}
		return r.writeJSON(state)
	case "help", "h", "?":
		return r.help()
	case "quit", "q", "exit":
		return errQuit
	default:
		r.message("Unknown command %q. Try :help.", cmd)
		return nil
	}
}

func (r *REPL) show(state domain.State) error {
	if r.opts.JSON {
		return r.writeJSON(state)
	}
	r.printer.Result(string(state.Mode), state.Result, state.Result == domain.ResultInvalid)
	return nil
}

func (r *REPL) message(format string, args ...any) {
	if r.opts.JSON {
		_ = r.writeJSON(map[string]string{"error": fmt.Sprintf(format, args...)})
		return
	}
	r.printer.System(format, args...)
}

func (r *REPL) writeJSON(v any) error {
	return json.NewEncoder(r.opts.Out).Encode(v)
}

func (r *REPL) help() error {
	if !r.interactive {
		_, err := io.WriteString(r.opts.Out, tui.HelpMarkdown)
		return err
	}
	if r.render == nil {
		render, err := tui.NewRenderer("")
		if err != nil {
			return err
		}
		r.render = render
	}
	out, err := r.render(tui.HelpMarkdown)
	if err != nil {
		r.logger.Warn("Help render failed", "err", err)
		out = tui.HelpMarkdown
	}
	_, err = io.WriteString(r.opts.Out, out)
	return err
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
