package view

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/notehub/pkg/form"
)

const helpText = `Commands:
  search <text>     filter notes (empty text clears)
  page <n>          go to page n
  next | prev       move one page
  refresh           reload the current page
  new               open the create form
  title <text>      set the title
  content <text>    set the content
  tag <name>        set the tag (Todo, Work, Personal, Meeting, Shopping)
  submit            create the note
  cancel            close the form
  delete <id>       delete a note
  state [diagram]   print internal state
  help              show this help
  quit              leave`

// ShellOption configures a Shell.
type ShellOption func(*Shell)

// WithLiveRender controls whether list state changes redraw the screen
// between commands. It is on by default.
func WithLiveRender(live bool) ShellOption {
	return func(s *Shell) { s.live = live }
}

// WithPrompt sets the prompt printed before each command.
func WithPrompt(prompt string) ShellOption {
	return func(s *Shell) { s.prompt = prompt }
}

// Shell drives an App from line commands. Commands run one at a time.
type Shell struct {
	app    *App
	in     io.Reader
	out    io.Writer
	live   bool
	prompt string

	mu     sync.Mutex // serializes writes to out
	closed bool
}

// NewShell creates a shell reading commands from in and drawing to out.
func NewShell(app *App, in io.Reader, out io.Writer, opts ...ShellOption) *Shell {
	s := &Shell{app: app, in: in, out: out, live: true, prompt: "> "}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run processes commands until quit, end of input or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	if s.live {
		unsubscribe := s.app.OnChange(s.render)
		defer unsubscribe()
	}
	defer func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
	}()

	lines := make(chan string)
	readErr := make(chan error, 1)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return nil
			}
		}
		readErr <- scanner.Err()
		return nil
	})

	s.render()
	for {
		s.write(s.prompt)
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			quit, err := s.Exec(ctx, line)
			if err != nil {
				s.writef("error: %v\n", err)
			}
			if quit {
				return nil
			}
		}
	}
}

// Exec runs one command line and redraws. It reports whether the shell
// should exit.
func (s *Shell) Exec(ctx context.Context, line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	redraw := true
	switch strings.ToLower(cmd) {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		s.writef("%s\n", helpText)
		redraw = false
	case "search", "s":
		s.app.Search(arg)
	case "page", "p":
		n, convErr := strconv.Atoi(arg)
		if convErr != nil {
			return false, fmt.Errorf("page %q: not a number", arg)
		}
		err = s.app.GoTo(n)
	case "next", "n":
		s.app.Next()
	case "prev":
		s.app.Prev()
	case "refresh", "r":
		s.app.Refresh()
	case "new":
		s.app.OpenForm()
	case form.FieldTitle, form.FieldContent, form.FieldTag:
		err = s.app.SetField(strings.ToLower(cmd), arg)
	case "submit":
		_, err = s.app.Submit(ctx)
		if err != nil && !errors.Is(err, form.ErrInvalid) {
			// Already reported as a notification.
			err = nil
		}
	case "cancel":
		s.app.CloseForm()
	case "delete", "rm":
		if arg == "" {
			return false, errors.New("delete needs a note id")
		}
		// Failures are reported as notifications.
		_, _ = s.app.Delete(ctx, arg)
	case "state":
		redraw = false
		err = s.printState(arg == "diagram")
	default:
		return false, fmt.Errorf("unknown command %q, type help", cmd)
	}

	if redraw {
		s.render()
	}
	return false, err
}

func (s *Shell) printState(diagram bool) error {
	state, _ := s.app.State().(AppState)
	if diagram {
		s.writef("%s\n", Diagram(state))
		return nil
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	s.writef("%s\n", data)
	return nil
}

func (s *Shell) render() {
	screen := s.app.Screen()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	_ = Render(s.out, screen)
}

func (s *Shell) write(text string) {
	s.writef("%s", text)
}

func (s *Shell) writef(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	fmt.Fprintf(s.out, format, args...)
}
