package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/asciicam/pkg/ascii"
)

var (
	styleStatus = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
)

// frameMsg delivers a new frame to the bubbletea model.
type frameMsg ascii.Frame

// Model is the bubbletea model behind [TUI]. It shows the latest frame and
// a one-line status bar.
type Model struct {
	Frame   ascii.Frame
	Count   int
	Started time.Time
	Quit    *atomic.Bool
}

// NewModel creates a model that sets quit when the user presses a quit key.
func NewModel(quit *atomic.Bool) Model {
	return Model{Quit: quit, Started: time.Now()}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.Quit != nil {
				m.Quit.Store(true)
			}
			return m, tea.Quit
		}
	case frameMsg:
		m.Frame = ascii.Frame(msg)
		m.Count++
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.Frame.Text)

	status := fmt.Sprintf("%d frames", m.Count)
	if elapsed := time.Since(m.Started).Seconds(); elapsed > 0 && m.Count > 0 {
		status += fmt.Sprintf(" · %.1f fps", float64(m.Count)/elapsed)
	}
	if m.Frame.Width > 0 {
		status += fmt.Sprintf(" · %dx%d", m.Frame.Width, m.Frame.Height)
	}
	b.WriteString(styleStatus.Render(status + " · "))
	b.WriteString(styleKey.Render("q"))
	b.WriteString(styleStatus.Render(" quit"))
	return b.String()
}

// TUI renders frames through a bubbletea program in the alternate screen.
// The program runs on its own goroutine; Render only posts messages to it.
type TUI struct {
	program *tea.Program
	quit    atomic.Bool

	start sync.Once
	done  chan struct{}
	err   error
}

// NewTUI creates a TUI renderer writing to out and reading keys from in.
func NewTUI(ctx context.Context, in io.Reader, out io.Writer) *TUI {
	t := &TUI{done: make(chan struct{})}
	t.program = tea.NewProgram(NewModel(&t.quit),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	return t
}

// Start launches the program. Render calls it on first use.
func (t *TUI) Start() {
	t.start.Do(func() {
		go func() {
			defer close(t.done)
			_, err := t.program.Run()
			if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				t.err = err
			}
			t.quit.Store(true)
		}()
	})
}

// Render posts f to the program. Frames sent after the program has exited
// are dropped.
func (t *TUI) Render(ctx context.Context, f ascii.Frame) error {
	t.Start()
	select {
	case <-t.done:
		return nil
	default:
	}
	t.program.Send(frameMsg(f))
	return nil
}

// QuitRequested reports whether the user pressed a quit key or the program
// exited.
func (t *TUI) QuitRequested() bool {
	return t.quit.Load()
}

// Close stops the program and restores the terminal.
func (t *TUI) Close() error {
	started := true
	t.start.Do(func() {
		started = false
		close(t.done)
	})
	if started {
		t.program.Quit()
		<-t.done
	}
	return t.err
}

// Ensure TUI implements Renderer and Quitter.
var (
	_ Renderer = (*TUI)(nil)
	_ Quitter  = (*TUI)(nil)
)
