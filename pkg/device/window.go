package device

import (
	"gocv.io/x/gocv"

	"github.com/matzehuels/asciicam/pkg/errors"
	"github.com/matzehuels/asciicam/pkg/frame"
	"github.com/matzehuels/asciicam/pkg/render"
)

// DefaultWindowTitle is the title of the raw preview window.
const DefaultWindowTitle = "asciicam"

// Key codes returned by WaitKey that stop the capture loop.
const (
	keyQuit   = 'q'
	keyEscape = 27
)

// Window shows raw frames in an OpenCV window. The window is created on the
// first Show so headless runs never touch the GUI backend.
type Window struct {
	title string
	win   *gocv.Window
	quit  bool
}

// NewWindow creates a window with the given title.
func NewWindow(title string) *Window {
	if title == "" {
		title = DefaultWindowTitle
	}
	return &Window{title: title}
}

// Show draws f and polls the keyboard for one millisecond.
func (w *Window) Show(f *frame.Frame) error {
	if err := f.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "show frame")
	}
	if w.win == nil {
		w.win = gocv.NewWindow(w.title)
	}

	mat, err := gocv.NewMatFromBytes(f.Height, f.Width, gocv.MatTypeCV8UC3, f.BGR())
	if err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "build preview image")
	}
	defer mat.Close()

	w.win.IMShow(mat)
	switch key := w.win.WaitKey(1); key & 0xff {
	case keyQuit, keyEscape:
		if key >= 0 {
			w.quit = true
		}
	}
	return nil
}

// QuitRequested reports whether q or ESC was pressed in the window.
func (w *Window) QuitRequested() bool {
	return w.quit
}

// Close destroys the window if it was created.
func (w *Window) Close() error {
	if w.win == nil {
		return nil
	}
	err := w.win.Close()
	w.win = nil
	return err
}

// Ensure Window implements render.Display.
var _ render.Display = (*Window)(nil)
