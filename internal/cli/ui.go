package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/asciicam/pkg/errors"
	"github.com/matzehuels/asciicam/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

// printError prints an error message.
func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed detail line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Summaries
// =============================================================================

// printRunSummary prints how a capture run ended.
func printRunSummary(r *pipeline.Result) {
	switch r.Reason {
	case pipeline.ReasonQuit:
		printSuccess("Stopped after %s frames", StyleNumber.Render(fmt.Sprint(r.Frames)))
	case pipeline.ReasonEndOfStream:
		if r.Frames == 0 {
			printWarning("No frames were captured")
			return
		}
		printSuccess("End of stream after %s frames", StyleNumber.Render(fmt.Sprint(r.Frames)))
	default:
		printInfo("Run ended (%s) after %d frames", r.Reason, r.Frames)
	}
	printStatsLine(
		fmt.Sprintf("%.1f fps", r.FPS()),
		r.Elapsed.Round(10*time.Millisecond).String(),
		"run "+shortID(r.RunID),
	)
}

// printCacheStats prints frame count and how many images came from cache.
func printCacheStats(frames, hits, misses int) {
	status := styleComputed.Render("fresh")
	if hits > 0 && misses == 0 {
		status = styleCached.Render("cached")
	} else if hits > 0 {
		status = styleCached.Render(fmt.Sprintf("%d cached", hits))
	}
	printStatsLine(fmt.Sprintf("%d frames", frames), status)
}

// printStatsLine prints dimmed parts joined by middle dots.
func printStatsLine(parts ...string) {
	rendered := make([]string, len(parts))
	for i, p := range parts {
		rendered[i] = StyleDim.Render(p)
	}
	fmt.Println("  " + strings.Join(rendered, StyleDim.Render(" · ")))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// =============================================================================
// Errors
// =============================================================================

// ReportError prints err for the user, with a hint for common failures.
func ReportError(err error) {
	printError("%s", errors.UserMessage(err))
	switch errors.GetCode(err) {
	case errors.ErrCodeDeviceUnavailable:
		printDetail("Check that a camera is connected and not in use, or pass --device")
	case errors.ErrCodeInvalidConfig:
		printDetail("Fix the config file or pass --config to use another one")
	}
}
