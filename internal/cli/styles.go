package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	primaryColor   = lipgloss.Color("#A40000") // Error red
	accentColor    = lipgloss.Color("#FFA500") // Orange/gold
	successColor   = lipgloss.Color("#00AA00") // Green
	mutedColor     = lipgloss.Color("#888888") // Gray
	highlightColor = lipgloss.Color("#FFFF00") // Yellow
	textColor      = lipgloss.Color("#FFFFFF") // White
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TraceYellow).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	// Section header style
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// Highlight style for important values
	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlightColor)

	// Key-value pair styles
	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	// Box style for framed content
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(TraceAmber).
			Padding(1, 2).
			MarginTop(1).
			MarginBottom(1)
)

// Destinations for the print helpers
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

const appTitle = "isfconv ⏦"

// PrintBanner prints the application banner
func PrintBanner() {
	fmt.Fprintln(Stdout, TitleStyle.Render(appTitle))
	fmt.Fprintln(Stdout, SubtitleStyle.Render("Convert Tektronix ISF oscilloscope captures to CSV, WAV, PNG and back."))
	fmt.Fprintln(Stdout)
}

// PrintVersion prints version information
func PrintVersion(version string) {
	fmt.Fprintln(Stdout, TitleStyle.Render(appTitle))
	fmt.Fprintf(Stdout, "%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
	fmt.Fprintln(Stdout)
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Fprintf(Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Fprintf(Stderr, "%s %s\n", HighlightStyle.Render("Warning:"), message)
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Fprintf(Stdout, "%s %s\n", SuccessStyle.Render("✓"), message)
}

// PrintInfo prints an informational message
func PrintInfo(key, value string) {
	fmt.Fprintf(Stdout, "%s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(value))
}

// PrintSection prints a section header
func PrintSection(title string) {
	fmt.Fprintln(Stdout, HeaderStyle.Render(title))
}

// FormatDuration formats a duration nicely
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", d.Seconds()*1000)
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// FormatBytes formats bytes into human-readable format
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// PrintBox prints content in a styled box
func PrintBox(content string) {
	fmt.Fprintln(Stdout, BoxStyle.Render(content))
}

// PrintConvertSummary prints the outcome of a batch conversion in a box.
func PrintConvertSummary(converted, failed, points int, elapsed time.Duration) {
	var b strings.Builder

	if failed == 0 {
		b.WriteString(SuccessStyle.Render("✓ Conversion Complete!"))
	} else {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("✗ %d of %d files failed", failed, converted+failed)))
	}
	b.WriteString("\n\n")

	b.WriteString(KeyStyle.Render("Files:    "))
	b.WriteString(ValueStyle.Render(fmt.Sprintf("%d", converted)))
	b.WriteString("\n")

	b.WriteString(KeyStyle.Render("Points:   "))
	b.WriteString(ValueStyle.Render(fmt.Sprintf("%d", points)))
	b.WriteString("\n")

	b.WriteString(KeyStyle.Render("Duration: "))
	b.WriteString(ValueStyle.Render(FormatDuration(elapsed)))

	PrintBox(b.String())
}
