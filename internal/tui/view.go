// internal/tui/view.go
//
// Rendering for the profile editor. renderField is the exhaustive mapping
// from a lifecycle state to exactly one of: a placeholder (no value, no
// error), the value with an in-progress indicator, the value with an
// edited/stale marker, or a dedicated error view. Every variant is handled;
// the default branch exists only to satisfy the compiler and is unreachable
// because the union is sealed.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/remotedata/lifecycle"
)

var (
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC")).Bold(true).Width(7)
	focusMarkerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	readyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	progressStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))
	dirtyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	staleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Italic(true)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0")).Italic(true)
)

// View renders the whole editor.
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("⬡ PROFILE"))
	b.WriteString("\n\n")

	for i := range a.fields {
		f := field(i)
		marker := "  "
		if f == a.focus {
			marker = focusMarkerStyle.Render("» ")
		}
		b.WriteString(marker)
		b.WriteString(labelStyle.Render(f.label()))
		b.WriteString(" ")
		if a.editing && f == a.focus {
			b.WriteString(a.input.View())
		} else {
			b.WriteString(a.renderField(a.fields[f]))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if a.statusMsg != "" {
		b.WriteString(statusStyle.Render(a.statusMsg))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(a.helpLine()))
	b.WriteString("\n")
	return b.String()
}

func (a *App) helpLine() string {
	if a.editing {
		return "enter commit · esc cancel"
	}
	return "↑/↓ move · e edit · v validate · s save · r reload · q quit"
}

// renderField maps one lifecycle state to its on-screen form.
func (a *App) renderField(state fieldState) string {
	switch s := state.(type) {
	case lifecycle.Uninitialized[string, error]:
		return placeholderStyle.Render("—")

	case lifecycle.Loading[string, error]:
		if s.Prev != nil {
			return staleStyle.Render(*s.Prev) + " " + progressStyle.Render(a.spin.View()+"loading")
		}
		return progressStyle.Render(a.spin.View() + "loading…")

	case lifecycle.Empty[string, error]:
		return placeholderStyle.Render("(empty)")

	case lifecycle.Ready[string, error]:
		return readyStyle.Render(displayValue(s.Value))

	case lifecycle.Dirty[string, error]:
		return dirtyStyle.Render(displayValue(s.Value)) + " " + dirtyStyle.Render(dirtyMarker(s.Reason))

	case lifecycle.Updating[string, error]:
		return dirtyStyle.Render(displayValue(s.Value)) + " " + progressStyle.Render(a.spin.View()+"saving")

	case lifecycle.Failure[string, error]:
		if s.Prev != nil {
			return staleStyle.Render(displayValue(*s.Prev)) + " " + errorStyle.Render("✗ "+s.Err.Error())
		}
		return errorStyle.Render("✗ " + s.Err.Error())
	}
	return placeholderStyle.Render("?")
}

// dirtyMarker picks the indicator for a dirty reason. Caller-defined reasons
// fall back to their own label.
func dirtyMarker(reason lifecycle.DirtyReason) string {
	if reason == nil {
		return "✎"
	}
	switch reason.Reason() {
	case lifecycle.Edited.Reason():
		return "✎ edited"
	case lifecycle.Validated.Reason():
		return "✓ validated"
	case lifecycle.Cached.Reason():
		return "⟳ cached"
	}
	return fmt.Sprintf("✎ %s", reason.Reason())
}

func displayValue(v string) string {
	if v == "" {
		return placeholderStyle.Render("(blank)")
	}
	return v
}
