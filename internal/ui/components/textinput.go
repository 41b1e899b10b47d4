package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mizuki/cardrill/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with Cardrill styling and a
// per-field match marker shown after grading.
type TextInput struct {
	Model  textinput.Model
	Label  string
	graded bool
	match  bool
}

// NewTextInput creates a labelled text input.
func NewTextInput(label, placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{Model: ti, Label: label}
}

// Update handles messages while the field has focus.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// Focus gives the field keyboard focus.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// View renders label, input and, once graded, the match marker.
func (t TextInput) View() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Render(t.Label + " ")
	view := label + t.Model.View()
	if t.graded {
		if t.match {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the current input text.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetGraded records the grading outcome for display.
func (t *TextInput) SetGraded(match bool) {
	t.graded = true
	t.match = match
}

// Reset clears the text and the grading marker.
func (t *TextInput) Reset() {
	t.Model.SetValue("")
	t.graded = false
}
