package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mizuki/cardrill/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.poolErr != "" {
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(theme.Incorrect.Render(s.poolErr))
	}
	if s.state.Current == nil {
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(theme.Hint.Render("Drawing a card..."))
	}

	sections := []string{s.renderCard(), ""}
	if s.showingFeedback {
		sections = append(sections, s.renderFeedback())
	} else {
		sections = append(sections, s.renderInputs())
	}
	if s.saveWarn != "" {
		sections = append(sections, "", theme.Hint.Render(s.saveWarn))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// renderCard shows what the player is allowed to see before answering:
// the image reference and the grade, never the name or price.
func (s *QuizScreen) renderCard() string {
	c := s.state.Current

	image := c.ImageRef
	if image == "" {
		image = "(no image)"
	}
	grade := c.GradeLabel
	if grade == "" {
		grade = "ungraded"
	}

	lines := []string{
		theme.Title.Render("Which card is this?"),
		"",
		theme.Body.Render(image),
		theme.Subtitle.Render("Grade: " + grade),
	}
	if n := s.state.Ledger.MissCount(c.ID); n > 0 {
		lines = append(lines, theme.Hint.Render(fmt.Sprintf("missed %d time(s)", n)))
	}
	return theme.CardPanel.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func (s *QuizScreen) renderInputs() string {
	lines := []string{
		s.nameInput.View(),
		s.priceInput.View(),
		"",
		theme.Hint.Render(fmt.Sprintf("price tolerance ±%d%%", s.state.Settings.TolerancePct)),
	}
	if s.inputNotice != "" {
		lines = append(lines, theme.Incorrect.Render(s.inputNotice))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderFeedback reveals the answer with per-part verdicts.
func (s *QuizScreen) renderFeedback() string {
	v := s.outcome.Verdict

	var headline string
	if v.OverallCorrect {
		headline = theme.Correct.Render("Correct!")
	} else {
		headline = theme.Incorrect.Render("Not quite.")
	}

	lines := []string{
		headline,
		"",
		verdictLine("Name ", v.NameMatch) + "  " + theme.Body.Render(v.SnapshotName),
		verdictLine("Price", v.PriceMatch) + "  " + theme.Body.Render(formatYen(v.SnapshotPrice)) +
			theme.Hint.Render(fmt.Sprintf("  (you said %s)", formatYen(v.ParsedPrice))),
		"",
		theme.Hint.Render("press any key for the next card"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func verdictLine(label string, match bool) string {
	mark := theme.Incorrect.Render("✗")
	if match {
		mark = theme.Correct.Render("✓")
	}
	return theme.Subtitle.Render(label) + " " + mark
}

// formatYen renders a price with thousand separators, e.g. 58,000円.
func formatYen(v float64) string {
	whole := fmt.Sprintf("%.0f", v)
	neg := strings.HasPrefix(whole, "-")
	if neg {
		whole = whole[1:]
	}
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + "円"
	if neg {
		out = "-" + out
	}
	return out
}
