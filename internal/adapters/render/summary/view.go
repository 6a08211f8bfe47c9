package summary

import (
	"fmt"

	"github.com/bnema/picquiz/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	// Width of the panel including its border. Zero keeps the natural width.
	Width int
}

// View renders summary as a bordered panel.
func View(summary domain.Summary, opts RenderOptions) string {
	return renderView(summary, opts, newStyles())
}

func renderView(summary domain.Summary, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Game over"),
		s.reason.Render(summary.Reason.Label()),
		"",
	}

	if summary.Answer != "" {
		lines = append(lines, row("Answer", s.answer.Render(summary.Answer), s))
	}

	lines = append(lines,
		row("Correct this game", s.value.Render(fmt.Sprintf("%d", summary.RoundsCorrect)), s),
		row("Previous game", s.value.Render(fmt.Sprintf("%d", summary.PreviousRoundsCorrect)), s),
		row("Best", s.value.Render(fmt.Sprintf("%d", summary.MaxRoundsCorrect)), s),
		row("Elapsed", s.value.Render(fmt.Sprintf("%ds", summary.ElapsedSeconds)), s),
	)

	if isNewRecord(summary) {
		lines = append(lines, "", s.record.Render("New best!"))
	}

	box := s.box
	if opts.Width > 0 {
		box = box.Width(opts.Width - box.GetHorizontalBorderSize())
	}

	return box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func row(label, value string, s styles) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.key.Render(label+": "), value)
}

func isNewRecord(summary domain.Summary) bool {
	return summary.RoundsCorrect > 0 && summary.RoundsCorrect == summary.MaxRoundsCorrect && summary.RoundsCorrect > summary.PreviousRoundsCorrect
}
