package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/phrazzld/scry-flashcards/internal/domain"
)

// renderDeck writes the deck as styled terminal cards with a
// "Card i of n" counter on each.
func renderDeck(w io.Writer, topic string, cards []domain.Flashcard, skipped int) error {
	var b strings.Builder

	b.WriteString(styleTitle.Render(fmt.Sprintf("Flashcards: %s", topic)))
	b.WriteString("\n\n")

	if len(cards) == 0 {
		b.WriteString(styleWarning.Render("No flashcards produced."))
		b.WriteString("\n")
	}

	for i, card := range cards {
		counter := styleMuted.Render(fmt.Sprintf("Card %d of %d", i+1, len(cards)))
		body := lipgloss.JoinVertical(lipgloss.Left,
			counter,
			styleQuestion.Render("Q: "+card.Question),
			styleAnswer.Render("A: "+card.Answer),
		)
		b.WriteString(styleCard.Render(body))
		b.WriteString("\n")
	}

	if skipped > 0 {
		b.WriteString(styleMuted.Render(fmt.Sprintf("%d malformed block(s) skipped", skipped)))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
