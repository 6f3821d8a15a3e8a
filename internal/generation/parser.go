package generation

import (
	"regexp"
	"strings"

	"github.com/phrazzld/scry-flashcards/internal/domain"
)

// Line markers recognised by the parser.
const (
	QuestionMarker = "Q:"
	AnswerMarker   = "A:"
)

var blockSeparator = regexp.MustCompile(`\n[ \t]*\n`)

// ParseFlashcards converts raw model output into flashcards.
//
// The text is split into blocks on blank lines, where a line holding only
// spaces or tabs counts as blank. Within a block the first two
// non-empty lines are the question and the answer; a leading marker is
// stripped from each when present and anything after the second line is
// ignored. Blocks that do not yield both a question and an answer are
// skipped and counted. A payload that is not a string yields no cards.
func ParseFlashcards(payload any) Result {
	result := Result{Cards: []domain.Flashcard{}}

	raw, ok := payload.(string)
	if !ok {
		result.NonText = payload != nil
		return result
	}

	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	for _, block := range blockSeparator.Split(raw, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		card, ok := parseBlock(block)
		if !ok {
			result.SkippedBlocks++
			continue
		}
		result.Cards = append(result.Cards, card)
	}

	return result
}

func parseBlock(block string) (domain.Flashcard, bool) {
	lines := make([]string, 0, 2)
	for _, line := range strings.Split(block, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
		if len(lines) == 2 {
			break
		}
	}
	if len(lines) < 2 {
		return domain.Flashcard{}, false
	}

	question := strings.TrimSpace(strings.TrimPrefix(lines[0], QuestionMarker))
	answer := strings.TrimSpace(strings.TrimPrefix(lines[1], AnswerMarker))

	card, err := domain.NewFlashcard(question, answer)
	if err != nil {
		return domain.Flashcard{}, false
	}
	return card, true
}
