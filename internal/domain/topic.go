package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxTopicLength bounds the number of runes accepted in a topic. Topics are
// interpolated into every stage prompt, so anything longer is rejected.
const MaxTopicLength = 200

// NormalizeTopic trims surrounding whitespace from raw and checks that a
// usable topic remains. Callers run this before handing a topic to the
// generation pipeline.
func NormalizeTopic(raw string) (string, error) {
	topic := strings.TrimSpace(raw)
	if topic == "" {
		return "", fmt.Errorf("%w: %w", ErrValidation, ErrEmptyTopic)
	}

	if utf8.RuneCountInString(topic) > MaxTopicLength {
		return "", fmt.Errorf("%w: %w (max %d characters)", ErrValidation, ErrTopicTooLong, MaxTopicLength)
	}

	return topic, nil
}
