// Package export writes a deck of flashcards in downloadable formats:
// JSON, YAML and a tab-separated file that Anki can import directly.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/phrazzld/scry-flashcards/internal/domain"
	"gopkg.in/yaml.v3"
)

// Format names an export format.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTSV  Format = "tsv"
)

// ErrUnknownFormat is returned for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown export format")

// Formats lists the supported formats in display order.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatTSV}
}

// ParseFormat resolves a user supplied format name. Empty selects JSON.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "tsv", "anki":
		return FormatTSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatTSV:
		return "text/tab-separated-values; charset=utf-8"
	default:
		return "application/json"
	}
}

// Extension returns the file extension for the format, without a dot.
func (f Format) Extension() string {
	return string(f)
}

// Deck is the exported document.
type Deck struct {
	Topic string             `json:"topic,omitempty" yaml:"topic,omitempty"`
	Cards []domain.Flashcard `json:"cards"           yaml:"cards"`
}

// Write encodes deck to w in the given format.
func Write(w io.Writer, format Format, deck Deck) error {
	if deck.Cards == nil {
		deck.Cards = []domain.Flashcard{}
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(deck); err != nil {
			return fmt.Errorf("failed to encode deck as json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(deck); err != nil {
			return fmt.Errorf("failed to encode deck as yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode deck as yaml: %w", err)
		}
		return nil
	case FormatTSV:
		return writeTSV(w, deck)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// writeTSV writes one "question<TAB>answer" row per card. Anki treats the
// first column as the front and the second as the back.
func writeTSV(w io.Writer, deck Deck) error {
	tw := csv.NewWriter(w)
	tw.Comma = '\t'

	for _, card := range deck.Cards {
		if err := tw.Write([]string{card.Question, card.Answer}); err != nil {
			return fmt.Errorf("failed to write tsv row: %w", err)
		}
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return fmt.Errorf("failed to write tsv: %w", err)
	}
	return nil
}

// Read decodes a deck previously written in the given format.
func Read(r io.Reader, format Format) (Deck, error) {
	var deck Deck

	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&deck); err != nil {
			return Deck{}, fmt.Errorf("failed to decode json deck: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&deck); err != nil {
			return Deck{}, fmt.Errorf("failed to decode yaml deck: %w", err)
		}
	case FormatTSV:
		tr := csv.NewReader(r)
		tr.Comma = '\t'
		tr.FieldsPerRecord = 2
		rows, err := tr.ReadAll()
		if err != nil {
			return Deck{}, fmt.Errorf("failed to decode tsv deck: %w", err)
		}
		for _, row := range rows {
			deck.Cards = append(deck.Cards, domain.Flashcard{Question: row[0], Answer: row[1]})
		}
	default:
		return Deck{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	for i, card := range deck.Cards {
		if err := card.Validate(); err != nil {
			return Deck{}, fmt.Errorf("card %d: %w", i+1, err)
		}
	}
	if deck.Cards == nil {
		deck.Cards = []domain.Flashcard{}
	}
	return deck, nil
}
