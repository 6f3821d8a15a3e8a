package export_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/phrazzld/scry-flashcards/internal/domain"
	"github.com/phrazzld/scry-flashcards/internal/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleDeck = export.Deck{
	Topic: "Mitochondria",
	Cards: []domain.Flashcard{
		{Question: "What do mitochondria produce?", Answer: "ATP"},
		{Question: "Tabs\tand \"quotes\"?", Answer: "Line one\nline two"},
	},
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want export.Format
	}{
		{"", export.FormatJSON},
		{"JSON", export.FormatJSON},
		{"yml", export.FormatYAML},
		{" yaml ", export.FormatYAML},
		{"anki", export.FormatTSV},
		{"tsv", export.FormatTSV},
	}

	for _, tc := range tests {
		got, err := export.ParseFormat(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := export.ParseFormat("pdf")
	require.ErrorIs(t, err, export.ErrUnknownFormat)
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.FormatJSON, sampleDeck))

	assert.Contains(t, buf.String(), `"topic": "Mitochondria"`)
	assert.Contains(t, buf.String(), `"question": "What do mitochondria produce?"`)
	assert.Equal(t, "application/json", export.FormatJSON.ContentType())
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.FormatYAML, sampleDeck))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "topic: Mitochondria\n"), out)
	assert.Contains(t, out, "question: What do mitochondria produce?")
	assert.Contains(t, out, "answer: ATP")
}

func TestWriteTSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.FormatTSV, sampleDeck))

	lines := strings.SplitN(buf.String(), "\n", 2)
	assert.Equal(t, "What do mitochondria produce?\tATP", lines[0])
	assert.Contains(t, lines[1], "\"Tabs\tand \"\"quotes\"\"?\"", "fields with tabs or quotes are quoted")
}

func TestWriteEmptyDeck(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.FormatJSON, export.Deck{}))
	assert.Contains(t, buf.String(), `"cards": []`)

	buf.Reset()
	require.NoError(t, export.Write(&buf, export.FormatTSV, export.Deck{}))
	assert.Empty(t, buf.String())
}

func TestWriteUnknownFormat(t *testing.T) {
	t.Parallel()

	err := export.Write(&bytes.Buffer{}, export.Format("xml"), sampleDeck)
	require.ErrorIs(t, err, export.ErrUnknownFormat)
}

func TestReadRecoversWrittenDeck(t *testing.T) {
	t.Parallel()

	for _, format := range export.Formats() {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, export.Write(&buf, format, sampleDeck))

			deck, err := export.Read(&buf, format)
			require.NoError(t, err)
			assert.Equal(t, sampleDeck.Cards, deck.Cards)
		})
	}
}

func TestReadRejectsInvalidCards(t *testing.T) {
	t.Parallel()

	_, err := export.Read(strings.NewReader(`{"cards":[{"question":"q","answer":""}]}`), export.FormatJSON)
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = export.Read(strings.NewReader("only-one-column\n"), export.FormatTSV)
	require.Error(t, err)
}
