package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phrazzld/scry-flashcards/internal/config"
	"github.com/phrazzld/scry-flashcards/internal/domain"
	"github.com/phrazzld/scry-flashcards/internal/export"
	"github.com/phrazzld/scry-flashcards/internal/platform/logger"
	"github.com/phrazzld/scry-flashcards/internal/redact"
	"github.com/spf13/cobra"
)

// formatText is the styled terminal rendering; every other format is an
// export format.
const formatText = "text"

type generateFlags struct {
	format string
	cards  int
	single bool
}

func newGenerateCmd(d deps, root *rootFlags) *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate <topic>",
		Short: "Generate flashcards for a topic",
		Long: `Generate a deck of flashcards for a topic.

Output formats:
  text   styled cards for the terminal (default)
  json   a JSON deck
  yaml   a YAML deck
  tsv    tab-separated question/answer pairs, importable into Anki`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, d, root, flags, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", formatText, "output format (text, json, yaml, tsv)")
	cmd.Flags().IntVarP(&flags.cards, "cards", "n", 0, "number of cards, 5 or 10 (default from config)")
	cmd.Flags().BoolVar(&flags.single, "single", false, "skip planning and web search")

	return cmd
}

func runGenerate(cmd *cobra.Command, d deps, root *rootFlags, flags *generateFlags, rawTopic string) error {
	errOut := cmd.ErrOrStderr()

	topic, err := domain.NormalizeTopic(rawTopic)
	if err != nil {
		return fail(errOut, topicMessage(err), err)
	}

	var format export.Format
	if flags.format != formatText {
		format, err = export.ParseFormat(flags.format)
		if err != nil {
			return fail(errOut, fmt.Sprintf("unknown format %q", flags.format), err)
		}
	}

	overrides := map[string]any{"server.log_level": root.logLevel}
	if flags.cards != 0 {
		overrides["pipeline.card_count"] = flags.cards
	}
	if flags.single {
		overrides["pipeline.mode"] = config.ModeSingle
	}

	cfg, err := config.LoadWithOptions(config.Options{
		ConfigFile: root.configFile,
		EnvFiles:   d.envFiles,
		Overrides:  overrides,
	})
	if err != nil {
		return fail(errOut, err.Error(), err)
	}

	log, err := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel, Output: errOut})
	if err != nil {
		return err
	}

	gen, err := d.newGenerator(cmd.Context(), cfg, log)
	if err != nil {
		return fail(errOut, redact.Error(err), err)
	}

	if format == "" {
		fmt.Fprintln(errOut, styleMuted.Render(fmt.Sprintf("Generating %d flashcards about %q (%s mode)...",
			cfg.Pipeline.CardCount, topic, cfg.Pipeline.Mode)))
	}

	result, err := gen.GenerateWithReport(cmd.Context(), topic)
	if err != nil {
		return fail(errOut, "flashcard generation failed: "+redact.Error(err), err)
	}

	if format == "" {
		return renderDeck(cmd.OutOrStdout(), topic, result.Cards, result.SkippedBlocks)
	}

	if len(result.Cards) == 0 {
		fmt.Fprintln(errOut, styleWarning.Render("No flashcards produced."))
	}
	return export.Write(cmd.OutOrStdout(), format, export.Deck{Topic: topic, Cards: result.Cards})
}

func topicMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyTopic):
		return "topic cannot be empty"
	case errors.Is(err, domain.ErrTopicTooLong):
		return fmt.Sprintf("topic must be at most %d characters", domain.MaxTopicLength)
	default:
		return err.Error()
	}
}
