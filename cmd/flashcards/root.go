package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/scry-flashcards/internal/bootstrap"
	"github.com/phrazzld/scry-flashcards/internal/config"
	"github.com/phrazzld/scry-flashcards/internal/generation"
	"github.com/spf13/cobra"
)

// generatorFactory builds the generator for a loaded configuration.
type generatorFactory func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (generation.Generator, error)

// deps are the collaborators the commands need, swapped out in tests.
type deps struct {
	newGenerator generatorFactory
	envFiles     []string
}

func defaultDeps() deps {
	return deps{
		newGenerator: func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (generation.Generator, error) {
			return bootstrap.NewGenerator(ctx, cfg, logger)
		},
		envFiles: config.DefaultOptions().EnvFiles,
	}
}

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configFile string
	logLevel   string
}

func newRootCmd(d deps) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "flashcards",
		Short: "Generate study flashcards for any topic",
		Long: `flashcards turns a topic into a deck of question/answer flashcards.

The full pipeline plans a few subtopics, researches them on the web and
writes the cards from the research notes. Single mode skips planning and
search and writes the cards from the model's general knowledge.

Credentials are read from GEMINI_API_KEY and SERPER_API_KEY (or their
SCRY_-prefixed forms), a .env file, or config.yaml.

Examples:
  flashcards generate "Mitochondria"
  flashcards generate "The French Revolution" --cards 10
  flashcards generate "Photosynthesis" --single --format yaml > deck.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "config file (default ./config.yaml if present)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(newGenerateCmd(d, flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// reportedError marks an error already printed to the user.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// fail prints msg as a styled error and returns err marked as reported.
func fail(w io.Writer, msg string, err error) error {
	fmt.Fprintln(w, styleError.Render("Error: "+msg))
	return reportedError{err: err}
}
