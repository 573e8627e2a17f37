package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/pronounce/internal/domain"
)

// ErrUnresolved is returned when at least one word was blank or failed
// unexpectedly. Words without audio do not count.
var ErrUnresolved = errors.New("some words could not be resolved")

// CreateRootCommand creates and configures the root cobra command.
// The caller sets RunE, usually through Run.
func CreateRootCommand(flags *Flags, version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pronounce [word...]",
		Short: "Find pronunciation audio for words on MediaWiki sites",
		Long: `pronounce looks up pronunciation recordings for words on the configured
wiktionaries and resolves them to direct audio URLs, falling back to the
shared media repository when a wiki does not host the file itself.

Examples:
  pronounce piros                    # one word
  pronounce alma körte --explain     # show attempts and candidate scores
  pronounce --batch words.txt -o json`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	cmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "config file (default is $CONFIG_PATH or ./config.yaml)")

	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Resolve words from file (one per line, # for comments)")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", flags.Output, "Output format (table or json)")
	cmd.Flags().IntVarP(&flags.Concurrency, "concurrency", "c", flags.Concurrency, "Words resolved in parallel")
	cmd.Flags().BoolVar(&flags.Explain, "explain", false, "Show attempted combinations and ranked candidates")
}

// Run resolves the words from args and the batch file and renders them to
// the command's output.
func Run(cmd *cobra.Command, args []string, flags *Flags, svc resolver, logger *slog.Logger) error {
	if err := flags.Validate(); err != nil {
		return err
	}

	words, err := collectWords(args, flags.BatchFile)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return errors.New("no words given: pass words as arguments or use --batch")
	}

	results := resolveAll(cmd.Context(), svc, words, flags.Concurrency, flags.Explain, logger)

	out := cmd.OutOrStdout()
	if flags.Output == OutputJSON {
		if err := renderJSON(out, results); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	} else {
		renderTable(out, results, flags.Explain)
	}

	failed := 0
	for _, r := range results {
		if r.Status == domain.StatusInvalidInput || r.Status == domain.StatusFailed {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrUnresolved, failed, len(results))
	}
	return nil
}
