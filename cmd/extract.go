package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"mediagrab/internal/history"
	"mediagrab/internal/media"
	"mediagrab/internal/provider"
	"mediagrab/internal/ui"
)

// extractorCommands builds one subcommand per registered extractor.
func extractorCommands() []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(provider.Extractors))
	for _, ext := range provider.Extractors {
		cmds = append(cmds, &cobra.Command{
			Use:   ext.Name + " <url>",
			Short: ext.Description,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return extractRun(cmd, ext, args[0])
			},
		})
	}
	return cmds
}

// detectRun is the default command: mediagrab <url>
func detectRun(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	ext, err := provider.Detect(args[0])
	if err != nil {
		return fmt.Errorf("%s: %w (try one of: %s)", args[0], err, extractorNames())
	}
	logger.Debug().Str("extractor", ext.Name).Msg("detected extractor")
	return extractRun(cmd, ext, args[0])
}

func extractRun(cmd *cobra.Command, ext provider.Extractor, rawURL string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	client := provider.New(provider.Options{
		Creator:     cfg.Creator,
		Timeout:     cfg.Timeout.Duration,
		UserAgent:   cfg.UserAgent,
		Endpoints:   cfg.Endpoints,
		Concurrency: cfg.Concurrency,
		Logger:      &logger,
	})

	r := runner{
		out:    cmd.OutOrStdout(),
		styled: !flagJSON && ui.IsTerminal(os.Stdout),
		record: cfg.History,
	}
	return r.run(ctx, client, ext, rawURL)
}

// runner executes one extraction and reports it.
type runner struct {
	out    io.Writer
	styled bool
	record bool
	// openHistory defaults to history.OpenDefault.
	openHistory func() (*history.Store, error)
}

func (r runner) run(ctx context.Context, client *provider.Client, ext provider.Extractor, rawURL string) error {
	var (
		outcome media.Outcome
		err     error
	)
	if r.styled {
		outcome, err = ui.Run(ctx, "Asking "+ext.Name+"...", func(ctx context.Context) media.Outcome {
			return ext.Run(ctx, client, rawURL)
		})
		if err != nil {
			return err
		}
	} else {
		outcome = ext.Run(ctx, client, rawURL)
	}

	data, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	if r.styled {
		fmt.Fprint(r.out, ui.Render(ext.Name, data))
	} else {
		fmt.Fprintln(r.out, string(data))
	}

	if r.record {
		r.save(ctx, ext.Name, rawURL, outcome)
	}

	if !outcome.OK() {
		logger.Debug().Str("extractor", ext.Name).Str("msg", outcome.Message()).Msg("extraction failed")
		return errExtractionFailed
	}
	return nil
}

// save logs the run. History problems never fail the command.
func (r runner) save(ctx context.Context, name, rawURL string, outcome media.Outcome) {
	open := r.openHistory
	if open == nil {
		open = history.OpenDefault
	}
	store, err := open()
	if err != nil {
		logger.Warn().Err(err).Msg("history unavailable")
		return
	}
	defer store.Close()

	_, err = store.Save(context.WithoutCancel(ctx), history.Record{
		Provider: name,
		URL:      rawURL,
		OK:       outcome.OK(),
		Message:  outcome.Message(),
	})
	if err != nil {
		logger.Warn().Err(err).Msg("saving history")
	}
}

func extractorNames() string {
	names := make([]string, len(provider.Extractors))
	for i, e := range provider.Extractors {
		names[i] = e.Name
	}
	return strings.Join(names, ", ")
}
