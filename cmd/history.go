package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediagrab/internal/history"
)

var (
	flagClear bool
	flagLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or clear past extractions",
	Args:  cobra.NoArgs,
	RunE:  historyRun,
}

func init() {
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every history record")
	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 20, "Number of records to show (0 for all)")
}

func historyRun(cmd *cobra.Command, args []string) error {
	store, err := history.OpenDefault()
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if flagClear {
		n, err := store.Clear(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %d history entries.\n", n)
		return nil
	}

	records, err := store.Load(ctx, flagLimit)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No history entries found.")
		return nil
	}

	for _, line := range history.FormatForDisplay(records) {
		fmt.Fprintln(out, line)
	}
	return nil
}
