package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/pagelat/internal/history"
	"github.com/wesleyorama2/pagelat/internal/report"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List runs recorded with --record",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageErrorf("unexpected argument %q", args[0])
			}
			return nil
		},
		RunE: runHistory,
	}

	cmd.PersistentFlags().String("db", "", "History database written by --record (required)")
	cmd.Flags().IntP("limit", "n", 20, "Show at most this many runs (0 for all)")
	cmd.Flags().StringP("format", "f", "text", "Output format (text, json, yaml)")

	cmd.AddCommand(newHistoryShowCmd())
	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Print a recorded run, or one value from it",
		Long: `Print the full JSON result of a recorded run. With --path, print only the
value at a JSONPath expression, for example:

  pagelat history show cs0vq3ttsk8gf2nsv7ag --db runs.db --path '$.cold.summary.meanNs'`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageErrorf("expected exactly one run ID, got %d", len(args))
			}
			return nil
		},
		RunE: runHistoryShow,
	}

	cmd.Flags().String("path", "", "JSONPath expression to extract")
	return cmd
}

func dbFlag(cmd *cobra.Command) (string, error) {
	db, _ := cmd.Flags().GetString("db")
	if db == "" {
		return "", usageErrorf("--db is required")
	}
	return db, nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := dbFlag(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	formatFlag, _ := cmd.Flags().GetString("format")
	noColor, _ := cmd.Flags().GetBool("no-color")

	if limit < 0 {
		return usageErrorf("--limit must not be negative, got %d", limit)
	}
	format, err := report.ParseFormat(formatFlag)
	if err != nil || format == report.FormatHTML {
		return usageErrorf("unknown history format %q (want text, json or yaml)", formatFlag)
	}

	store, closeStore, err := openStore(db)
	if err != nil {
		return err
	}
	defer closeStore()

	entries, err := store.List(limit)
	if err != nil {
		return err
	}
	return report.WriteHistory(cmd.OutOrStdout(), format, entries, report.Options{NoColor: noColor})
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	db, err := dbFlag(cmd)
	if err != nil {
		return err
	}
	path, _ := cmd.Flags().GetString("path")

	store, closeStore, err := openStore(db)
	if err != nil {
		return err
	}
	defer closeStore()

	var out string
	if path != "" {
		out, err = store.Extract(args[0], path)
	} else {
		var e history.Entry
		e, err = store.Get(args[0])
		out = string(e.Result)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
