package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/pagelat/internal/bench"
	"github.com/wesleyorama2/pagelat/internal/report"
)

func newProbeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Survey page geometry and boundary-crossing costs",
		Long: `Report how heap arrays of various sizes sit on pages, compare cold and hot
touches on small mappings around one page, and time cold touches at
positions either side of the first page boundary.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageErrorf("unexpected argument %q", args[0])
			}
			return nil
		},
		RunE: runProbe,
	}

	cmd.Flags().StringP("format", "f", "text", "Output format (text, json, yaml)")
	cmd.Flags().StringP("output", "o", "", "Write the survey to a file instead of stdout")
	return cmd
}

func runProbe(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	formatFlag, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	noColor, _ := cmd.Flags().GetBool("no-color")

	format, err := report.ParseFormat(formatFlag)
	if err != nil || format == report.FormatHTML {
		return usageErrorf("unknown probe format %q (want text, json or yaml)", formatFlag)
	}

	prober, err := bench.NewProber()
	if err != nil {
		return err
	}
	survey, err := prober.Probe()
	if err != nil {
		return err
	}
	if survey.ResidencyHints > 0 {
		logger.Warn("some evictions were not honored, cold timings may include resident pages",
			"count", survey.ResidencyHints)
	}

	return writeOutput(cmd.OutOrStdout(), outputPath, func(w io.Writer) error {
		return report.WriteSurvey(w, format, survey, report.Options{NoColor: noColor})
	})
}
