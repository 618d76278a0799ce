package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-survey-explorer/internal/application/dashboard"
	"github.com/penwyp/go-survey-explorer/internal/data/scanner"
	"github.com/penwyp/go-survey-explorer/internal/util"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "List the datasets found in the data directory",
	Long:  `Scans the data directory, classifies every dataset file and shows which file each dashboard would load.`,
	RunE:  runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	config, err := setup(cmd)
	if err != nil {
		return err
	}
	return printDetection(cmd.OutOrStdout(), config)
}

func printDetection(out io.Writer, config *dashboard.Config) error {
	files, err := scanner.FindDatasets(config.DataDir)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", config.DataDir, err)
	}
	orchestrator, err := dashboard.NewOrchestrator(config, nil)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Data directory: %s\n\n", config.DataDir)
	fmt.Fprintln(out, util.ColorBold+"Files"+util.ColorReset)
	if len(files) == 0 {
		fmt.Fprintln(out, "  (none)")
	}
	for _, f := range files {
		kind := string(scanner.Classify(f))
		if kind == "" {
			kind = "unknown"
		}
		fmt.Fprintf(out, "  %s %s\n", util.PadRight(kind, 16), f)
	}

	src := orchestrator.Sources()
	fmt.Fprintln(out)
	fmt.Fprintln(out, util.ColorBold+"Sources"+util.ColorReset)
	for _, row := range [][2]string{
		{"wage data", src.WageData},
		{"wage dictionary", src.WageDictionary},
		{"time-use data", src.TimeUseData},
		{"activities", src.Activities},
	} {
		value := row[1]
		if value == "" {
			value = util.ColorDim + "missing" + util.ColorReset
		}
		fmt.Fprintf(out, "  %s %s\n", util.PadRight(row[0], 16), value)
	}
	return nil
}
