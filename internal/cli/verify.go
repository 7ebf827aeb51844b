package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verifyMetricsFile string

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify all exercises and show progress",
	Long: `Checks every exercise once and prints which are done.

With --metrics-file, evaluation and toolchain metrics are also written in
the Prometheus text format, e.g. for a node_exporter textfile collector.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyMetricsFile, "metrics-file", "", "write metrics in Prometheus text format to this file")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}

	reports := ws.controller(ws.exercises).Statuses(commandContext(cmd))
	ws.render.Verify(ws.exercises, reports)

	if verifyMetricsFile != "" {
		if err := ws.metrics.WriteTextfile(verifyMetricsFile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		ws.log.Info("wrote metrics", "path", verifyMetricsFile)
	}
	return nil
}
