package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/autorange/core/fleet"
	"github.com/kilianp07/autorange/core/vehiclestatus"
	"github.com/kilianp07/autorange/pkg/report"
)

var (
	reportOut string
	reportCSV string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a range chart of the configured fleet",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "range.html", "HTML chart output")
	reportCmd.Flags().StringVar(&reportCSV, "csv", "", "also write the table as CSV")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	g, err := loadGarage()
	if err != nil {
		return err
	}
	list := g.List(vehiclestatus.Filter{})
	html, err := report.RangeChartHTML(list)
	if err != nil {
		return err
	}
	if err := os.WriteFile(reportOut, html, 0o644); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	if reportCSV != "" {
		f, err := os.Create(reportCSV)
		if err != nil {
			return fmt.Errorf("create csv: %w", err)
		}
		defer func() { _ = f.Close() }()
		if err := report.WriteCSV(f, list); err != nil {
			return err
		}
	}
	sum := fleet.Summarize(list)
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d vehicles, %.1f km loaded range in total, %.0f%% fuelled)\n",
		reportOut, sum.Vehicles, sum.Total, sum.Fill*100)
	return err
}
