package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/autorange/core/fleet"
	"github.com/kilianp07/autorange/core/vehiclestatus"
	"github.com/kilianp07/autorange/infra/logger"
)

var vehiclesCmd = &cobra.Command{
	Use:   "vehicles",
	Short: "Inspect the configured fleet",
}

var (
	lsVariant string
	lsJSON    bool
)

var vehiclesLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List configured vehicles with their range",
	Args:  cobra.NoArgs,
	RunE:  runVehiclesLs,
}

var (
	dtLiquid   float64
	dtDistance float64
	dtSpeed    float64
)

var driveTimeCmd = &cobra.Command{
	Use:   "drive-time <vehicle-id>",
	Short: "Estimate the hours needed to drive a distance",
	Args:  cobra.ExactArgs(1),
	RunE:  runDriveTime,
}

func init() {
	vehiclesLsCmd.Flags().StringVar(&lsVariant, "variant", "", "only list this variant")
	vehiclesLsCmd.Flags().BoolVar(&lsJSON, "json", false, "print JSON instead of a table")
	driveTimeCmd.Flags().Float64Var(&dtLiquid, "liquid", 0, "liters available for the trip")
	driveTimeCmd.Flags().Float64Var(&dtDistance, "distance", 0, "trip distance in km")
	driveTimeCmd.Flags().Float64Var(&dtSpeed, "speed", 0, "override the configured speed in km/h")
	_ = driveTimeCmd.MarkFlagRequired("liquid")
	_ = driveTimeCmd.MarkFlagRequired("distance")
	vehiclesCmd.AddCommand(vehiclesLsCmd, driveTimeCmd)
	rootCmd.AddCommand(vehiclesCmd)
}

// loadGarage builds a garage from the fleet section of the configuration.
func loadGarage() (*fleet.Garage, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	g := fleet.NewGarage(nil, logger.NopLogger{})
	if err := g.Load(cfg.Fleet.Vehicles); err != nil {
		return nil, err
	}
	return g, nil
}

func runVehiclesLs(cmd *cobra.Command, args []string) error {
	g, err := loadGarage()
	if err != nil {
		return err
	}
	list := g.List(vehiclestatus.Filter{Variant: lsVariant})
	if lsJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}
	return printTable(cmd.OutOrStdout(), list)
}

func printTable(out io.Writer, list []vehiclestatus.Status) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tVARIANT\tLIQUID\tSPEED\tMAX KM\tCURRENT KM\tLOADED KM")
	for _, st := range list {
		fmt.Fprintf(tw, "%s\t%s\t%.1f/%.1f\t%.0f\t%.1f\t%.1f\t%.1f\n",
			st.VehicleID, st.Variant, st.LiquidAmount, st.MaxLiquidAmount, st.Speed,
			st.Range.Maximum, st.Range.Current, st.Range.Loaded)
	}
	return tw.Flush()
}

func runDriveTime(cmd *cobra.Command, args []string) error {
	g, err := loadGarage()
	if err != nil {
		return err
	}
	id := args[0]
	if cmd.Flags().Changed("speed") {
		if _, err := g.SetSpeed(id, dtSpeed); err != nil {
			return err
		}
	}
	est, err := g.DriveTime(id, dtLiquid, dtDistance)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %.1f km at %.0f km/h takes %.2f h\n",
		est.VehicleID, est.Distance, est.Speed, est.Hours)
	return err
}
